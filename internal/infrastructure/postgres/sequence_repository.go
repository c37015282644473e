package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// Ensure Sequence implements inventory.SequenceGenerator.
var _ inventory.SequenceGenerator = (*Sequence)(nil)

// Sequence contador por clave en la tabla sequences; el upsert es atómico entre instancias.
type Sequence struct {
	q Querier
}

// NewSequence crea el contador sobre un pool o una tx.
func NewSequence(q Querier) *Sequence {
	return &Sequence{q: q}
}

// Next incrementa y devuelve el contador de key, empezando en 1.
func (s *Sequence) Next(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO sequences (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, key,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("siguiente valor de %s: %w", key, err)
	}
	return value, nil
}
