package memory

import (
	"context"
	"sync"
)

// Sequence contador por clave protegido por mutex. Válido para una sola instancia.
type Sequence struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewSequence crea un contador vacío.
func NewSequence() *Sequence {
	return &Sequence{counters: make(map[string]int64)}
}

// Next incrementa y devuelve el contador de key, empezando en 1.
func (s *Sequence) Next(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}
