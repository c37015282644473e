package inventory

import (
	"context"
	"fmt"
	"time"
)

// DefaultTransferPrefix prefijo de los números de traslado.
const DefaultTransferPrefix = "T"

// SequenceGenerator entrega el siguiente valor de un contador por clave.
// Implementaciones: memoria (un proceso), Postgres y Redis (varias instancias).
type SequenceGenerator interface {
	Next(ctx context.Context, key string) (int64, error)
}

// NumberGenerator genera números legibles {prefijo}{AAMMDD}{contador de 4 dígitos}.
// El contador se reinicia cada día: la clave de secuencia incluye la fecha.
type NumberGenerator struct {
	prefix string
	seq    SequenceGenerator
	now    func() time.Time
}

// NewNumberGenerator crea el generador; prefix vacío usa DefaultTransferPrefix.
func NewNumberGenerator(prefix string, seq SequenceGenerator) *NumberGenerator {
	if prefix == "" {
		prefix = DefaultTransferPrefix
	}
	return &NumberGenerator{prefix: prefix, seq: seq, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (g *NumberGenerator) WithClock(now func() time.Time) *NumberGenerator {
	g.now = now
	return g
}

// Generate devuelve el siguiente número del día.
func (g *NumberGenerator) Generate(ctx context.Context) (string, error) {
	if g == nil || g.seq == nil {
		return "", ErrNumberGeneratorNotSet
	}
	stamp := g.now().UTC().Format("060102")
	n, err := g.seq.Next(ctx, SequenceKey(g.prefix, stamp))
	if err != nil {
		return "", fmt.Errorf("siguiente secuencia: %w", err)
	}
	return fmt.Sprintf("%s%s%04d", g.prefix, stamp, n), nil
}

// SequenceKey clave del contador diario para un prefijo.
func SequenceKey(prefix, stamp string) string {
	return "transfer_number:" + prefix + ":" + stamp
}
