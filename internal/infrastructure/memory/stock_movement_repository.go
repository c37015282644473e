package memory

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockMovementRepo libro de movimientos en memoria (solo inserción).
type StockMovementRepo struct {
	base
}

func (r *StockMovementRepo) CreateBatch(ctx context.Context, movements []inventory.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.write(ctx, func(s *state) error {
		s.movements = append(s.movements, movements...)
		return nil
	})
}

// ListByStockItem del más reciente al más antiguo.
func (r *StockMovementRepo) ListByStockItem(ctx context.Context, stockItemID string, limit, offset int) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	err := r.read(ctx, func(s *state) error {
		skipped := 0
		for i := len(s.movements) - 1; i >= 0; i-- {
			m := s.movements[i]
			if m.StockItemID != stockItemID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, m)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// ListByOriginator en orden de registro.
func (r *StockMovementRepo) ListByOriginator(ctx context.Context, originator inventory.Originator, originatorID string) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	err := r.read(ctx, func(s *state) error {
		for _, m := range s.movements {
			if m.Originator == originator && m.OriginatorID == originatorID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}
