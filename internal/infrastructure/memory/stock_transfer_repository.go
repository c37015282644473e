package memory

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockTransferRepo implementación en memoria de repository.StockTransferRepository.
type StockTransferRepo struct {
	base
}

func (r *StockTransferRepo) Create(ctx context.Context, t *inventory.StockTransfer) error {
	return r.write(ctx, func(s *state) error {
		for _, existing := range s.transfers {
			if existing.ID == t.ID || existing.Number == t.Number {
				return domain.Conflict(domain.ErrDuplicate.Code, "número de traslado duplicado: "+t.Number)
			}
		}
		s.transfers[t.ID] = storedTransfer(t)
		return nil
	})
}

func (r *StockTransferRepo) GetByID(ctx context.Context, id string) (*inventory.StockTransfer, error) {
	var out *inventory.StockTransfer
	err := r.read(ctx, func(s *state) error {
		if t, ok := s.transfers[id]; ok {
			out = t.Clone()
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria el bloqueo lo da el TxRunner.
func (r *StockTransferRepo) GetForUpdate(ctx context.Context, id string) (*inventory.StockTransfer, error) {
	return r.GetByID(ctx, id)
}

func (r *StockTransferRepo) Update(ctx context.Context, t *inventory.StockTransfer) error {
	return r.write(ctx, func(s *state) error {
		if _, ok := s.transfers[t.ID]; !ok {
			return inventory.ErrTransferNotFound
		}
		s.transfers[t.ID] = storedTransfer(t)
		return nil
	})
}

// storedTransfer los movimientos del traslado viven en el libro de movimientos.
func storedTransfer(t *inventory.StockTransfer) *inventory.StockTransfer {
	c := t.Clone()
	c.Movements = nil
	return c
}
