package memory

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockItemRepo implementación en memoria de repository.StockItemRepository.
type StockItemRepo struct {
	base
}

func (r *StockItemRepo) Create(ctx context.Context, item *inventory.StockItem) error {
	return r.write(ctx, func(s *state) error {
		if _, ok := s.items[item.ID]; ok {
			return inventory.ErrDuplicateSku
		}
		if err := checkUnique(s, item); err != nil {
			return err
		}
		s.items[item.ID] = stored(item)
		return nil
	})
}

func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*inventory.StockItem, error) {
	return r.find(ctx, func(it *inventory.StockItem) bool { return it.ID == id })
}

// GetForUpdate en memoria el bloqueo lo da el TxRunner.
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*inventory.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *StockItemRepo) GetByLocationAndVariant(ctx context.Context, locationID, variantID string) (*inventory.StockItem, error) {
	return r.find(ctx, func(it *inventory.StockItem) bool {
		return it.StockLocationID == locationID && it.VariantID == variantID
	})
}

func (r *StockItemRepo) GetByLocationAndSKU(ctx context.Context, locationID, sku string) (*inventory.StockItem, error) {
	return r.find(ctx, func(it *inventory.StockItem) bool {
		return it.StockLocationID == locationID && it.SKU == sku
	})
}

func (r *StockItemRepo) ListReservedForOrder(ctx context.Context, orderID string) ([]*inventory.StockItem, error) {
	var out []*inventory.StockItem
	err := r.read(ctx, func(s *state) error {
		for _, it := range sortedItems(s) {
			if q, ok := it.ReservedFor(orderID); ok && q > 0 {
				out = append(out, it.Clone())
			}
		}
		return nil
	})
	return out, err
}

// Save inserta o reemplaza el item completo (reservas y unidades incluidas).
func (r *StockItemRepo) Save(ctx context.Context, item *inventory.StockItem) error {
	return r.write(ctx, func(s *state) error {
		if _, ok := s.items[item.ID]; !ok {
			if err := checkUnique(s, item); err != nil {
				return err
			}
		}
		s.items[item.ID] = stored(item)
		return nil
	})
}

func (r *StockItemRepo) find(ctx context.Context, match func(*inventory.StockItem) bool) (*inventory.StockItem, error) {
	var out *inventory.StockItem
	err := r.read(ctx, func(s *state) error {
		for _, it := range sortedItems(s) {
			if match(it) {
				out = it.Clone()
				return nil
			}
		}
		return nil
	})
	return out, err
}

// checkUnique (ubicación, variante) y (ubicación, SKU) son únicos.
func checkUnique(s *state, item *inventory.StockItem) error {
	if _, ok := s.locations[item.StockLocationID]; !ok {
		return inventory.ErrStockLocationMissing
	}
	for _, it := range s.items {
		if it.StockLocationID != item.StockLocationID {
			continue
		}
		if it.VariantID == item.VariantID || (item.SKU != "" && it.SKU == item.SKU) {
			return inventory.ErrDuplicateSku
		}
	}
	return nil
}

// stored copia para guardar, sin movimientos pendientes: esos van al libro.
func stored(item *inventory.StockItem) *inventory.StockItem {
	c := item.Clone()
	c.Movements = nil
	return c
}
