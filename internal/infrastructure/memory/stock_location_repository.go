package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockLocationRepo implementación en memoria de repository.StockLocationRepository.
type StockLocationRepo struct {
	base
}

func (r *StockLocationRepo) Create(ctx context.Context, loc *inventory.StockLocation) error {
	return r.write(ctx, func(s *state) error {
		if _, ok := s.locations[loc.ID]; ok {
			return domain.ErrDuplicate
		}
		if loc.Code != "" {
			for _, l := range s.locations {
				if l.Code == loc.Code {
					return domain.Conflict(domain.ErrDuplicate.Code, "código de ubicación duplicado: "+loc.Code)
				}
			}
		}
		s.locations[loc.ID] = stripItems(loc)
		return nil
	})
}

func (r *StockLocationRepo) GetByID(ctx context.Context, id string) (*inventory.StockLocation, error) {
	var out *inventory.StockLocation
	err := r.read(ctx, func(s *state) error {
		if l, ok := s.locations[id]; ok {
			out = l.Clone()
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria el bloqueo lo da el TxRunner; carga todos los items de la ubicación.
func (r *StockLocationRepo) GetForUpdate(ctx context.Context, id string) (*inventory.StockLocation, error) {
	var out *inventory.StockLocation
	err := r.read(ctx, func(s *state) error {
		l, ok := s.locations[id]
		if !ok {
			return nil
		}
		out = l.Clone()
		for _, it := range sortedItems(s) {
			if it.StockLocationID == id {
				out.StockItems = append(out.StockItems, it.Clone())
			}
		}
		return nil
	})
	return out, err
}

func (r *StockLocationRepo) Update(ctx context.Context, loc *inventory.StockLocation) error {
	return r.write(ctx, func(s *state) error {
		if _, ok := s.locations[loc.ID]; !ok {
			return inventory.ErrStockLocationMissing
		}
		s.locations[loc.ID] = stripItems(loc)
		return nil
	})
}

func (r *StockLocationRepo) List(ctx context.Context, limit, offset int) ([]*inventory.StockLocation, error) {
	var out []*inventory.StockLocation
	err := r.read(ctx, func(s *state) error {
		all := sortedLocations(s)
		if offset >= len(all) {
			return nil
		}
		end := len(all)
		if limit > 0 && offset+limit < end {
			end = offset + limit
		}
		for _, l := range all[offset:end] {
			out = append(out, l.Clone())
		}
		return nil
	})
	return out, err
}

func (r *StockLocationRepo) ListByVariant(ctx context.Context, variantID string) ([]*inventory.StockLocation, error) {
	var out []*inventory.StockLocation
	err := r.read(ctx, func(s *state) error {
		for _, l := range sortedLocations(s) {
			for _, it := range s.items {
				if it.StockLocationID == l.ID && it.VariantID == variantID {
					c := l.Clone()
					c.StockItems = []*inventory.StockItem{it.Clone()}
					out = append(out, c)
					break
				}
			}
		}
		return nil
	})
	return out, err
}

func stripItems(loc *inventory.StockLocation) *inventory.StockLocation {
	c := loc.Clone()
	c.StockItems = nil
	return c
}

// sortedLocations orden estable por nombre y luego ID.
func sortedLocations(s *state) []*inventory.StockLocation {
	out := make([]*inventory.StockLocation, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedItems(s *state) []*inventory.StockItem {
	out := make([]*inventory.StockItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
