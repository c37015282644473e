package memory

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// VariantRepo variantes en memoria.
type VariantRepo struct {
	base
}

func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	return r.write(ctx, func(s *state) error {
		for _, existing := range s.variants {
			if existing.ID == v.ID || existing.SKU == v.SKU {
				return domain.Conflict(domain.ErrDuplicate.Code, "SKU de variante duplicado: "+v.SKU)
			}
		}
		c := *v
		s.variants[v.ID] = &c
		return nil
	})
}

func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.read(ctx, func(s *state) error {
		if v, ok := s.variants[id]; ok {
			c := *v
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *VariantRepo) GetBySKU(ctx context.Context, sku string) (*entity.Variant, error) {
	var out *entity.Variant
	err := r.read(ctx, func(s *state) error {
		for _, v := range s.variants {
			if v.SKU == sku {
				c := *v
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	base
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.write(ctx, func(s *state) error {
		if _, ok := s.orders[o.ID]; ok {
			return domain.Conflict(domain.ErrDuplicate.Code, "pedido duplicado: "+o.ID)
		}
		s.orders[o.ID] = copyOrder(o)
		return nil
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.read(ctx, func(s *state) error {
		if o, ok := s.orders[id]; ok {
			out = copyOrder(o)
		}
		return nil
	})
	return out, err
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.LineItems = append([]entity.LineItem(nil), o.LineItems...)
	return &c
}
