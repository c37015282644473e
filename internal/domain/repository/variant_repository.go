package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// VariantRepository define el puerto de lectura/alta de variantes (DIP).
type VariantRepository interface {
	Create(ctx context.Context, v *entity.Variant) error
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Variant, error)
}
