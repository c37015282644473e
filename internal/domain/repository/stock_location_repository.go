package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockLocationRepository define el puerto de persistencia para ubicaciones (DIP).
type StockLocationRepository interface {
	Create(ctx context.Context, loc *inventory.StockLocation) error
	// GetByID devuelve la ubicación sin sus items; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*inventory.StockLocation, error)
	// GetForUpdate devuelve la ubicación con todos sus items bloqueados (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*inventory.StockLocation, error)
	Update(ctx context.Context, loc *inventory.StockLocation) error
	List(ctx context.Context, limit, offset int) ([]*inventory.StockLocation, error)
	// ListByVariant ubicaciones que tienen item de la variante, cada una con ese item cargado.
	ListByVariant(ctx context.Context, variantID string) ([]*inventory.StockLocation, error)
}
