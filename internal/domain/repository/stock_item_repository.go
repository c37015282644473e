package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockItemRepository persistencia de StockItem con sus reservas por orden y
// unidades en backorder. Los movimientos van por StockMovementRepository.
type StockItemRepository interface {
	Create(ctx context.Context, item *inventory.StockItem) error
	GetByID(ctx context.Context, id string) (*inventory.StockItem, error)
	// GetForUpdate bloquea la fila del item (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*inventory.StockItem, error)
	GetByLocationAndVariant(ctx context.Context, locationID, variantID string) (*inventory.StockItem, error)
	GetByLocationAndSKU(ctx context.Context, locationID, sku string) (*inventory.StockItem, error)
	// ListReservedForOrder items con reserva vigente de la orden, bloqueados para update.
	ListReservedForOrder(ctx context.Context, orderID string) ([]*inventory.StockItem, error)
	// Save inserta o actualiza el item, reemplaza sus reservas y guarda sus unidades.
	Save(ctx context.Context, item *inventory.StockItem) error
}
