package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockMovementRepository define el puerto de persistencia para movimientos (solo inserción).
type StockMovementRepository interface {
	CreateBatch(ctx context.Context, movements []inventory.StockMovement) error
	ListByStockItem(ctx context.Context, stockItemID string, limit, offset int) ([]inventory.StockMovement, error)
	ListByOriginator(ctx context.Context, originator inventory.Originator, originatorID string) ([]inventory.StockMovement, error)
}
