package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// StockTransferRepository define el puerto de persistencia para traslados.
type StockTransferRepository interface {
	Create(ctx context.Context, t *inventory.StockTransfer) error
	GetByID(ctx context.Context, id string) (*inventory.StockTransfer, error)
	GetForUpdate(ctx context.Context, id string) (*inventory.StockTransfer, error)
	Update(ctx context.Context, t *inventory.StockTransfer) error
}
