package inventory

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Locations repository.StockLocationRepository
	Items     repository.StockItemRepository
	Movements repository.StockMovementRepository
	Transfers repository.StockTransferRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
