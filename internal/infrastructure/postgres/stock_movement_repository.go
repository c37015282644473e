package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// Ensure StockMovementRepo implements repository.StockMovementRepository.
var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, stock_item_id, quantity, originator, originator_id, action, reason, created_at`

// StockMovementRepo libro de movimientos (solo inserción). seq conserva el orden de inserción.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository crea el repositorio sobre un pool o una tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) CreateBatch(ctx context.Context, movements []inventory.StockMovement) error {
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(`INSERT INTO stock_movements (`+stockMovementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.ID, m.StockItemID, m.Quantity, string(m.Originator), m.OriginatorID, string(m.Action), m.Reason, m.CreatedAt)
	}
	if err := execBatch(ctx, r.q, batch); err != nil {
		return fmt.Errorf("registrar movimientos: %w", err)
	}
	return nil
}

// ListByStockItem del más reciente al más antiguo; limit 0 = sin límite.
func (r *StockMovementRepo) ListByStockItem(ctx context.Context, stockItemID string, limit, offset int) ([]inventory.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE stock_item_id = $1
		ORDER BY seq DESC
		LIMIT NULLIF($2::int, 0) OFFSET $3
	`
	return r.list(ctx, query, stockItemID, limit, offset)
}

// ListByOriginator en orden de inserción.
func (r *StockMovementRepo) ListByOriginator(ctx context.Context, originator inventory.Originator, originatorID string) ([]inventory.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE originator = $1 AND originator_id = $2
		ORDER BY seq
	`
	return r.list(ctx, query, string(originator), originatorID)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]inventory.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var list []inventory.StockMovement
	for rows.Next() {
		var m inventory.StockMovement
		var originator, action string
		if err := rows.Scan(&m.ID, &m.StockItemID, &m.Quantity, &originator, &m.OriginatorID, &action, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear movimiento: %w", err)
		}
		m.Originator = inventory.Originator(originator)
		m.Action = inventory.Action(action)
		list = append(list, m)
	}
	return list, rows.Err()
}
