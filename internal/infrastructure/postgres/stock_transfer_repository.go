package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// Ensure StockTransferRepo implements repository.StockTransferRepository.
var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

const stockTransferColumns = `id, number, reference, COALESCE(source_location_id, ''), destination_location_id, state,
	finalized_reason, rejection_reason, created_at, updated_at, finalized_at`

// StockTransferRepo implementación PostgreSQL de repository.StockTransferRepository.
// Los movimientos del traslado viven en stock_movements (originator = stock_transfer).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository crea el repositorio sobre un pool o una tx.
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

func (r *StockTransferRepo) Create(ctx context.Context, t *inventory.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (id, number, reference, source_location_id, destination_location_id, state,
			finalized_reason, rejection_reason, created_at, updated_at, finalized_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Number, t.Reference, t.SourceLocationID, t.DestinationLocationID, string(t.State),
		t.FinalizedReason, t.RejectionReason, t.CreatedAt, t.UpdatedAt, t.FinalizedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.ErrDuplicate.Code, "número de traslado duplicado: "+t.Number)
		}
		if isForeignKeyViolation(err) {
			return inventory.ErrStockLocationMissing
		}
		return fmt.Errorf("crear traslado: %w", err)
	}
	return nil
}

func (r *StockTransferRepo) GetByID(ctx context.Context, id string) (*inventory.StockTransfer, error) {
	return r.get(ctx, `SELECT `+stockTransferColumns+` FROM stock_transfers WHERE id = $1`, id)
}

func (r *StockTransferRepo) GetForUpdate(ctx context.Context, id string) (*inventory.StockTransfer, error) {
	return r.get(ctx, `SELECT `+stockTransferColumns+` FROM stock_transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockTransferRepo) Update(ctx context.Context, t *inventory.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET reference = $2, state = $3, finalized_reason = $4, rejection_reason = $5, updated_at = $6, finalized_at = $7
		WHERE id = $1
	`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Reference, string(t.State), t.FinalizedReason, t.RejectionReason, t.UpdatedAt, t.FinalizedAt)
	if err != nil {
		return fmt.Errorf("actualizar traslado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrTransferNotFound
	}
	return nil
}

func (r *StockTransferRepo) get(ctx context.Context, query, id string) (*inventory.StockTransfer, error) {
	var t inventory.StockTransfer
	var state string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Number, &t.Reference, &t.SourceLocationID, &t.DestinationLocationID, &state,
		&t.FinalizedReason, &t.RejectionReason, &t.CreatedAt, &t.UpdatedAt, &t.FinalizedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener traslado: %w", err)
	}
	t.State = inventory.TransferState(state)
	return &t, nil
}
