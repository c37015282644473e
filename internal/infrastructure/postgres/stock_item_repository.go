package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// Ensure StockItemRepo implements repository.StockItemRepository.
var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `si.id, si.variant_id, si.stock_location_id, si.sku, si.quantity_on_hand, si.quantity_reserved,
	si.backorderable, si.max_backorder_quantity, si.created_at, si.updated_at, si.deleted_at`

// StockItemRepo implementación PostgreSQL de repository.StockItemRepository.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository crea el repositorio sobre un pool o una tx.
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

func (r *StockItemRepo) Create(ctx context.Context, item *inventory.StockItem) error {
	query := `
		INSERT INTO stock_items (id, variant_id, stock_location_id, sku, quantity_on_hand, quantity_reserved,
			backorderable, max_backorder_quantity, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.VariantID, item.StockLocationID, item.SKU, item.QuantityOnHand, item.QuantityReserved,
		item.Backorderable, item.MaxBackorderQuantity, item.CreatedAt, item.UpdatedAt, item.DeletedAt,
	)
	if err != nil {
		return mapStockItemError(err)
	}
	return r.saveChildren(ctx, item)
}

func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*inventory.StockItem, error) {
	return r.getOne(ctx, `WHERE si.id = $1`, id)
}

func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*inventory.StockItem, error) {
	return r.getOne(ctx, `WHERE si.id = $1 FOR UPDATE`, id)
}

func (r *StockItemRepo) GetByLocationAndVariant(ctx context.Context, locationID, variantID string) (*inventory.StockItem, error) {
	return r.getOne(ctx, `WHERE si.stock_location_id = $1 AND si.variant_id = $2`, locationID, variantID)
}

func (r *StockItemRepo) GetByLocationAndSKU(ctx context.Context, locationID, sku string) (*inventory.StockItem, error) {
	return r.getOne(ctx, `WHERE si.stock_location_id = $1 AND si.sku = $2`, locationID, sku)
}

func (r *StockItemRepo) ListReservedForOrder(ctx context.Context, orderID string) ([]*inventory.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items si
		JOIN stock_reservations r ON r.stock_item_id = si.id
		WHERE r.order_id = $1 AND r.quantity > 0
		ORDER BY si.id
		FOR UPDATE OF si
	`
	return queryStockItems(ctx, r.q, query, orderID)
}

// Save upsert del item; reemplaza sus reservas y hace upsert de sus unidades.
func (r *StockItemRepo) Save(ctx context.Context, item *inventory.StockItem) error {
	query := `
		INSERT INTO stock_items (id, variant_id, stock_location_id, sku, quantity_on_hand, quantity_reserved,
			backorderable, max_backorder_quantity, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			quantity_on_hand = EXCLUDED.quantity_on_hand,
			quantity_reserved = EXCLUDED.quantity_reserved,
			backorderable = EXCLUDED.backorderable,
			max_backorder_quantity = EXCLUDED.max_backorder_quantity,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at
	`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.VariantID, item.StockLocationID, item.SKU, item.QuantityOnHand, item.QuantityReserved,
		item.Backorderable, item.MaxBackorderQuantity, item.CreatedAt, item.UpdatedAt, item.DeletedAt,
	)
	if err != nil {
		return mapStockItemError(err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_reservations WHERE stock_item_id = $1`, item.ID); err != nil {
		return fmt.Errorf("limpiar reservas: %w", err)
	}
	return r.saveChildren(ctx, item)
}

func (r *StockItemRepo) saveChildren(ctx context.Context, item *inventory.StockItem) error {
	batch := &pgx.Batch{}
	for _, res := range item.Reservations {
		if res.Quantity <= 0 {
			continue
		}
		batch.Queue(`INSERT INTO stock_reservations (stock_item_id, order_id, quantity) VALUES ($1, $2, $3)`,
			item.ID, res.OrderID, res.Quantity)
	}
	for _, u := range item.BackorderedUnits {
		batch.Queue(`
			INSERT INTO inventory_units (id, stock_item_id, order_id, line_item_id, quantity, state, created_at, filled_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET quantity = EXCLUDED.quantity, state = EXCLUDED.state, filled_at = EXCLUDED.filled_at`,
			u.ID, item.ID, u.OrderID, u.LineItemID, u.Quantity, u.State, u.CreatedAt, u.FilledAt)
	}
	if err := execBatch(ctx, r.q, batch); err != nil {
		return fmt.Errorf("guardar reservas y unidades: %w", err)
	}
	return nil
}

func (r *StockItemRepo) getOne(ctx context.Context, where string, args ...any) (*inventory.StockItem, error) {
	items, err := queryStockItems(ctx, r.q, `SELECT `+stockItemColumns+` FROM stock_items si `+where, args...)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// queryStockItems ejecuta la consulta y carga reservas y unidades de cada item.
func queryStockItems(ctx context.Context, q Querier, query string, args ...any) ([]*inventory.StockItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("consultar stock items: %w", err)
	}
	defer rows.Close()

	var items []*inventory.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if err := loadStockItemChildren(ctx, q, items); err != nil {
		return nil, err
	}
	return items, nil
}

func scanStockItem(row pgx.Row) (*inventory.StockItem, error) {
	var si inventory.StockItem
	err := row.Scan(
		&si.ID, &si.VariantID, &si.StockLocationID, &si.SKU, &si.QuantityOnHand, &si.QuantityReserved,
		&si.Backorderable, &si.MaxBackorderQuantity, &si.CreatedAt, &si.UpdatedAt, &si.DeletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("escanear stock item: %w", err)
	}
	return &si, nil
}

func loadStockItemChildren(ctx context.Context, q Querier, items []*inventory.StockItem) error {
	if len(items) == 0 {
		return nil
	}
	byID := make(map[string]*inventory.StockItem, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		byID[it.ID] = it
		ids = append(ids, it.ID)
	}

	rows, err := q.Query(ctx, `
		SELECT stock_item_id, order_id, quantity FROM stock_reservations
		WHERE stock_item_id = ANY($1) ORDER BY stock_item_id, order_id`, ids)
	if err != nil {
		return fmt.Errorf("consultar reservas: %w", err)
	}
	for rows.Next() {
		var itemID string
		var res inventory.StockReservation
		if err := rows.Scan(&itemID, &res.OrderID, &res.Quantity); err != nil {
			rows.Close()
			return fmt.Errorf("escanear reserva: %w", err)
		}
		byID[itemID].Reservations = append(byID[itemID].Reservations, res)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx, `
		SELECT id, stock_item_id, order_id, line_item_id, quantity, state, created_at, filled_at
		FROM inventory_units
		WHERE stock_item_id = ANY($1) AND state = $2
		ORDER BY created_at, id`, ids, inventory.UnitStateBackordered)
	if err != nil {
		return fmt.Errorf("consultar unidades: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u inventory.InventoryUnit
		if err := rows.Scan(&u.ID, &u.StockItemID, &u.OrderID, &u.LineItemID, &u.Quantity, &u.State, &u.CreatedAt, &u.FilledAt); err != nil {
			return fmt.Errorf("escanear unidad: %w", err)
		}
		byID[u.StockItemID].BackorderedUnits = append(byID[u.StockItemID].BackorderedUnits, &u)
	}
	return rows.Err()
}

func mapStockItemError(err error) error {
	if isUniqueViolation(err) {
		return inventory.ErrDuplicateSku
	}
	if isForeignKeyViolation(err) {
		return inventory.ErrStockLocationMissing
	}
	return fmt.Errorf("guardar stock item: %w", err)
}
