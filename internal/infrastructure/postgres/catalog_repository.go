package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var (
	_ repository.VariantRepository = (*VariantRepo)(nil)
	_ repository.OrderRepository   = (*OrderRepo)(nil)
)

const variantColumns = `id, product_id, sku, name, price, track_inventory, created_at, updated_at`

// VariantRepo variantes del catálogo (precio NUMERIC vía pgx-shopspring-decimal).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository crea el repositorio sobre un pool o una tx.
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	query := `INSERT INTO variants (` + variantColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, v.ID, v.ProductID, v.SKU, v.Name, v.Price, v.TrackInventory, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.ErrDuplicate.Code, "SKU de variante duplicado: "+v.SKU)
		}
		return fmt.Errorf("crear variante: %w", err)
	}
	return nil
}

func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	return r.get(ctx, `SELECT `+variantColumns+` FROM variants WHERE id = $1`, id)
}

func (r *VariantRepo) GetBySKU(ctx context.Context, sku string) (*entity.Variant, error) {
	return r.get(ctx, `SELECT `+variantColumns+` FROM variants WHERE sku = $1`, sku)
}

func (r *VariantRepo) get(ctx context.Context, query, arg string) (*entity.Variant, error) {
	var v entity.Variant
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.Price, &v.TrackInventory, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener variante: %w", err)
	}
	return &v, nil
}

// OrderRepo pedidos con sus líneas (order_line_items, en orden de posición).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository crea el repositorio sobre un pool o una tx.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO orders (id, number, ship_latitude, ship_longitude, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Number, o.ShipLatitude, o.ShipLongitude, o.CreatedAt)
	for i, li := range o.LineItems {
		batch.Queue(`
			INSERT INTO order_line_items (id, order_id, variant_id, quantity, position)
			VALUES ($1, $2, $3, $4, $5)`,
			li.ID, o.ID, li.VariantID, li.Quantity, i)
	}
	if err := execBatch(ctx, r.q, batch); err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.ErrDuplicate.Code, "pedido duplicado: "+o.ID)
		}
		return fmt.Errorf("crear pedido: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `
		SELECT id, number, ship_latitude, ship_longitude, created_at
		FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.Number, &o.ShipLatitude, &o.ShipLongitude, &o.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, variant_id, quantity
		FROM order_line_items
		WHERE order_id = $1
		ORDER BY position, id`, id)
	if err != nil {
		return nil, fmt.Errorf("obtener líneas del pedido: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.VariantID, &li.Quantity); err != nil {
			return nil, fmt.Errorf("escanear línea: %w", err)
		}
		o.LineItems = append(o.LineItems, li)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
