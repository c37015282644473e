package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// Ensure StockLocationRepo implements repository.StockLocationRepository.
var _ repository.StockLocationRepository = (*StockLocationRepo)(nil)

const stockLocationColumns = `l.id, l.name, COALESCE(l.code, ''), l.latitude, l.longitude, l.active, l.ship_enabled,
	l.pickup_enabled, l.backorderable_default, l.public_metadata, l.private_metadata, l.created_at, l.updated_at`

// StockLocationRepo implementación PostgreSQL de repository.StockLocationRepository.
type StockLocationRepo struct {
	q Querier
}

// NewStockLocationRepository crea el repositorio sobre un pool o una tx.
func NewStockLocationRepository(q Querier) *StockLocationRepo {
	return &StockLocationRepo{q: q}
}

func (r *StockLocationRepo) Create(ctx context.Context, loc *inventory.StockLocation) error {
	query := `
		INSERT INTO stock_locations (id, name, code, latitude, longitude, active, ship_enabled, pickup_enabled,
			backorderable_default, public_metadata, private_metadata, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.q.Exec(ctx, query,
		loc.ID, loc.Name, loc.Code, loc.Latitude, loc.Longitude, loc.Active, loc.ShipEnabled, loc.PickupEnabled,
		loc.BackorderableDefault, metadata(loc.PublicMetadata), metadata(loc.PrivateMetadata), loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.ErrDuplicate.Code, "código de ubicación duplicado: "+loc.Code)
		}
		return fmt.Errorf("crear ubicación: %w", err)
	}
	return nil
}

func (r *StockLocationRepo) GetByID(ctx context.Context, id string) (*inventory.StockLocation, error) {
	row := r.q.QueryRow(ctx, `SELECT `+stockLocationColumns+` FROM stock_locations l WHERE l.id = $1`, id)
	loc, err := scanStockLocation(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener ubicación: %w", err)
	}
	return loc, nil
}

// GetForUpdate bloquea la ubicación y todos sus items; los items quedan ordenados por ID.
func (r *StockLocationRepo) GetForUpdate(ctx context.Context, id string) (*inventory.StockLocation, error) {
	row := r.q.QueryRow(ctx, `SELECT `+stockLocationColumns+` FROM stock_locations l WHERE l.id = $1 FOR UPDATE`, id)
	loc, err := scanStockLocation(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("bloquear ubicación: %w", err)
	}
	items, err := queryStockItems(ctx, r.q, `
		SELECT `+stockItemColumns+` FROM stock_items si
		WHERE si.stock_location_id = $1
		ORDER BY si.id
		FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	loc.StockItems = items
	return loc, nil
}

func (r *StockLocationRepo) Update(ctx context.Context, loc *inventory.StockLocation) error {
	query := `
		UPDATE stock_locations
		SET name = $2, code = NULLIF($3, ''), latitude = $4, longitude = $5, active = $6, ship_enabled = $7,
			pickup_enabled = $8, backorderable_default = $9, public_metadata = $10, private_metadata = $11,
			updated_at = $12
		WHERE id = $1
	`
	tag, err := r.q.Exec(ctx, query,
		loc.ID, loc.Name, loc.Code, loc.Latitude, loc.Longitude, loc.Active, loc.ShipEnabled,
		loc.PickupEnabled, loc.BackorderableDefault, metadata(loc.PublicMetadata), metadata(loc.PrivateMetadata),
		loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(domain.ErrDuplicate.Code, "código de ubicación duplicado: "+loc.Code)
		}
		return fmt.Errorf("actualizar ubicación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrStockLocationMissing
	}
	return nil
}

func (r *StockLocationRepo) List(ctx context.Context, limit, offset int) ([]*inventory.StockLocation, error) {
	query := `
		SELECT ` + stockLocationColumns + `
		FROM stock_locations l
		ORDER BY l.name, l.id
		LIMIT NULLIF($1::int, 0) OFFSET $2
	`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones: %w", err)
	}
	defer rows.Close()

	var list []*inventory.StockLocation
	for rows.Next() {
		loc, err := scanStockLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear ubicación: %w", err)
		}
		list = append(list, loc)
	}
	return list, rows.Err()
}

// ListByVariant ubicaciones con item de la variante; cada una trae solo ese item.
func (r *StockLocationRepo) ListByVariant(ctx context.Context, variantID string) ([]*inventory.StockLocation, error) {
	query := `
		SELECT ` + stockLocationColumns + `, si.id
		FROM stock_locations l
		JOIN stock_items si ON si.stock_location_id = l.id
		WHERE si.variant_id = $1
		ORDER BY l.name, l.id
	`
	rows, err := r.q.Query(ctx, query, variantID)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones por variante: %w", err)
	}
	defer rows.Close()

	var list []*inventory.StockLocation
	var itemIDs []string
	for rows.Next() {
		var loc inventory.StockLocation
		var itemID string
		if err := rows.Scan(locationDest(&loc, &itemID)...); err != nil {
			return nil, fmt.Errorf("escanear ubicación: %w", err)
		}
		list = append(list, &loc)
		itemIDs = append(itemIDs, itemID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if len(list) == 0 {
		return nil, nil
	}

	items, err := queryStockItems(ctx, r.q, `SELECT `+stockItemColumns+` FROM stock_items si WHERE si.id = ANY($1)`, itemIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*inventory.StockItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	for i, loc := range list {
		if it, ok := byID[itemIDs[i]]; ok {
			loc.StockItems = []*inventory.StockItem{it}
		}
	}
	return list, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockLocation(row rowScanner) (*inventory.StockLocation, error) {
	var loc inventory.StockLocation
	if err := row.Scan(locationDest(&loc)...); err != nil {
		return nil, err
	}
	return &loc, nil
}

func locationDest(loc *inventory.StockLocation, extra ...any) []any {
	dest := []any{
		&loc.ID, &loc.Name, &loc.Code, &loc.Latitude, &loc.Longitude, &loc.Active, &loc.ShipEnabled,
		&loc.PickupEnabled, &loc.BackorderableDefault, &loc.PublicMetadata, &loc.PrivateMetadata,
		&loc.CreatedAt, &loc.UpdatedAt,
	}
	return append(dest, extra...)
}

// metadata JSONB nunca NULL.
func metadata(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
