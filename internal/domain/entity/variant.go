package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant variante vendible de un producto (talla, color...). El inventario se
// lleva por variante en cada ubicación (StockItem).
type Variant struct {
	ID             string
	ProductID      string
	SKU            string // único en el catálogo
	Name           string
	Price          decimal.Decimal
	TrackInventory bool // false: no se reserva ni se planifica despacho
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
