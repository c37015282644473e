package entity

import (
	"time"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/pkg/geo"
)

// Errores de pedido y variante.
var (
	ErrOrderNotFound   = domain.NotFound("Order.NotFound", "pedido no encontrado")
	ErrOrderEmpty      = domain.Validation("Order.Empty", "el pedido no tiene líneas")
	ErrVariantNotFound = domain.NotFound("Variant.NotFound", "variante no encontrada")
)

// Order pedido de solo lectura para el planificador de despacho.
type Order struct {
	ID            string
	Number        string
	ShipLatitude  *float64
	ShipLongitude *float64
	LineItems     []LineItem
	CreatedAt     time.Time
}

// LineItem línea del pedido.
type LineItem struct {
	ID        string
	OrderID   string
	VariantID string
	Quantity  int
}

// ShipPoint coordenadas de la dirección de envío, nil si faltan.
func (o *Order) ShipPoint() *geo.Point {
	return geo.NewPoint(o.ShipLatitude, o.ShipLongitude)
}

// LineItem busca una línea por ID.
func (o *Order) LineItem(id string) (LineItem, bool) {
	for _, li := range o.LineItems {
		if li.ID == id {
			return li, true
		}
	}
	return LineItem{}, false
}
