package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Originator tipo de entidad que origina un movimiento de stock.
type Originator string

const (
	OriginatorStockTransfer Originator = "stock_transfer"
	OriginatorOrder         Originator = "order"
	OriginatorReturn        Originator = "return"
	OriginatorDamage        Originator = "damage"
	OriginatorLoss          Originator = "loss"
	OriginatorFound         Originator = "found"
	OriginatorPromotion     Originator = "promotion"
	OriginatorAdjustment    Originator = "adjustment"
	OriginatorRecount       Originator = "recount"
	OriginatorShipment      Originator = "shipment"
	OriginatorSupplier      Originator = "supplier"
	OriginatorCustomer      Originator = "customer"
	OriginatorUndefined     Originator = "undefined"
)

// ParseOriginator convierte el texto recibido en un Originator conocido; desconocido → Undefined.
func ParseOriginator(s string) Originator {
	switch o := Originator(s); o {
	case OriginatorStockTransfer, OriginatorOrder, OriginatorReturn, OriginatorDamage,
		OriginatorLoss, OriginatorFound, OriginatorPromotion, OriginatorAdjustment,
		OriginatorRecount, OriginatorShipment, OriginatorSupplier, OriginatorCustomer:
		return o
	default:
		return OriginatorUndefined
	}
}

// Action qué le ocurrió al stock en un movimiento.
type Action string

const (
	ActionReceived   Action = "received"
	ActionSold       Action = "sold"
	ActionReturned   Action = "returned"
	ActionDamaged    Action = "damaged"
	ActionLost       Action = "lost"
	ActionAdjustment Action = "adjustment"
	ActionReserved   Action = "reserved"
	ActionReleased   Action = "released"
	ActionAllocated  Action = "allocated"
	ActionPicked     Action = "picked"
	ActionPacked     Action = "packed"
	ActionShipped    Action = "shipped"
	ActionUndefined  Action = "undefined"
)

// StockMovement registro inmutable de un delta de cantidad sobre un StockItem.
// Quantity positivo = aumento, negativo = disminución.
// OriginatorID es solo una clave de búsqueda: su significado depende de Originator
// (id de envío, de traslado, de orden...), no es una referencia tipada.
type StockMovement struct {
	ID           string
	StockItemID  string
	Quantity     int
	Originator   Originator
	OriginatorID string
	Action       Action
	Reason       string
	CreatedAt    time.Time
}

func newMovement(stockItemID string, quantity int, originator Originator, action Action, reason, originatorID string) StockMovement {
	return StockMovement{
		ID:           uuid.New().String(),
		StockItemID:  stockItemID,
		Quantity:     quantity,
		Originator:   originator,
		OriginatorID: originatorID,
		Action:       action,
		Reason:       reason,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsIncrease indica si el movimiento aumenta la cantidad.
func (m StockMovement) IsIncrease() bool {
	return m.Quantity > 0
}
