package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una unidad de inventario.
const (
	UnitStateBackordered = "backordered"
	UnitStateOnHand      = "on_hand"
	UnitStateCanceled    = "canceled"
)

// InventoryUnit unidad de una orden pendiente de stock físico (backorder).
// Se llena en orden de antigüedad cuando llega stock a la ubicación.
type InventoryUnit struct {
	ID          string
	StockItemID string
	OrderID     string
	LineItemID  string
	Quantity    int
	State       string
	CreatedAt   time.Time
	FilledAt    *time.Time
}

// NewBackorderedUnit crea una unidad pendiente.
func NewBackorderedUnit(stockItemID, orderID, lineItemID string, quantity int) *InventoryUnit {
	return &InventoryUnit{
		ID:          uuid.New().String(),
		StockItemID: stockItemID,
		OrderID:     orderID,
		LineItemID:  lineItemID,
		Quantity:    quantity,
		State:       UnitStateBackordered,
		CreatedAt:   time.Now().UTC(),
	}
}

// Backordered indica si la unidad sigue esperando stock.
func (u *InventoryUnit) Backordered() bool {
	return u.State == UnitStateBackordered
}

func (u *InventoryUnit) fill(now time.Time) {
	u.State = UnitStateOnHand
	u.FilledAt = &now
}

func (u *InventoryUnit) cancel() {
	u.State = UnitStateCanceled
}
