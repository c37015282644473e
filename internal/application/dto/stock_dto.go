package dto

import "time"

// CreateStockItemRequest body para POST /api/stock-items.
type CreateStockItemRequest struct {
	StockLocationID      string `json:"stock_location_id"`
	VariantID            string `json:"variant_id"`
	SKU                  string `json:"sku"`
	QuantityOnHand       int    `json:"quantity_on_hand"`
	Backorderable        *bool  `json:"backorderable,omitempty"` // nil: valor por defecto de la ubicación
	MaxBackorderQuantity *int   `json:"max_backorder_quantity,omitempty"`
}

// AdjustStockRequest delta firmado sobre on-hand.
type AdjustStockRequest struct {
	Quantity     int    `json:"quantity"`
	Originator   string `json:"originator"`
	OriginatorID string `json:"originator_id,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// ReserveStockRequest reserva (o actualiza la reserva) de una orden.
type ReserveStockRequest struct {
	Quantity int    `json:"quantity"`
	OrderID  string `json:"order_id,omitempty"`
}

// ReleaseStockRequest libera reserva.
type ReleaseStockRequest struct {
	Quantity int    `json:"quantity"`
	OrderID  string `json:"order_id,omitempty"`
}

// ConfirmShipmentRequest confirma el envío de unidades reservadas.
type ConfirmShipmentRequest struct {
	Quantity   int    `json:"quantity"`
	ShipmentID string `json:"shipment_id"`
	OrderID    string `json:"order_id,omitempty"`
}

// ReservationResponse reserva vigente de una orden.
type ReservationResponse struct {
	OrderID  string `json:"order_id"`
	Quantity int    `json:"quantity"`
}

// StockItemResponse salida de un StockItem con sus cantidades derivadas.
type StockItemResponse struct {
	ID                   string                `json:"id"`
	VariantID            string                `json:"variant_id"`
	StockLocationID      string                `json:"stock_location_id"`
	SKU                  string                `json:"sku"`
	QuantityOnHand       int                   `json:"quantity_on_hand"`
	QuantityReserved     int                   `json:"quantity_reserved"`
	CountAvailable       int                   `json:"count_available"`
	BackorderQuantity    int                   `json:"backorder_quantity"`
	Backorderable        bool                  `json:"backorderable"`
	MaxBackorderQuantity int                   `json:"max_backorder_quantity"`
	Reservations         []ReservationResponse `json:"reservations"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
	DeletedAt            *time.Time            `json:"deleted_at,omitempty"`
}

// StockMovementResponse movimiento del libro de stock.
type StockMovementResponse struct {
	ID           string    `json:"id"`
	StockItemID  string    `json:"stock_item_id"`
	Quantity     int       `json:"quantity"`
	Originator   string    `json:"originator"`
	OriginatorID string    `json:"originator_id,omitempty"`
	Action       string    `json:"action"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// InvariantReport resultado de revisar las invariantes de un StockItem.
type InvariantReport struct {
	StockItemID string        `json:"stock_item_id"`
	Valid       bool          `json:"valid"`
	Violations  []ErrorDetail `json:"violations,omitempty"`
}
