package inventory

import "github.com/jhoicas/fulfillment-api/internal/domain"

// Tipos de agregado.
const (
	AggregateTypeStockItem     = "StockItem"
	AggregateTypeStockTransfer = "StockTransfer"
)

// Tipos de evento.
const (
	EventTypeStockAdjusted             = "StockAdjusted"
	EventTypeStockReserved             = "StockReserved"
	EventTypeStockReleased             = "StockReleased"
	EventTypeStockShipped              = "StockShipped"
	EventTypeBackorderProcessed        = "BackorderProcessed"
	EventTypeStockItemDeleted          = "StockItemDeleted"
	EventTypeStockTransferStateChanged = "StockTransferStateChanged"
	EventTypeStockTransferred          = "StockTransferred"
	EventTypeStockReceived             = "StockReceived"
)

// StockAdjustedEvent cambio físico de on-hand (reposición, daño, pérdida...).
type StockAdjustedEvent struct {
	domain.BaseEvent
	StockItemID     string     `json:"stock_item_id"`
	VariantID       string     `json:"variant_id"`
	StockLocationID string     `json:"stock_location_id"`
	Quantity        int        `json:"quantity"`
	QuantityOnHand  int        `json:"quantity_on_hand"`
	Originator      Originator `json:"originator"`
	OriginatorID    string     `json:"originator_id,omitempty"`
	Reason          string     `json:"reason,omitempty"`
}

// StockReservedEvent reserva (o incremento de reserva) para una orden.
type StockReservedEvent struct {
	domain.BaseEvent
	StockItemID      string `json:"stock_item_id"`
	VariantID        string `json:"variant_id"`
	StockLocationID  string `json:"stock_location_id"`
	OrderID          string `json:"order_id,omitempty"`
	Quantity         int    `json:"quantity"`
	QuantityReserved int    `json:"quantity_reserved"`
}

// StockReleasedEvent liberación de reserva.
type StockReleasedEvent struct {
	domain.BaseEvent
	StockItemID      string `json:"stock_item_id"`
	VariantID        string `json:"variant_id"`
	StockLocationID  string `json:"stock_location_id"`
	OrderID          string `json:"order_id,omitempty"`
	Quantity         int    `json:"quantity"`
	QuantityReserved int    `json:"quantity_reserved"`
}

// StockShippedEvent confirmación de envío: baja on-hand y reservado a la vez.
type StockShippedEvent struct {
	domain.BaseEvent
	StockItemID     string `json:"stock_item_id"`
	VariantID       string `json:"variant_id"`
	StockLocationID string `json:"stock_location_id"`
	OrderID         string `json:"order_id,omitempty"`
	ShipmentID      string `json:"shipment_id"`
	Quantity        int    `json:"quantity"`
}

// BackorderProcessedEvent una unidad en backorder quedó cubierta por stock físico.
type BackorderProcessedEvent struct {
	domain.BaseEvent
	StockItemID     string `json:"stock_item_id"`
	InventoryUnitID string `json:"inventory_unit_id"`
	OrderID         string `json:"order_id"`
	LineItemID      string `json:"line_item_id,omitempty"`
	Quantity        int    `json:"quantity"`
}

// StockItemDeletedEvent borrado lógico solicitado; el registro no se elimina.
type StockItemDeletedEvent struct {
	domain.BaseEvent
	StockItemID     string `json:"stock_item_id"`
	VariantID       string `json:"variant_id"`
	StockLocationID string `json:"stock_location_id"`
}

// StockTransferStateChangedEvent transición de estado del traslado.
type StockTransferStateChangedEvent struct {
	domain.BaseEvent
	StockTransferID string        `json:"stock_transfer_id"`
	Number          string        `json:"number"`
	From            TransferState `json:"from"`
	To              TransferState `json:"to"`
	Reason          string        `json:"reason"`
}

// StockTransferredEvent traslado ejecutado entre dos ubicaciones.
type StockTransferredEvent struct {
	domain.BaseEvent
	StockTransferID       string         `json:"stock_transfer_id"`
	Number                string         `json:"number"`
	SourceLocationID      string         `json:"source_location_id"`
	DestinationLocationID string         `json:"destination_location_id"`
	Quantities            map[string]int `json:"quantities"`
}

// StockReceivedEvent recepción desde proveedor.
type StockReceivedEvent struct {
	domain.BaseEvent
	StockTransferID       string         `json:"stock_transfer_id"`
	Number                string         `json:"number"`
	DestinationLocationID string         `json:"destination_location_id"`
	Quantities            map[string]int `json:"quantities"`
}
