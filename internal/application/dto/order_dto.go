package dto

// ReserveOrderRequest reserva el stock de un pedido según el plan de la estrategia.
type ReserveOrderRequest struct {
	Strategy string `json:"strategy"`
}

// ShipOrderLine unidades despachadas de una variante.
type ShipOrderLine struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// ShipOrderRequest confirma el despacho de un pedido desde una ubicación.
type ShipOrderRequest struct {
	ShipmentID      string          `json:"shipment_id"`
	StockLocationID string          `json:"stock_location_id"`
	Items           []ShipOrderLine `json:"items"`
}

// OrderReservationResponse reservas realizadas o liberadas para un pedido.
type OrderReservationResponse struct {
	OrderID     string                   `json:"order_id"`
	Plan        *FulfillmentPlanResponse `json:"plan,omitempty"`
	StockItems  []StockItemResponse      `json:"stock_items"`
	Backordered int                      `json:"backordered_units"`
}
