package dto

// LineItemInput línea de un pedido enviado en línea.
type LineItemInput struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// OrderInput pedido en línea para planificar sin persistirlo.
type OrderInput struct {
	ID            string          `json:"id"`
	Number        string          `json:"number,omitempty"`
	ShipLatitude  *float64        `json:"ship_latitude,omitempty"`
	ShipLongitude *float64        `json:"ship_longitude,omitempty"`
	LineItems     []LineItemInput `json:"line_items"`
}

// PlanFulfillmentRequest planificar un pedido guardado (order_id) o uno en línea (order).
type PlanFulfillmentRequest struct {
	OrderID  string      `json:"order_id,omitempty"`
	Order    *OrderInput `json:"order,omitempty"`
	Strategy string      `json:"strategy"`
}

// FulfillmentItemResponse línea asignada a una ubicación.
type FulfillmentItemResponse struct {
	LineItemID    string `json:"line_item_id"`
	VariantID     string `json:"variant_id"`
	Quantity      int    `json:"quantity"`
	IsBackordered bool   `json:"is_backordered"`
}

// ShipmentPlanResponse envío desde una ubicación.
type ShipmentPlanResponse struct {
	LocationID   string                    `json:"location_id"`
	LocationName string                    `json:"location_name"`
	Items        []FulfillmentItemResponse `json:"items"`
}

// FulfillmentPlanResponse resultado del planificador.
type FulfillmentPlanResponse struct {
	Strategy             string                 `json:"strategy"`
	Shipments            []ShipmentPlanResponse `json:"shipments"`
	IsFullyFulfillable   bool                   `json:"is_fully_fulfillable"`
	IsPartialFulfillment bool                   `json:"is_partial_fulfillment"`
	UnfulfilledLineItems []string               `json:"unfulfilled_line_items,omitempty"`
}

// AllocationRequest repartir una cantidad de una variante entre ubicaciones.
type AllocationRequest struct {
	VariantID    string   `json:"variant_id"`
	Quantity     int      `json:"quantity"`
	Strategy     string   `json:"strategy"`
	MaxLocations int      `json:"max_locations"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// AllocationResponse cantidad asignada a una ubicación.
type AllocationResponse struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Quantity     int    `json:"quantity"`
}

// AllocationListResponse asignaciones sugeridas. Vacía si el stock total no alcanza.
type AllocationListResponse struct {
	Strategy                  string               `json:"strategy"`
	SupportsMultipleLocations bool                 `json:"supports_multiple_locations"`
	Items                     []AllocationResponse `json:"items"`
}

// StrategyListResponse estrategias disponibles.
type StrategyListResponse struct {
	Default string   `json:"default"`
	Items   []string `json:"items"`
}
