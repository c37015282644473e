package dto

import "time"

// CreateStockTransferRequest sin source_location_id es una recepción de proveedor.
type CreateStockTransferRequest struct {
	SourceLocationID      string `json:"source_location_id,omitempty"`
	DestinationLocationID string `json:"destination_location_id"`
	Reference             string `json:"reference,omitempty"`
}

// TransferLineRequest cantidad de una variante.
type TransferLineRequest struct {
	VariantID string `json:"variant_id"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int    `json:"quantity"`
}

// ExecuteTransferRequest líneas a mover o recibir.
type ExecuteTransferRequest struct {
	Items []TransferLineRequest `json:"items"`
}

// RejectTransferRequest motivo del rechazo.
type RejectTransferRequest struct {
	Reason string `json:"reason"`
}

// StockTransferResponse salida de un traslado.
type StockTransferResponse struct {
	ID                    string                  `json:"id"`
	Number                string                  `json:"number"`
	Reference             string                  `json:"reference,omitempty"`
	SourceLocationID      string                  `json:"source_location_id,omitempty"`
	DestinationLocationID string                  `json:"destination_location_id"`
	State                 string                  `json:"state"`
	FinalizedReason       string                  `json:"finalized_reason,omitempty"`
	RejectionReason       string                  `json:"rejection_reason,omitempty"`
	Movements             []StockMovementResponse `json:"movements,omitempty"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
	FinalizedAt           *time.Time              `json:"finalized_at,omitempty"`
}
