package dto

import "time"

// CreateStockLocationRequest entrada para crear una ubicación de stock.
type CreateStockLocationRequest struct {
	Name                 string         `json:"name" validate:"required,min=1,max=200"`
	Code                 string         `json:"code"`
	Latitude             *float64       `json:"latitude,omitempty"`
	Longitude            *float64       `json:"longitude,omitempty"`
	ShipEnabled          *bool          `json:"ship_enabled,omitempty"`
	PickupEnabled        bool           `json:"pickup_enabled"`
	BackorderableDefault bool           `json:"backorderable_default"`
	PublicMetadata       map[string]any `json:"public_metadata,omitempty"`
	PrivateMetadata      map[string]any `json:"private_metadata,omitempty"`
}

// UpdateStockLocationRequest entrada para actualizar una ubicación.
type UpdateStockLocationRequest struct {
	Name                 *string        `json:"name" validate:"omitempty,min=1,max=200"`
	Latitude             *float64       `json:"latitude,omitempty"`
	Longitude            *float64       `json:"longitude,omitempty"`
	Active               *bool          `json:"active,omitempty"`
	ShipEnabled          *bool          `json:"ship_enabled,omitempty"`
	PickupEnabled        *bool          `json:"pickup_enabled,omitempty"`
	BackorderableDefault *bool          `json:"backorderable_default,omitempty"`
	PublicMetadata       map[string]any `json:"public_metadata,omitempty"`
	PrivateMetadata      map[string]any `json:"private_metadata,omitempty"`
}

// StockLocationResponse salida de una ubicación. Los metadatos privados no se exponen.
type StockLocationResponse struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Code                 string         `json:"code"`
	Latitude             *float64       `json:"latitude,omitempty"`
	Longitude            *float64       `json:"longitude,omitempty"`
	Active               bool           `json:"active"`
	ShipEnabled          bool           `json:"ship_enabled"`
	PickupEnabled        bool           `json:"pickup_enabled"`
	BackorderableDefault bool           `json:"backorderable_default"`
	PublicMetadata       map[string]any `json:"public_metadata,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// StockLocationListResponse lista paginada de ubicaciones.
type StockLocationListResponse struct {
	Items []StockLocationResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
