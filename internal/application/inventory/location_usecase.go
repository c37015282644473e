package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones de stock.
type LocationUseCase struct {
	repo repository.StockLocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.StockLocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una nueva ubicación. Por defecto queda activa y habilitada para despachos.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateStockLocationRequest) (*dto.StockLocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation(domain.ErrInvalidInput.Code, "name es obligatorio")
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	loc := inventory.NewStockLocation(name, strings.TrimSpace(in.Code))
	loc.Latitude = in.Latitude
	loc.Longitude = in.Longitude
	if in.ShipEnabled != nil {
		loc.ShipEnabled = *in.ShipEnabled
	}
	loc.PickupEnabled = in.PickupEnabled
	loc.BackorderableDefault = in.BackorderableDefault
	if in.PublicMetadata != nil {
		loc.PublicMetadata = in.PublicMetadata
	}
	if in.PrivateMetadata != nil {
		loc.PrivateMetadata = in.PrivateMetadata
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.StockLocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, inventory.ErrStockLocationMissing
	}
	return toLocationResponse(loc), nil
}

// Update actualiza una ubicación. Los metadatos enviados reemplazan a los actuales.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateStockLocationRequest) (*dto.StockLocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, inventory.ErrStockLocationMissing
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation(domain.ErrInvalidInput.Code, "name no puede quedar vacío")
		}
		loc.Name = name
	}
	if in.Latitude != nil || in.Longitude != nil {
		if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
			return nil, err
		}
		loc.Latitude, loc.Longitude = in.Latitude, in.Longitude
	}
	if in.Active != nil {
		loc.Active = *in.Active
	}
	if in.ShipEnabled != nil {
		loc.ShipEnabled = *in.ShipEnabled
	}
	if in.PickupEnabled != nil {
		loc.PickupEnabled = *in.PickupEnabled
	}
	if in.BackorderableDefault != nil {
		loc.BackorderableDefault = *in.BackorderableDefault
	}
	if in.PublicMetadata != nil {
		loc.PublicMetadata = in.PublicMetadata
	}
	if in.PrivateMetadata != nil {
		loc.PrivateMetadata = in.PrivateMetadata
	}
	loc.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.StockLocationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.StockLocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// validateCoordinates latitud y longitud van juntas y dentro de rango.
func validateCoordinates(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		return domain.Validation(domain.ErrInvalidInput.Code, "latitude y longitude van juntas")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 || *lon < -180 || *lon > 180 {
		return domain.Validation(domain.ErrInvalidInput.Code, "coordenadas fuera de rango")
	}
	return nil
}
