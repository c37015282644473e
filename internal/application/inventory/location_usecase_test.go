package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

func ptr[T any](v T) *T { return &v }

func TestLocationUseCase_CrearActualizarListar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.locations.Create(ctx, dto.CreateStockLocationRequest{
		Name:            "Bodega Medellín",
		Code:            "MED",
		Latitude:        ptr(6.2442),
		Longitude:       ptr(-75.5812),
		PublicMetadata:  map[string]any{"preference_priority": 2},
		PrivateMetadata: map[string]any{"cost_base": "4.5"},
	})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.True(t, created.ShipEnabled)
	assert.Equal(t, 2, created.PublicMetadata["preference_priority"])

	updated, err := f.locations.Update(ctx, created.ID, dto.UpdateStockLocationRequest{
		ShipEnabled: ptr(false),
		Name:        ptr("Bodega MDE"),
	})
	require.NoError(t, err)
	assert.False(t, updated.ShipEnabled)
	assert.Equal(t, "Bodega MDE", updated.Name)

	_, err = f.locations.Create(ctx, dto.CreateStockLocationRequest{Name: "Bogotá", Code: "BOG"})
	require.NoError(t, err)

	list, err := f.locations.List(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Bodega MDE", list.Items[0].Name, "orden por nombre")

	stored, err := f.store.Locations().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "4.5", stored.PrivateMetadata["cost_base"])
}

func TestLocationUseCase_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.locations.Create(ctx, dto.CreateStockLocationRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.locations.Create(ctx, dto.CreateStockLocationRequest{Name: "X", Latitude: ptr(4.6)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "latitud sin longitud")

	_, err = f.locations.Create(ctx, dto.CreateStockLocationRequest{Name: "X", Latitude: ptr(91.0), Longitude: ptr(0.0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.locations.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, inventory.ErrStockLocationMissing)

	_, err = f.locations.Create(ctx, dto.CreateStockLocationRequest{Name: "A", Code: "DUP"})
	require.NoError(t, err)
	_, err = f.locations.Create(ctx, dto.CreateStockLocationRequest{Name: "B", Code: "DUP"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
