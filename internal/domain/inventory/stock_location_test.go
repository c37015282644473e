package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

func TestStockLocation_ResolveStockItemHeredaBackorder(t *testing.T) {
	loc := inventory.NewStockLocation("Bodega Norte", "BN")
	loc.BackorderableDefault = true

	si, created := loc.ResolveStockItem("v-1", "SKU-1")
	require.True(t, created)
	assert.True(t, si.Backorderable)
	assert.Equal(t, loc.ID, si.StockLocationID)
	assert.Equal(t, inventory.UnlimitedBackorder, si.MaxBackorderQuantity)

	again, created := loc.ResolveStockItem("v-1", "otro")
	assert.False(t, created)
	assert.Same(t, si, again)
	assert.Len(t, loc.StockItems, 1)
}

func TestStockLocation_DisponibleYBackorder(t *testing.T) {
	loc := inventory.NewStockLocation("Tienda", "T1")
	assert.Zero(t, loc.CountAvailable("v-1"))
	assert.False(t, loc.Backorderable("v-1"))

	require.NoError(t, loc.Restock("v-1", "SKU-1", 7, inventory.OriginatorSupplier, "po-1"))
	assert.Equal(t, 7, loc.CountAvailable("v-1"))

	require.NoError(t, loc.Unstock("v-1", "SKU-1", 2, inventory.OriginatorDamage, ""))
	assert.Equal(t, 5, loc.CountAvailable("v-1"))
	assert.Error(t, loc.Unstock("v-1", "SKU-1", 6, inventory.OriginatorLoss, ""))
}

func TestStockLocation_CapacidadesYCoordenadas(t *testing.T) {
	loc := inventory.NewStockLocation("Centro", "C")
	assert.True(t, loc.CanShip())
	assert.False(t, loc.HasCoordinates())
	assert.Nil(t, loc.Point())

	loc.ShipEnabled = false
	assert.False(t, loc.CanShip())

	lat, lon := 4.71, -74.07
	loc.Latitude, loc.Longitude = &lat, &lon
	require.NotNil(t, loc.Point())
	assert.InDelta(t, 4.71, loc.Point().Latitude, 1e-9)
}

func TestStockLocation_CloneEsProfundo(t *testing.T) {
	loc := inventory.NewStockLocation("Centro", "C")
	loc.PublicMetadata["fulfillment_preference_priority"] = 3
	require.NoError(t, loc.Restock("v-1", "SKU-1", 4, inventory.OriginatorSupplier, ""))

	c := loc.Clone()
	c.PublicMetadata["fulfillment_preference_priority"] = 9
	require.NoError(t, c.Restock("v-1", "SKU-1", 1, inventory.OriginatorFound, ""))

	assert.Equal(t, 3, loc.PublicMetadata["fulfillment_preference_priority"])
	assert.Equal(t, 4, loc.StockItem("v-1").QuantityOnHand)
	assert.Equal(t, 5, c.StockItem("v-1").QuantityOnHand)
}
