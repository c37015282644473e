package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/fulfillment"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

func planFor(shipments ...fulfillment.ShipmentPlan) *fulfillment.PlanResult {
	lines := 0
	for _, sh := range shipments {
		lines += len(sh.Items)
	}
	p, _ := fulfillment.NewPlanResult(fulfillment.StrategyHighestStock, shipments, lines, nil)
	return p
}

func TestReserveOrder_ReservaYEsIdempotente(t *testing.T) {
	f := newFixture(t)
	loc := f.location(t, "Bodega")
	cam := f.variant(t, "CAM-001")
	pan := f.variant(t, "PAN-001")
	siCam := f.item(t, loc, cam, 10, false)
	siPan := f.item(t, loc, pan, 4, false)
	f.order(t, "o-1",
		entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 3},
		entity.LineItem{ID: "l2", VariantID: pan.ID, Quantity: 4},
	)
	plan := planFor(fulfillment.ShipmentPlan{LocationID: loc.ID, LocationName: loc.Name, Items: []fulfillment.Item{
		{LineItemID: "l1", VariantID: cam.ID, Quantity: 3},
		{LineItemID: "l2", VariantID: pan.ID, Quantity: 4},
	}})
	ctx := context.Background()

	res, err := f.reservations.ReserveOrder(ctx, "o-1", plan)
	require.NoError(t, err)
	assert.Len(t, res.StockItems, 2)
	assert.Zero(t, res.Backordered)
	assert.Equal(t, 3, f.reload(t, siCam.ID).QuantityReserved)
	assert.Equal(t, 4, f.reload(t, siPan.ID).QuantityReserved)

	f.pub.reset()
	_, err = f.reservations.ReserveOrder(ctx, "o-1", plan)
	require.NoError(t, err)
	assert.Equal(t, 3, f.reload(t, siCam.ID).QuantityReserved, "la segunda llamada no duplica")
	assert.Empty(t, f.pub.types())
}

func TestReserveOrder_TodoONada(t *testing.T) {
	f := newFixture(t)
	norte := f.location(t, "Norte")
	sur := f.location(t, "Sur")
	cam := f.variant(t, "CAM-001")
	siNorte := f.item(t, norte, cam, 10, false)
	f.item(t, sur, cam, 1, false)
	f.order(t, "o-1",
		entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 5},
		entity.LineItem{ID: "l2", VariantID: cam.ID, Quantity: 5},
	)
	plan := planFor(
		fulfillment.ShipmentPlan{LocationID: norte.ID, Items: []fulfillment.Item{{LineItemID: "l1", VariantID: cam.ID, Quantity: 5}}},
		fulfillment.ShipmentPlan{LocationID: sur.ID, Items: []fulfillment.Item{{LineItemID: "l2", VariantID: cam.ID, Quantity: 5}}},
	)

	_, err := f.reservations.ReserveOrder(context.Background(), "o-1", plan)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Zero(t, f.reload(t, siNorte.ID).QuantityReserved, "la reserva de Norte se revierte")
	assert.Empty(t, f.pub.types())
}

func TestReserveOrder_BackorderPorLinea(t *testing.T) {
	f := newFixture(t)
	loc := f.location(t, "Bodega")
	cam := f.variant(t, "CAM-001")
	si := f.item(t, loc, cam, 3, true)
	f.order(t, "o-1",
		entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 2},
		entity.LineItem{ID: "l2", VariantID: cam.ID, Quantity: 4},
	)
	plan := planFor(fulfillment.ShipmentPlan{LocationID: loc.ID, Items: []fulfillment.Item{
		{LineItemID: "l1", VariantID: cam.ID, Quantity: 2},
		{LineItemID: "l2", VariantID: cam.ID, Quantity: 4, IsBackordered: true},
	}})

	res, err := f.reservations.ReserveOrder(context.Background(), "o-1", plan)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Backordered)

	got := f.reload(t, si.ID)
	assert.Equal(t, 6, got.QuantityReserved)
	assert.Equal(t, 3, got.BackorderQuantity())
	require.Len(t, got.BackorderedUnits, 1)
	assert.Equal(t, "l2", got.BackorderedUnits[0].LineItemID)
	assert.Equal(t, 3, got.BackorderedUnits[0].Quantity)

	// Al llegar stock se llena la unidad pendiente.
	f.pub.reset()
	_, err = f.stock.Adjust(context.Background(), si.ID, dto.AdjustStockRequest{Quantity: 3, Originator: "supplier"})
	require.NoError(t, err)
	assert.Contains(t, f.pub.types(), inventory.EventTypeBackorderProcessed)
	assert.False(t, f.reload(t, si.ID).BackorderedUnits[0].Backordered())
}

func TestReserveOrder_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.reservations.ReserveOrder(ctx, "nope", nil)
	assert.ErrorIs(t, err, entity.ErrOrderNotFound)

	f.order(t, "o-1", entity.LineItem{ID: "l1", VariantID: "v", Quantity: 1})
	_, err = f.reservations.ReserveOrder(ctx, "o-1", planFor())
	assert.ErrorIs(t, err, appinv.ErrNothingToReserve)

	_, err = f.reservations.ReserveOrder(ctx, "o-1", planFor(fulfillment.ShipmentPlan{
		LocationID: "fantasma",
		Items:      []fulfillment.Item{{LineItemID: "l1", VariantID: "v", Quantity: 1}},
	}))
	assert.ErrorIs(t, err, inventory.ErrStockLocationMissing)
}

func TestReleaseOrder_RestauraReservas(t *testing.T) {
	f := newFixture(t)
	loc := f.location(t, "Bodega")
	cam := f.variant(t, "CAM-001")
	si := f.item(t, loc, cam, 10, false)
	f.order(t, "o-1", entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 4})
	ctx := context.Background()

	_, err := f.stock.Reserve(ctx, si.ID, dto.ReserveStockRequest{Quantity: 1, OrderID: "otra"})
	require.NoError(t, err)
	_, err = f.reservations.ReserveOrder(ctx, "o-1", planFor(fulfillment.ShipmentPlan{
		LocationID: loc.ID,
		Items:      []fulfillment.Item{{LineItemID: "l1", VariantID: cam.ID, Quantity: 4}},
	}))
	require.NoError(t, err)
	assert.Equal(t, 5, f.reload(t, si.ID).QuantityReserved)

	res, err := f.reservations.ReleaseOrder(ctx, "o-1")
	require.NoError(t, err)
	require.Len(t, res.StockItems, 1)
	got := f.reload(t, si.ID)
	assert.Equal(t, 1, got.QuantityReserved)
	_, tracked := got.ReservedFor("o-1")
	assert.False(t, tracked)

	res, err = f.reservations.ReleaseOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Empty(t, res.StockItems, "sin reservas no hace nada")
}

func TestShipOrder(t *testing.T) {
	f := newFixture(t)
	loc := f.location(t, "Bodega")
	cam := f.variant(t, "CAM-001")
	si := f.item(t, loc, cam, 10, false)
	f.order(t, "o-1", entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 4})
	ctx := context.Background()
	_, err := f.reservations.ReserveOrder(ctx, "o-1", planFor(fulfillment.ShipmentPlan{
		LocationID: loc.ID,
		Items:      []fulfillment.Item{{LineItemID: "l1", VariantID: cam.ID, Quantity: 4}},
	}))
	require.NoError(t, err)

	_, err = f.reservations.ShipOrder(ctx, "o-1", dto.ShipOrderRequest{StockLocationID: loc.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrEmptyItems)

	_, err = f.reservations.ShipOrder(ctx, "o-1", dto.ShipOrderRequest{
		ShipmentID:      "sh-1",
		StockLocationID: loc.ID,
		Items:           []dto.ShipOrderLine{{VariantID: cam.ID, Quantity: 5}},
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidShipment)

	res, err := f.reservations.ShipOrder(ctx, "o-1", dto.ShipOrderRequest{
		ShipmentID:      "sh-1",
		StockLocationID: loc.ID,
		Items:           []dto.ShipOrderLine{{VariantID: cam.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Len(t, res.StockItems, 1)
	got := f.reload(t, si.ID)
	assert.Equal(t, 6, got.QuantityOnHand)
	assert.Zero(t, got.QuantityReserved)
}

func TestReserveOrder_NuevoPlanLiberaLaUbicacionAnterior(t *testing.T) {
	f := newFixture(t)
	a := f.location(t, "A")
	b := f.location(t, "B")
	cam := f.variant(t, "CAM-001")
	siA := f.item(t, a, cam, 5, false)
	siB := f.item(t, b, cam, 4, false)
	f.order(t, "o-1", entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 3})
	ctx := context.Background()
	planAt := func(loc *inventory.StockLocation) *fulfillment.PlanResult {
		return planFor(fulfillment.ShipmentPlan{LocationID: loc.ID, Items: []fulfillment.Item{{LineItemID: "l1", VariantID: cam.ID, Quantity: 3}}})
	}

	_, err := f.reservations.ReserveOrder(ctx, "o-1", planAt(a))
	require.NoError(t, err)

	// Con 3 reservadas en A el planificador ya prefiere B.
	res, err := f.reservations.ReserveOrder(ctx, "o-1", planAt(b))
	require.NoError(t, err)
	assert.Len(t, res.StockItems, 2)
	assert.Zero(t, f.reload(t, siA.ID).QuantityReserved, "la reserva en A se libera")
	assert.Equal(t, 3, f.reload(t, siB.ID).QuantityReserved)
	_, tracked := f.reload(t, siA.ID).ReservedFor("o-1")
	assert.False(t, tracked)

	_, err = f.reservations.ReleaseOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Zero(t, f.reload(t, siA.ID).QuantityReserved)
	assert.Zero(t, f.reload(t, siB.ID).QuantityReserved)
}

func TestReserveOrder_FalloNoLiberaLaReservaAnterior(t *testing.T) {
	f := newFixture(t)
	a := f.location(t, "A")
	b := f.location(t, "B")
	cam := f.variant(t, "CAM-001")
	siA := f.item(t, a, cam, 5, false)
	f.item(t, b, cam, 1, false)
	f.order(t, "o-1", entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 3})
	ctx := context.Background()

	_, err := f.reservations.ReserveOrder(ctx, "o-1", planFor(fulfillment.ShipmentPlan{
		LocationID: a.ID, Items: []fulfillment.Item{{LineItemID: "l1", VariantID: cam.ID, Quantity: 3}},
	}))
	require.NoError(t, err)

	_, err = f.reservations.ReserveOrder(ctx, "o-1", planFor(fulfillment.ShipmentPlan{
		LocationID: b.ID, Items: []fulfillment.Item{{LineItemID: "l1", VariantID: cam.ID, Quantity: 3}},
	}))
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Equal(t, 3, f.reload(t, siA.ID).QuantityReserved, "la transacción completa se revierte")
}

func TestReleaseOrder_CancelaBackordersPendientes(t *testing.T) {
	f := newFixture(t)
	loc := f.location(t, "Bodega")
	cam := f.variant(t, "CAM-001")
	si := f.item(t, loc, cam, 0, true)
	f.order(t, "o-1", entity.LineItem{ID: "l1", VariantID: cam.ID, Quantity: 2})
	ctx := context.Background()

	res, err := f.reservations.ReserveOrder(ctx, "o-1", planFor(fulfillment.ShipmentPlan{
		LocationID: loc.ID, Items: []fulfillment.Item{{LineItemID: "l1", VariantID: cam.ID, Quantity: 2, IsBackordered: true}},
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Backordered)

	_, err = f.reservations.ReleaseOrder(ctx, "o-1")
	require.NoError(t, err)
	got := f.reload(t, si.ID)
	require.Len(t, got.BackorderedUnits, 1)
	assert.Equal(t, inventory.UnitStateCanceled, got.BackorderedUnits[0].State)

	f.pub.reset()
	_, err = f.stock.Adjust(ctx, si.ID, dto.AdjustStockRequest{Quantity: 5, Originator: "supplier"})
	require.NoError(t, err)
	assert.Equal(t, []string{inventory.EventTypeStockAdjusted}, f.pub.types())
}
