package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

func TestTransferUseCase_CreateNumeraPorDia(t *testing.T) {
	f := newFixture(t)
	src := f.location(t, "Origen")
	dst := f.location(t, "Destino")
	ctx := context.Background()

	first, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{SourceLocationID: src.ID, DestinationLocationID: dst.ID})
	require.NoError(t, err)
	second, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{DestinationLocationID: dst.ID, Reference: "OC-77"})
	require.NoError(t, err)

	assert.Equal(t, "T2510150001", first.Number)
	assert.Equal(t, "T2510150002", second.Number)
	assert.Equal(t, string(inventory.TransferStatePending), first.State)
	assert.Empty(t, second.SourceLocationID)
}

func TestTransferUseCase_CreateValida(t *testing.T) {
	f := newFixture(t)
	dst := f.location(t, "Destino")
	ctx := context.Background()

	_, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{})
	assert.ErrorIs(t, err, inventory.ErrDestinationRequired)
	_, err = f.transfers.Create(ctx, dto.CreateStockTransferRequest{SourceLocationID: dst.ID, DestinationLocationID: dst.ID})
	assert.ErrorIs(t, err, inventory.ErrSameLocation)
	_, err = f.transfers.Create(ctx, dto.CreateStockTransferRequest{SourceLocationID: "nope", DestinationLocationID: dst.ID})
	assert.ErrorIs(t, err, inventory.ErrStockLocationMissing)
}

func TestTransferUseCase_MueveStock(t *testing.T) {
	f := newFixture(t)
	src := f.location(t, "Origen")
	dst := f.location(t, "Destino")
	cam := f.variant(t, "CAM-001")
	siSrc := f.item(t, src, cam, 8, false)
	ctx := context.Background()

	tr, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{SourceLocationID: src.ID, DestinationLocationID: dst.ID})
	require.NoError(t, err)

	res, err := f.transfers.Transfer(ctx, tr.ID, dto.ExecuteTransferRequest{Items: []dto.TransferLineRequest{{VariantID: cam.ID, SKU: cam.SKU, Quantity: 5}}})
	require.NoError(t, err)
	assert.Equal(t, string(inventory.TransferStateFinalized), res.State)
	assert.Equal(t, inventory.FinalizedTransferred, res.FinalizedReason)
	assert.Len(t, res.Movements, 2)

	assert.Equal(t, 3, f.reload(t, siSrc.ID).QuantityOnHand)
	created, err := f.store.Items().GetByLocationAndVariant(ctx, dst.ID, cam.ID)
	require.NoError(t, err)
	require.NotNil(t, created, "el item destino se crea al recibir")
	assert.Equal(t, 5, created.QuantityOnHand)

	got, err := f.transfers.Get(ctx, tr.ID)
	require.NoError(t, err)
	require.Len(t, got.Movements, 2)
	assert.Equal(t, -5, got.Movements[0].Quantity)
	assert.Equal(t, 5, got.Movements[1].Quantity)
	assert.Contains(t, f.pub.types(), inventory.EventTypeStockTransferred)
}

func TestTransferUseCase_InsuficienteQuedaPendiente(t *testing.T) {
	f := newFixture(t)
	src := f.location(t, "Origen")
	dst := f.location(t, "Destino")
	cam := f.variant(t, "CAM-001")
	pan := f.variant(t, "PAN-001")
	siCam := f.item(t, src, cam, 3, false)
	siPan := f.item(t, src, pan, 10, false)
	ctx := context.Background()

	tr, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{SourceLocationID: src.ID, DestinationLocationID: dst.ID})
	require.NoError(t, err)

	_, err = f.transfers.Transfer(ctx, tr.ID, dto.ExecuteTransferRequest{Items: []dto.TransferLineRequest{
		{VariantID: pan.ID, Quantity: 2},
		{VariantID: cam.ID, Quantity: 5},
		{VariantID: "otra", Quantity: 0},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Len(t, domain.Details(err), 2, "se reportan todas las líneas inválidas")

	assert.Equal(t, 3, f.reload(t, siCam.ID).QuantityOnHand)
	assert.Equal(t, 10, f.reload(t, siPan.ID).QuantityOnHand, "ninguna línea se ejecuta")
	got, err := f.transfers.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, string(inventory.TransferStatePending), got.State)
	assert.Empty(t, got.Movements)
}

func TestTransferUseCase_RecepcionUnaVez(t *testing.T) {
	f := newFixture(t)
	dst := f.location(t, "Destino")
	cam := f.variant(t, "CAM-001")
	ctx := context.Background()

	tr, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{DestinationLocationID: dst.ID})
	require.NoError(t, err)
	lines := dto.ExecuteTransferRequest{Items: []dto.TransferLineRequest{{VariantID: cam.ID, SKU: cam.SKU, Quantity: 20}}}

	res, err := f.transfers.Receive(ctx, tr.ID, lines)
	require.NoError(t, err)
	assert.Equal(t, inventory.FinalizedReceived, res.FinalizedReason)
	require.Len(t, res.Movements, 1)
	assert.Equal(t, 20, res.Movements[0].Quantity)
	assert.Equal(t, string(inventory.OriginatorSupplier), res.Movements[0].Originator)
	assert.Contains(t, f.pub.types(), inventory.EventTypeStockReceived)

	_, err = f.transfers.Receive(ctx, tr.ID, lines)
	assert.ErrorIs(t, err, inventory.ErrInvalidStateTransition)

	got, err := f.transfers.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Len(t, got.Movements, 1)
}

func TestTransferUseCase_OperacionEquivocada(t *testing.T) {
	f := newFixture(t)
	src := f.location(t, "Origen")
	dst := f.location(t, "Destino")
	cam := f.variant(t, "CAM-001")
	ctx := context.Background()
	lines := dto.ExecuteTransferRequest{Items: []dto.TransferLineRequest{{VariantID: cam.ID, Quantity: 1}}}

	tr, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{SourceLocationID: src.ID, DestinationLocationID: dst.ID})
	require.NoError(t, err)
	_, err = f.transfers.Receive(ctx, tr.ID, lines)
	assert.ErrorIs(t, err, inventory.ErrNotAReceipt)

	receipt, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{DestinationLocationID: dst.ID})
	require.NoError(t, err)
	_, err = f.transfers.Transfer(ctx, receipt.ID, lines)
	assert.ErrorIs(t, err, inventory.ErrStockLocationNotFound)

	_, err = f.transfers.Transfer(ctx, "nope", lines)
	assert.ErrorIs(t, err, inventory.ErrTransferNotFound)
}

func TestTransferUseCase_CancelarYRechazar(t *testing.T) {
	f := newFixture(t)
	dst := f.location(t, "Destino")
	ctx := context.Background()

	tr, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{DestinationLocationID: dst.ID, Reference: "OC-1"})
	require.NoError(t, err)
	res, err := f.transfers.Cancel(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, inventory.FinalizedCanceled, res.FinalizedReason)
	_, err = f.transfers.Cancel(ctx, tr.ID)
	assert.ErrorIs(t, err, inventory.ErrAlreadyInTerminalState)

	other, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{DestinationLocationID: dst.ID, Reference: "OC-2"})
	require.NoError(t, err)
	res, err = f.transfers.Reject(ctx, other.ID, dto.RejectTransferRequest{Reason: "mercancía dañada"})
	require.NoError(t, err)
	assert.Equal(t, inventory.FinalizedRejected, res.FinalizedReason)
	assert.Equal(t, "OC-2", res.Reference, "la referencia no se toca")
	assert.Equal(t, "mercancía dañada", res.RejectionReason)
	assert.Contains(t, f.pub.types(), inventory.EventTypeStockTransferStateChanged)
}

func TestTransferUseCase_VarianteDesconocida(t *testing.T) {
	f := newFixture(t)
	dst := f.location(t, "Destino")
	ctx := context.Background()

	tr, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{DestinationLocationID: dst.ID})
	require.NoError(t, err)
	_, err = f.transfers.Receive(ctx, tr.ID, dto.ExecuteTransferRequest{Items: []dto.TransferLineRequest{
		{VariantID: "no-existe", Quantity: 20},
		{VariantID: "tampoco", Quantity: 3},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrVariantNotFound)
	assert.Len(t, domain.Details(err), 2)

	created, err := f.store.Items().GetByLocationAndVariant(ctx, dst.ID, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, created, "no se crea stock para una variante inexistente")
	got, err := f.transfers.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, string(inventory.TransferStatePending), got.State)
}

func TestTransferUseCase_SKUDeLaVariante(t *testing.T) {
	f := newFixture(t)
	dst := f.location(t, "Destino")
	cam := f.variant(t, "CAM-001")
	pan := f.variant(t, "PAN-001")
	ctx := context.Background()

	tr, err := f.transfers.Create(ctx, dto.CreateStockTransferRequest{DestinationLocationID: dst.ID})
	require.NoError(t, err)
	_, err = f.transfers.Receive(ctx, tr.ID, dto.ExecuteTransferRequest{Items: []dto.TransferLineRequest{
		{VariantID: cam.ID, Quantity: 2},
		{VariantID: pan.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	for _, v := range []*entity.Variant{cam, pan} {
		si, err := f.store.Items().GetByLocationAndVariant(ctx, dst.ID, v.ID)
		require.NoError(t, err)
		require.NotNil(t, si)
		assert.Equal(t, v.SKU, si.SKU)
	}
}
