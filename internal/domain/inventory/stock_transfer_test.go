package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

func locationWith(name string, stock map[string]int) *inventory.StockLocation {
	loc := inventory.NewStockLocation(name, name)
	for variantID, qty := range stock {
		si, _ := loc.ResolveStockItem(variantID, "SKU-"+variantID)
		si.QuantityOnHand = qty
	}
	return loc
}

func newTransfer(t *testing.T, src, dst *inventory.StockLocation) *inventory.StockTransfer {
	t.Helper()
	srcID := ""
	if src != nil {
		srcID = src.ID
	}
	tr, err := inventory.NewStockTransfer("T2510150001", srcID, dst.ID, "")
	require.NoError(t, err)
	return tr
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestNewStockTransfer_Validaciones(t *testing.T) {
	_, err := inventory.NewStockTransfer("T1", "loc-a", "", "")
	assert.ErrorIs(t, err, inventory.ErrDestinationRequired)

	_, err = inventory.NewStockTransfer("T1", "loc-a", "loc-a", "")
	assert.ErrorIs(t, err, inventory.ErrSameLocation)

	tr, err := inventory.NewStockTransfer("T1", "", "loc-a", "PO-9")
	require.NoError(t, err)
	assert.True(t, tr.IsReceipt())
	assert.Equal(t, inventory.TransferStatePending, tr.State)
	assert.Equal(t, "PO-9", tr.Reference)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_MueveStockYFinaliza(t *testing.T) {
	src := locationWith("S", map[string]int{"v-1": 10, "v-2": 4})
	dst := locationWith("D", nil)
	tr := newTransfer(t, src, dst)

	err := tr.Transfer(src, dst, []inventory.TransferLine{
		{VariantID: "v-1", SKU: "SKU-v-1", Quantity: 6},
		{VariantID: "v-2", SKU: "SKU-v-2", Quantity: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, src.StockItem("v-1").QuantityOnHand)
	assert.Equal(t, 0, src.StockItem("v-2").QuantityOnHand)
	require.NotNil(t, dst.StockItem("v-1"), "el item destino se crea si no existe")
	assert.Equal(t, 6, dst.StockItem("v-1").QuantityOnHand)
	assert.Equal(t, 4, dst.StockItem("v-2").QuantityOnHand)

	assert.Equal(t, inventory.TransferStateFinalized, tr.State)
	assert.Equal(t, inventory.FinalizedTransferred, tr.FinalizedReason)
	assert.Len(t, tr.Movements, 4)
	for _, m := range tr.Movements {
		assert.Equal(t, inventory.OriginatorStockTransfer, m.Originator)
		assert.Equal(t, tr.ID, m.OriginatorID)
	}

	evts := tr.Events()
	require.Len(t, evts, 2)
	assert.Equal(t, inventory.EventTypeStockTransferStateChanged, evts[0].EventType())
	moved, ok := evts[1].(*inventory.StockTransferredEvent)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"v-1": 6, "v-2": 4}, moved.Quantities)
}

func TestTransfer_StockInsuficiente(t *testing.T) {
	src := locationWith("S", map[string]int{"v": 3})
	dst := locationWith("D", nil)
	tr := newTransfer(t, src, dst)

	err := tr.Transfer(src, dst, []inventory.TransferLine{{VariantID: "v", Quantity: 5}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, inventory.ErrInsufficientStock))
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Contains(t, de.Description, "variante v")
	assert.Contains(t, de.Description, "disponible=3")
	assert.Contains(t, de.Description, "solicitado=5")

	assert.Equal(t, inventory.TransferStatePending, tr.State)
	assert.Equal(t, 3, src.StockItem("v").QuantityOnHand)
	assert.Nil(t, dst.StockItem("v"))
	assert.Empty(t, tr.Events())
}

func TestTransfer_ValidaTodoAntesDeMover(t *testing.T) {
	src := locationWith("S", map[string]int{"ok": 10, "bad": 10})
	dst := locationWith("D", nil)
	tr := newTransfer(t, src, dst)

	err := tr.Transfer(src, dst, []inventory.TransferLine{
		{VariantID: "ok", Quantity: 2},
		{VariantID: "bad", Quantity: 0},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)

	assert.Equal(t, 10, src.StockItem("ok").QuantityOnHand, "ninguna línea se mueve")
	assert.Empty(t, src.StockItem("ok").Movements)
	assert.Nil(t, dst.StockItem("ok"))
	assert.Empty(t, tr.Movements)
	assert.Equal(t, inventory.TransferStatePending, tr.State)
}

func TestTransfer_AcumulaTodosLosErrores(t *testing.T) {
	src := locationWith("S", map[string]int{"a": 1})
	dst := locationWith("D", nil)
	tr := newTransfer(t, src, dst)

	err := tr.Transfer(src, dst, []inventory.TransferLine{
		{VariantID: "a", Quantity: 5},
		{VariantID: "b", Quantity: 1},
		{VariantID: "c", Quantity: -1},
		{VariantID: "a", Quantity: 1},
	})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.ErrorIs(t, err, inventory.ErrDuplicateVariant)
	assert.Len(t, domain.Details(err), 4)
}

func TestTransfer_UbicacionesNoCoinciden(t *testing.T) {
	src := locationWith("S", map[string]int{"v": 5})
	dst := locationWith("D", nil)
	other := locationWith("X", map[string]int{"v": 5})
	tr := newTransfer(t, src, dst)
	lines := []inventory.TransferLine{{VariantID: "v", Quantity: 1}}

	assert.ErrorIs(t, tr.Transfer(other, dst, lines), inventory.ErrStockLocationNotFound)
	assert.ErrorIs(t, tr.Transfer(src, other, lines), inventory.ErrStockLocationNotFound)
	assert.ErrorIs(t, tr.Transfer(nil, dst, lines), inventory.ErrStockLocationNotFound)
	assert.ErrorIs(t, tr.Transfer(src, dst, nil), inventory.ErrEmptyItems)
}

func TestTransfer_ConBackorderNoSuperaOnHand(t *testing.T) {
	src := locationWith("S", map[string]int{"v": 2})
	src.StockItem("v").Backorderable = true
	dst := locationWith("D", nil)
	tr := newTransfer(t, src, dst)

	err := tr.Transfer(src, dst, []inventory.TransferLine{{VariantID: "v", Quantity: 3}})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
}

func TestTransfer_FinalizadoNoSeRepite(t *testing.T) {
	src := locationWith("S", map[string]int{"v": 5})
	dst := locationWith("D", nil)
	tr := newTransfer(t, src, dst)
	lines := []inventory.TransferLine{{VariantID: "v", Quantity: 1}}

	require.NoError(t, tr.Transfer(src, dst, lines))
	assert.ErrorIs(t, tr.Transfer(src, dst, lines), inventory.ErrInvalidStateTransition)
	assert.Equal(t, 4, src.StockItem("v").QuantityOnHand)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_RecepcionDeProveedor(t *testing.T) {
	dst := locationWith("D", nil)
	tr := newTransfer(t, nil, dst)

	require.NoError(t, tr.Receive(dst, []inventory.TransferLine{{VariantID: "v", SKU: "SKU-V", Quantity: 20}}))

	assert.Equal(t, inventory.TransferStateFinalized, tr.State)
	si := dst.StockItem("v")
	require.NotNil(t, si)
	assert.Equal(t, 20, si.QuantityOnHand)
	assert.Equal(t, "SKU-V", si.SKU)

	require.Len(t, tr.Movements, 1)
	assert.Equal(t, inventory.OriginatorSupplier, tr.Movements[0].Originator)
	assert.Equal(t, 20, tr.Movements[0].Quantity)

	var received bool
	for _, e := range tr.Events() {
		if e.EventType() == inventory.EventTypeStockReceived {
			received = true
		}
	}
	assert.True(t, received)

	err := tr.Receive(dst, []inventory.TransferLine{{VariantID: "v", Quantity: 1}})
	assert.ErrorIs(t, err, inventory.ErrInvalidStateTransition)
	assert.Equal(t, 20, si.QuantityOnHand)
}

func TestReceive_RequiereRecepcion(t *testing.T) {
	src := locationWith("S", nil)
	dst := locationWith("D", nil)
	tr := newTransfer(t, src, dst)
	err := tr.Receive(dst, []inventory.TransferLine{{VariantID: "v", Quantity: 1}})
	assert.ErrorIs(t, err, inventory.ErrNotAReceipt)
}

func TestReceive_LineaInvalidaNoMueveNada(t *testing.T) {
	dst := locationWith("D", nil)
	tr := newTransfer(t, nil, dst)
	err := tr.Receive(dst, []inventory.TransferLine{
		{VariantID: "a", Quantity: 4},
		{VariantID: "b", Quantity: 0},
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
	assert.Nil(t, dst.StockItem("a"))
	assert.Equal(t, inventory.TransferStatePending, tr.State)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel / Reject
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelYReject_EstadoTerminal(t *testing.T) {
	dst := locationWith("D", nil)

	tr := newTransfer(t, nil, dst)
	require.NoError(t, tr.Cancel())
	assert.Equal(t, inventory.FinalizedCanceled, tr.FinalizedReason)
	assert.ErrorIs(t, tr.Cancel(), inventory.ErrAlreadyInTerminalState)
	assert.ErrorIs(t, tr.Reject("tarde"), inventory.ErrAlreadyInTerminalState)

	rj := newTransfer(t, nil, dst)
	require.NoError(t, rj.Reject("mercancía dañada"))
	assert.True(t, rj.IsFinalized())
	assert.Equal(t, inventory.FinalizedRejected, rj.FinalizedReason)
	assert.Equal(t, "mercancía dañada", rj.RejectionReason)
	ev, ok := rj.Events()[0].(*inventory.StockTransferStateChangedEvent)
	require.True(t, ok)
	assert.Equal(t, inventory.TransferStatePending, ev.From)
	assert.Equal(t, inventory.TransferStateFinalized, ev.To)
}
