package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// TransferState estado del traslado: Pending → Finalized, sin retorno.
type TransferState string

const (
	TransferStatePending   TransferState = "pending"
	TransferStateFinalized TransferState = "finalized"
)

// Motivos de finalización.
const (
	FinalizedTransferred = "transferred"
	FinalizedReceived    = "received"
	FinalizedCanceled    = "canceled"
	FinalizedRejected    = "rejected"
)

// TransferLine cantidad de una variante a mover. SKU se usa si hay que crear el item destino.
type TransferLine struct {
	VariantID string
	SKU       string
	Quantity  int
}

// StockTransfer traslado entre ubicaciones o recepción de proveedor (SourceLocationID vacío).
// Es dueño de los movimientos que produce su ejecución.
type StockTransfer struct {
	domain.EventRecorder

	ID                    string
	Number                string
	Reference             string
	SourceLocationID      string
	DestinationLocationID string
	State                 TransferState
	FinalizedReason       string
	RejectionReason       string
	Movements             []StockMovement
	CreatedAt             time.Time
	UpdatedAt             time.Time
	FinalizedAt           *time.Time
}

// NewStockTransfer crea un traslado pendiente. sourceLocationID vacío = recepción de proveedor.
func NewStockTransfer(number, sourceLocationID, destinationLocationID, reference string) (*StockTransfer, error) {
	if destinationLocationID == "" {
		return nil, ErrDestinationRequired
	}
	if sourceLocationID != "" && sourceLocationID == destinationLocationID {
		return nil, ErrSameLocation
	}
	now := time.Now().UTC()
	return &StockTransfer{
		ID:                    uuid.New().String(),
		Number:                number,
		Reference:             reference,
		SourceLocationID:      sourceLocationID,
		DestinationLocationID: destinationLocationID,
		State:                 TransferStatePending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// IsReceipt indica si es una recepción de proveedor (sin origen).
func (t *StockTransfer) IsReceipt() bool {
	return t.SourceLocationID == ""
}

// IsFinalized indica si el traslado llegó al estado terminal.
func (t *StockTransfer) IsFinalized() bool {
	return t.State == TransferStateFinalized
}

// Transfer mueve stock de origen a destino en dos fases: primero valida todas las
// líneas sin mutar nada (devolviendo todos los errores juntos), luego ejecuta.
// Un error durante la ejecución produce StockTransfer.PartialFailure y requiere
// conciliación manual.
func (t *StockTransfer) Transfer(source, destination *StockLocation, lines []TransferLine) error {
	if t.IsFinalized() {
		return ErrInvalidStateTransition
	}
	if source == nil || t.IsReceipt() || source.ID != t.SourceLocationID {
		return ErrStockLocationNotFound
	}
	if destination == nil || destination.ID != t.DestinationLocationID {
		return ErrStockLocationNotFound
	}
	if err := validateLines(lines, func(ln TransferLine) error {
		src := source.StockItem(ln.VariantID)
		if src == nil {
			return InsufficientStock(ln.VariantID, 0, ln.Quantity)
		}
		return src.CanAdjust(-ln.Quantity)
	}); err != nil {
		return err
	}

	var execErrs error
	quantities := make(map[string]int, len(lines))
	for _, ln := range lines {
		if err := source.Unstock(ln.VariantID, ln.SKU, ln.Quantity, OriginatorStockTransfer, t.ID); err != nil {
			execErrs = multierr.Append(execErrs, fmt.Errorf("unstock %s en %s: %w", ln.VariantID, source.ID, err))
			continue
		}
		t.captureMovement(source, ln.VariantID)
		if err := destination.Restock(ln.VariantID, ln.SKU, ln.Quantity, OriginatorStockTransfer, t.ID); err != nil {
			execErrs = multierr.Append(execErrs, fmt.Errorf("restock %s en %s: %w", ln.VariantID, destination.ID, err))
			continue
		}
		t.captureMovement(destination, ln.VariantID)
		quantities[ln.VariantID] += ln.Quantity
	}
	if execErrs != nil {
		return partialFailure(execErrs)
	}

	t.finalize(FinalizedTransferred)
	t.AddEvent(&StockTransferredEvent{
		BaseEvent:             domain.NewBaseEvent(EventTypeStockTransferred, AggregateTypeStockTransfer, t.ID),
		StockTransferID:       t.ID,
		Number:                t.Number,
		SourceLocationID:      t.SourceLocationID,
		DestinationLocationID: t.DestinationLocationID,
		Quantities:            quantities,
	})
	return nil
}

// Receive ingresa stock de proveedor en el destino. No valida suficiencia: la
// recepción siempre procede en cantidad.
func (t *StockTransfer) Receive(destination *StockLocation, lines []TransferLine) error {
	if t.IsFinalized() {
		return ErrInvalidStateTransition
	}
	if !t.IsReceipt() {
		return ErrNotAReceipt
	}
	if destination == nil || destination.ID != t.DestinationLocationID {
		return ErrStockLocationNotFound
	}
	if err := validateLines(lines, nil); err != nil {
		return err
	}

	var execErrs error
	quantities := make(map[string]int, len(lines))
	for _, ln := range lines {
		if err := destination.Restock(ln.VariantID, ln.SKU, ln.Quantity, OriginatorSupplier, t.ID); err != nil {
			execErrs = multierr.Append(execErrs, fmt.Errorf("restock %s en %s: %w", ln.VariantID, destination.ID, err))
			continue
		}
		t.captureMovement(destination, ln.VariantID)
		quantities[ln.VariantID] += ln.Quantity
	}
	if execErrs != nil {
		return partialFailure(execErrs)
	}

	t.finalize(FinalizedReceived)
	t.AddEvent(&StockReceivedEvent{
		BaseEvent:             domain.NewBaseEvent(EventTypeStockReceived, AggregateTypeStockTransfer, t.ID),
		StockTransferID:       t.ID,
		Number:                t.Number,
		DestinationLocationID: t.DestinationLocationID,
		Quantities:            quantities,
	})
	return nil
}

// Cancel finaliza el traslado sin mover stock.
func (t *StockTransfer) Cancel() error {
	if t.IsFinalized() {
		return ErrAlreadyInTerminalState
	}
	t.finalize(FinalizedCanceled)
	return nil
}

// Reject finaliza el traslado sin mover stock y guarda el motivo del rechazo.
func (t *StockTransfer) Reject(reason string) error {
	if t.IsFinalized() {
		return ErrAlreadyInTerminalState
	}
	t.RejectionReason = strings.TrimSpace(reason)
	t.finalize(FinalizedRejected)
	return nil
}

// Clone copia profunda sin eventos pendientes.
func (t *StockTransfer) Clone() *StockTransfer {
	c := *t
	c.EventRecorder = domain.EventRecorder{}
	c.Movements = append([]StockMovement(nil), t.Movements...)
	if t.FinalizedAt != nil {
		f := *t.FinalizedAt
		c.FinalizedAt = &f
	}
	return &c
}

func (t *StockTransfer) finalize(reason string) {
	now := time.Now().UTC()
	from := t.State
	t.State = TransferStateFinalized
	t.FinalizedReason = reason
	t.FinalizedAt = &now
	t.UpdatedAt = now
	t.AddEvent(&StockTransferStateChangedEvent{
		BaseEvent:       domain.NewBaseEvent(EventTypeStockTransferStateChanged, AggregateTypeStockTransfer, t.ID),
		StockTransferID: t.ID,
		Number:          t.Number,
		From:            from,
		To:              TransferStateFinalized,
		Reason:          reason,
	})
}

func (t *StockTransfer) captureMovement(loc *StockLocation, variantID string) {
	si := loc.StockItem(variantID)
	if si == nil || len(si.Movements) == 0 {
		return
	}
	t.Movements = append(t.Movements, si.Movements[len(si.Movements)-1])
}

// validateLines revisa todas las líneas y acumula cada error; check es opcional.
func validateLines(lines []TransferLine, check func(TransferLine) error) error {
	if len(lines) == 0 {
		return ErrEmptyItems
	}
	var errs error
	seen := make(map[string]bool, len(lines))
	for _, ln := range lines {
		if seen[ln.VariantID] {
			errs = multierr.Append(errs, domain.Validation(ErrDuplicateVariant.Code,
				fmt.Sprintf("variante %s repetida", ln.VariantID)))
			continue
		}
		seen[ln.VariantID] = true
		if ln.VariantID == "" {
			errs = multierr.Append(errs, domain.Validation(domain.ErrInvalidInput.Code, "variant_id es obligatorio"))
			continue
		}
		if ln.Quantity <= 0 {
			errs = multierr.Append(errs, InvalidQuantity(ln.VariantID, ln.Quantity))
			continue
		}
		if check != nil {
			errs = multierr.Append(errs, check(ln))
		}
	}
	return errs
}

func partialFailure(execErrs error) error {
	msgs := make([]string, 0)
	for _, e := range multierr.Errors(execErrs) {
		msgs = append(msgs, e.Error())
	}
	return domain.Failure(ErrPartialFailure.Code,
		"el traslado se aplicó parcialmente, requiere conciliación manual: "+strings.Join(msgs, "; "))
}
