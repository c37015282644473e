package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// TransferUseCase crea y ejecuta traslados entre ubicaciones y recepciones de proveedor.
type TransferUseCase struct {
	txRunner  TxRunner
	transfers repository.StockTransferRepository
	locations repository.StockLocationRepository
	movements repository.StockMovementRepository
	variants  repository.VariantRepository
	numbers   *inventory.NumberGenerator
	events    eventSink
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transfers repository.StockTransferRepository,
	locations repository.StockLocationRepository,
	movements repository.StockMovementRepository,
	variants repository.VariantRepository,
	numbers *inventory.NumberGenerator,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:  txRunner,
		transfers: transfers,
		locations: locations,
		movements: movements,
		variants:  variants,
		numbers:   numbers,
		events:    newEventSink(publisher, log),
	}
}

// Create registra un traslado pendiente con número {prefijo}{AAMMDD}{NNNN}.
// Sin source_location_id es una recepción de proveedor.
func (uc *TransferUseCase) Create(ctx context.Context, in dto.CreateStockTransferRequest) (*dto.StockTransferResponse, error) {
	source := strings.TrimSpace(in.SourceLocationID)
	destination := strings.TrimSpace(in.DestinationLocationID)
	if destination == "" {
		return nil, inventory.ErrDestinationRequired
	}
	if source == destination {
		return nil, inventory.ErrSameLocation
	}
	for _, id := range []string{source, destination} {
		if id == "" {
			continue
		}
		loc, err := uc.locations.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, inventory.ErrStockLocationMissing
		}
	}

	number, err := uc.numbers.Generate(ctx)
	if err != nil {
		return nil, err
	}
	t, err := inventory.NewStockTransfer(number, source, destination, strings.TrimSpace(in.Reference))
	if err != nil {
		return nil, err
	}
	if err := uc.transfers.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.events.log.Info().Str("transfer_id", t.ID).Str("number", t.Number).Bool("receipt", t.IsReceipt()).Msg("traslado creado")
	return toTransferResponse(t, nil), nil
}

// Get devuelve el traslado con los movimientos que produjo.
func (uc *TransferUseCase) Get(ctx context.Context, id string) (*dto.StockTransferResponse, error) {
	t, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, inventory.ErrTransferNotFound
	}
	originator := inventory.OriginatorStockTransfer
	if t.IsReceipt() {
		originator = inventory.OriginatorSupplier
	}
	movs, err := uc.movements.ListByOriginator(ctx, originator, t.ID)
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t, movs), nil
}

// Transfer ejecuta el traslado: valida todas las líneas contra el origen y luego
// mueve el stock. Cualquier error revierte la transacción completa.
func (uc *TransferUseCase) Transfer(ctx context.Context, id string, in dto.ExecuteTransferRequest) (*dto.StockTransferResponse, error) {
	lines, err := uc.resolveLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	return uc.execute(ctx, id, func(ctx context.Context, r TxRepos, t *inventory.StockTransfer) ([]*inventory.StockLocation, error) {
		if t.IsReceipt() {
			return nil, inventory.ErrStockLocationNotFound
		}
		locs, err := lockLocations(ctx, r, t.SourceLocationID, t.DestinationLocationID)
		if err != nil {
			return nil, err
		}
		return locs, t.Transfer(locs[0], locs[1], lines)
	})
}

// Receive ingresa stock de proveedor en el destino.
func (uc *TransferUseCase) Receive(ctx context.Context, id string, in dto.ExecuteTransferRequest) (*dto.StockTransferResponse, error) {
	lines, err := uc.resolveLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	return uc.execute(ctx, id, func(ctx context.Context, r TxRepos, t *inventory.StockTransfer) ([]*inventory.StockLocation, error) {
		if !t.IsReceipt() {
			return nil, inventory.ErrNotAReceipt
		}
		locs, err := lockLocations(ctx, r, t.DestinationLocationID)
		if err != nil {
			return nil, err
		}
		return locs, t.Receive(locs[0], lines)
	})
}

// Cancel finaliza el traslado sin mover stock.
func (uc *TransferUseCase) Cancel(ctx context.Context, id string) (*dto.StockTransferResponse, error) {
	return uc.execute(ctx, id, func(_ context.Context, _ TxRepos, t *inventory.StockTransfer) ([]*inventory.StockLocation, error) {
		return nil, t.Cancel()
	})
}

// Reject finaliza el traslado como rechazado.
func (uc *TransferUseCase) Reject(ctx context.Context, id string, in dto.RejectTransferRequest) (*dto.StockTransferResponse, error) {
	return uc.execute(ctx, id, func(_ context.Context, _ TxRepos, t *inventory.StockTransfer) ([]*inventory.StockLocation, error) {
		return nil, t.Reject(strings.TrimSpace(in.Reason))
	})
}

// resolveLines comprueba que cada variante exista en el catálogo y completa el SKU
// con el de la variante cuando la línea no lo trae. Devuelve todas las variantes
// desconocidas juntas; las líneas sin variante o sin cantidad las rechaza el dominio.
func (uc *TransferUseCase) resolveLines(ctx context.Context, items []dto.TransferLineRequest) ([]inventory.TransferLine, error) {
	lines := toTransferLines(items)
	var errs error
	for i, ln := range lines {
		if strings.TrimSpace(ln.VariantID) == "" || ln.Quantity <= 0 {
			continue
		}
		v, err := uc.variants.GetByID(ctx, ln.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			errs = multierr.Append(errs, domain.NotFound(entity.ErrVariantNotFound.Code,
				fmt.Sprintf("variante %s no encontrada", ln.VariantID)))
			continue
		}
		if strings.TrimSpace(ln.SKU) == "" {
			lines[i].SKU = v.SKU
		}
	}
	if errs != nil {
		return nil, errs
	}
	return lines, nil
}

type transferStep func(ctx context.Context, r TxRepos, t *inventory.StockTransfer) ([]*inventory.StockLocation, error)

// execute bloquea el traslado, aplica step y persiste traslado, items tocados y movimientos.
func (uc *TransferUseCase) execute(ctx context.Context, id string, step transferStep) (*dto.StockTransferResponse, error) {
	var (
		t      *inventory.StockTransfer
		events []domain.Event
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		events = nil
		var err error
		t, err = r.Transfers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return inventory.ErrTransferNotFound
		}
		locs, err := step(ctx, r, t)
		if err != nil {
			return err
		}
		for _, loc := range locs {
			evs, err := persistTouched(ctx, r, loc)
			if err != nil {
				return err
			}
			events = append(events, evs...)
		}
		if err := r.Transfers.Update(ctx, t); err != nil {
			return err
		}
		events = append(events, t.PullEvents()...)
		return nil
	})
	if err != nil {
		uc.events.log.Warn().Str("transfer_id", id).Err(err).Msg("traslado no aplicado")
		return nil, err
	}
	uc.events.publish(ctx, events)
	return toTransferResponse(t, t.Movements), nil
}

// lockLocations bloquea las ubicaciones en orden de ID y las devuelve en el orden pedido.
func lockLocations(ctx context.Context, r TxRepos, ids ...string) ([]*inventory.StockLocation, error) {
	order := append([]string(nil), ids...)
	if len(order) == 2 && order[1] < order[0] {
		order[0], order[1] = order[1], order[0]
	}
	locked := make(map[string]*inventory.StockLocation, len(order))
	for _, id := range order {
		loc, err := r.Locations.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, inventory.ErrStockLocationMissing
		}
		locked[id] = loc
	}
	out := make([]*inventory.StockLocation, 0, len(ids))
	for _, id := range ids {
		out = append(out, locked[id])
	}
	return out, nil
}
