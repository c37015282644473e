package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// StockUseCase operaciones sobre un StockItem: alta, ajustes, reservas y envíos.
// Cada mutación bloquea la fila (SELECT FOR UPDATE) dentro de una transacción.
type StockUseCase struct {
	txRunner  TxRunner
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	variants  repository.VariantRepository
	events    eventSink
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	items repository.StockItemRepository,
	movements repository.StockMovementRepository,
	variants repository.VariantRepository,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		items:     items,
		movements: movements,
		variants:  variants,
		events:    newEventSink(publisher, log),
	}
}

// CreateStockItem crea el registro de una variante en una ubicación. Un par
// (ubicación, variante) o (ubicación, SKU) repetido es un conflicto.
func (uc *StockUseCase) CreateStockItem(ctx context.Context, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if strings.TrimSpace(in.StockLocationID) == "" || strings.TrimSpace(in.VariantID) == "" {
		return nil, domain.Validation(domain.ErrInvalidInput.Code, "stock_location_id y variant_id son obligatorios")
	}
	if in.QuantityOnHand < 0 {
		return nil, inventory.InvalidQuantity(in.VariantID, in.QuantityOnHand)
	}
	if in.MaxBackorderQuantity != nil && *in.MaxBackorderQuantity < inventory.UnlimitedBackorder {
		return nil, domain.Validation(domain.ErrInvalidInput.Code, "max_backorder_quantity debe ser -1 o mayor")
	}

	variant, err := uc.variants.GetByID(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, entity.ErrVariantNotFound
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = variant.SKU
	}

	var (
		item   *inventory.StockItem
		events []domain.Event
	)
	err = uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		loc, err := r.Locations.GetByID(ctx, in.StockLocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return inventory.ErrStockLocationMissing
		}
		if existing, err := r.Items.GetByLocationAndVariant(ctx, loc.ID, variant.ID); err != nil {
			return err
		} else if existing != nil {
			return inventory.ErrDuplicateSku
		}
		if existing, err := r.Items.GetByLocationAndSKU(ctx, loc.ID, sku); err != nil {
			return err
		} else if existing != nil {
			return inventory.ErrDuplicateSku
		}

		backorderable := loc.BackorderableDefault
		if in.Backorderable != nil {
			backorderable = *in.Backorderable
		}
		item = inventory.NewStockItem(variant.ID, loc.ID, sku, backorderable)
		if in.MaxBackorderQuantity != nil {
			item.MaxBackorderQuantity = *in.MaxBackorderQuantity
		}
		if in.QuantityOnHand > 0 {
			if err := item.Adjust(in.QuantityOnHand, inventory.OriginatorAdjustment, "stock inicial", ""); err != nil {
				return err
			}
		}
		if err := r.Items.Create(ctx, item); err != nil {
			return err
		}
		if movs := item.PullMovements(); len(movs) > 0 {
			if err := r.Movements.CreateBatch(ctx, movs); err != nil {
				return err
			}
		}
		events = item.PullEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.events.publish(ctx, events)
	return toStockItemResponse(item), nil
}

// GetStockItem obtiene un StockItem por ID.
func (uc *StockUseCase) GetStockItem(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, inventory.ErrStockItemNotFound
	}
	return toStockItemResponse(item), nil
}

// Adjust aplica un delta firmado a on-hand (reposición, daño, pérdida, recuento).
func (uc *StockUseCase) Adjust(ctx context.Context, id string, in dto.AdjustStockRequest) (*dto.StockItemResponse, error) {
	originator := inventory.ParseOriginator(in.Originator)
	if in.Originator == "" {
		originator = inventory.OriginatorAdjustment
	}
	return uc.mutate(ctx, id, func(item *inventory.StockItem) error {
		return item.Adjust(in.Quantity, originator, in.Reason, in.OriginatorID)
	})
}

// Reserve reserva (o actualiza la reserva de) una orden.
func (uc *StockUseCase) Reserve(ctx context.Context, id string, in dto.ReserveStockRequest) (*dto.StockItemResponse, error) {
	return uc.mutate(ctx, id, func(item *inventory.StockItem) error {
		return item.Reserve(in.Quantity, in.OrderID)
	})
}

// Release libera unidades reservadas.
func (uc *StockUseCase) Release(ctx context.Context, id string, in dto.ReleaseStockRequest) (*dto.StockItemResponse, error) {
	return uc.mutate(ctx, id, func(item *inventory.StockItem) error {
		return item.Release(in.Quantity, in.OrderID)
	})
}

// ConfirmShipment baja on-hand y reservado por un envío.
func (uc *StockUseCase) ConfirmShipment(ctx context.Context, id string, in dto.ConfirmShipmentRequest) (*dto.StockItemResponse, error) {
	if strings.TrimSpace(in.ShipmentID) == "" {
		return nil, domain.Validation(domain.ErrInvalidInput.Code, "shipment_id es obligatorio")
	}
	return uc.mutate(ctx, id, func(item *inventory.StockItem) error {
		return item.ConfirmShipment(in.Quantity, in.ShipmentID, in.OrderID)
	})
}

// DeleteStockItem borrado lógico: marca el item y emite StockItemDeleted.
func (uc *StockUseCase) DeleteStockItem(ctx context.Context, id string) error {
	_, err := uc.mutate(ctx, id, func(item *inventory.StockItem) error {
		item.RequestDeletion()
		return nil
	})
	return err
}

// ListMovements libro de movimientos de un item, del más reciente al más antiguo.
func (uc *StockUseCase) ListMovements(ctx context.Context, id string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	page.DefaultPage()
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, inventory.ErrStockItemNotFound
	}
	list, err := uc.movements.ListByStockItem(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementListResponse{
		Items: toMovementResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// VerifyStockItem revisa las invariantes del item tal como quedó en almacenamiento.
func (uc *StockUseCase) VerifyStockItem(ctx context.Context, id string) (*dto.InvariantReport, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, inventory.ErrStockItemNotFound
	}
	report := &dto.InvariantReport{StockItemID: item.ID, Valid: true}
	if verr := item.ValidateInvariants(); verr != nil {
		report.Valid = false
		report.Violations = toErrorDetails(verr)
		uc.events.log.Warn().Str("stock_item_id", item.ID).Err(verr).Msg("invariantes de stock violadas")
	}
	return report, nil
}

// mutate carga el item bloqueado, aplica fn y persiste item, movimientos y eventos.
func (uc *StockUseCase) mutate(ctx context.Context, id string, fn func(*inventory.StockItem) error) (*dto.StockItemResponse, error) {
	var (
		item   *inventory.StockItem
		events []domain.Event
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		var err error
		item, err = r.Items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil || item.DeletedAt != nil {
			return inventory.ErrStockItemNotFound
		}
		if err := fn(item); err != nil {
			return err
		}
		if err := persistItem(ctx, r, item); err != nil {
			return err
		}
		events = item.PullEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.events.publish(ctx, events)
	return toStockItemResponse(item), nil
}
