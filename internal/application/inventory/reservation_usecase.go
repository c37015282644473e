package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/fulfillment"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// ErrNothingToReserve el plan no asigna ninguna línea a una ubicación.
var ErrNothingToReserve = domain.Validation("Order.NothingToReserve", "el plan no tiene envíos para reservar")

// ReservationUseCase reserva, libera y despacha el stock de un pedido completo.
type ReservationUseCase struct {
	txRunner TxRunner
	orders   repository.OrderRepository
	events   eventSink
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(txRunner TxRunner, orders repository.OrderRepository, publisher ports.EventPublisher, log *logger.Logger) *ReservationUseCase {
	return &ReservationUseCase{
		txRunner: txRunner,
		orders:   orders,
		events:   newEventSink(publisher, log),
	}
}

// reservationKey agrupa las líneas del plan por (ubicación, variante).
type reservationKey struct {
	locationID string
	variantID  string
}

type reservationGroup struct {
	key      reservationKey
	quantity int
	lines    []fulfillment.Item
}

// ReserveOrder reserva cada ítem del plan en su ubicación dentro de una sola
// transacción: o se reserva todo o nada. Repetir la llamada no duplica reservas:
// lo que la orden tenía reservado fuera del nuevo plan se libera en la misma
// transacción. Las unidades sin stock físico quedan como backorder.
func (uc *ReservationUseCase) ReserveOrder(ctx context.Context, orderID string, plan *fulfillment.PlanResult) (*dto.OrderReservationResponse, error) {
	if _, err := uc.loadOrder(ctx, orderID); err != nil {
		return nil, err
	}
	if plan == nil || len(plan.Shipments) == 0 {
		return nil, ErrNothingToReserve
	}
	groups, locationIDs := groupPlan(plan)

	var (
		touched     []*inventory.StockItem
		backordered int
		events      []domain.Event
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		touched, backordered, events = nil, 0, nil
		// Las ubicaciones se bloquean siempre en el mismo orden para no cruzar locks.
		locations := make(map[string]*inventory.StockLocation, len(locationIDs))
		for _, id := range locationIDs {
			loc, err := r.Locations.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if loc == nil {
				return inventory.ErrStockLocationMissing
			}
			locations[id] = loc
		}
		released, err := releaseOutsidePlan(ctx, r, orderID, groups, locations)
		if err != nil {
			return err
		}
		for _, item := range released {
			events = append(events, item.PullEvents()...)
			touched = append(touched, item)
		}
		for _, g := range groups {
			item := locations[g.key.locationID].StockItem(g.key.variantID)
			if item == nil || item.DeletedAt != nil {
				return domain.NotFound(inventory.ErrStockItemNotFound.Code,
					fmt.Sprintf("sin stock item para variante %s en ubicación %s", g.key.variantID, g.key.locationID))
			}
			_, hadReservation := item.ReservedFor(orderID)
			available := item.CountAvailable()
			if err := item.Reserve(g.quantity, orderID); err != nil {
				return err
			}
			if !hadReservation {
				n, err := addBackorders(item, orderID, g.lines, available)
				if err != nil {
					return err
				}
				backordered += n
			}
			if err := persistItem(ctx, r, item); err != nil {
				return err
			}
			events = append(events, item.PullEvents()...)
			touched = append(touched, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.events.publish(ctx, events)
	uc.events.log.Info().Str("order_id", orderID).Int("stock_items", len(touched)).Int("backordered", backordered).Msg("pedido reservado")
	return reservationResponse(orderID, touched, backordered), nil
}

// ReleaseOrder libera todas las reservas vigentes del pedido. Sin reservas no hace nada.
func (uc *ReservationUseCase) ReleaseOrder(ctx context.Context, orderID string) (*dto.OrderReservationResponse, error) {
	if _, err := uc.loadOrder(ctx, orderID); err != nil {
		return nil, err
	}
	var (
		touched []*inventory.StockItem
		events  []domain.Event
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		touched, events = nil, nil
		items, err := r.Items.ListReservedForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
		for _, item := range items {
			qty, ok := item.ReservedFor(orderID)
			if !ok || qty == 0 {
				continue
			}
			if err := item.Release(qty, orderID); err != nil {
				return err
			}
			if err := persistItem(ctx, r, item); err != nil {
				return err
			}
			events = append(events, item.PullEvents()...)
			touched = append(touched, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.events.publish(ctx, events)
	return reservationResponse(orderID, touched, 0), nil
}

// ShipOrder confirma el despacho de líneas del pedido desde una ubicación.
// Todas las líneas se validan antes de tocar stock; cualquier fallo revierte el envío.
func (uc *ReservationUseCase) ShipOrder(ctx context.Context, orderID string, in dto.ShipOrderRequest) (*dto.OrderReservationResponse, error) {
	if _, err := uc.loadOrder(ctx, orderID); err != nil {
		return nil, err
	}
	if err := validateShipment(in); err != nil {
		return nil, err
	}
	var (
		touched []*inventory.StockItem
		events  []domain.Event
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r TxRepos) error {
		touched, events = nil, nil
		loc, err := r.Locations.GetForUpdate(ctx, in.StockLocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return inventory.ErrStockLocationMissing
		}
		for _, line := range in.Items {
			item := loc.StockItem(line.VariantID)
			if item == nil || item.DeletedAt != nil {
				return inventory.ErrStockItemNotFound
			}
			if err := item.ConfirmShipment(line.Quantity, in.ShipmentID, orderID); err != nil {
				return err
			}
			if err := persistItem(ctx, r, item); err != nil {
				return err
			}
			events = append(events, item.PullEvents()...)
			touched = append(touched, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.events.publish(ctx, events)
	uc.events.log.Info().Str("order_id", orderID).Str("shipment_id", in.ShipmentID).Msg("envío confirmado")
	return reservationResponse(orderID, touched, 0), nil
}

func (uc *ReservationUseCase) loadOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, entity.ErrOrderNotFound
	}
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, entity.ErrOrderNotFound
	}
	return o, nil
}

// releaseOutsidePlan libera las reservas de la orden en pares (ubicación, variante)
// que el plan ya no incluye. Si la ubicación ya está bloqueada usa su copia del item.
func releaseOutsidePlan(ctx context.Context, r TxRepos, orderID string, groups []*reservationGroup, locations map[string]*inventory.StockLocation) ([]*inventory.StockItem, error) {
	inPlan := make(map[reservationKey]bool, len(groups))
	for _, g := range groups {
		inPlan[g.key] = true
	}
	held, err := r.Items.ListReservedForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	sort.Slice(held, func(i, j int) bool { return held[i].ID < held[j].ID })
	var released []*inventory.StockItem
	for _, item := range held {
		key := reservationKey{locationID: item.StockLocationID, variantID: item.VariantID}
		if inPlan[key] {
			continue
		}
		if loc, ok := locations[key.locationID]; ok {
			if si := loc.StockItem(key.variantID); si != nil {
				item = si
			}
		}
		qty, ok := item.ReservedFor(orderID)
		if !ok || qty == 0 {
			continue
		}
		if err := item.Release(qty, orderID); err != nil {
			return nil, err
		}
		if err := persistItem(ctx, r, item); err != nil {
			return nil, err
		}
		released = append(released, item)
	}
	return released, nil
}

// groupPlan suma cantidades por (ubicación, variante) y devuelve las ubicaciones ordenadas por ID.
func groupPlan(plan *fulfillment.PlanResult) ([]*reservationGroup, []string) {
	var groups []*reservationGroup
	byKey := make(map[reservationKey]*reservationGroup)
	seenLoc := make(map[string]bool)
	var locationIDs []string
	for _, sh := range plan.Shipments {
		if !seenLoc[sh.LocationID] {
			seenLoc[sh.LocationID] = true
			locationIDs = append(locationIDs, sh.LocationID)
		}
		for _, it := range sh.Items {
			k := reservationKey{locationID: sh.LocationID, variantID: it.VariantID}
			g, ok := byKey[k]
			if !ok {
				g = &reservationGroup{key: k}
				byKey[k] = g
				groups = append(groups, g)
			}
			g.quantity += it.Quantity
			g.lines = append(g.lines, it)
		}
	}
	sort.Strings(locationIDs)
	return groups, locationIDs
}

// addBackorders registra como backorder la parte de cada línea que excede el
// disponible previo a la reserva, consumiendo el disponible en orden de línea.
func addBackorders(item *inventory.StockItem, orderID string, lines []fulfillment.Item, available int) (int, error) {
	total := 0
	for _, l := range lines {
		covered := min(available, l.Quantity)
		available -= covered
		deficit := l.Quantity - covered
		if deficit <= 0 {
			continue
		}
		if _, err := item.AddBackorderedUnit(orderID, l.LineItemID, deficit); err != nil {
			return 0, err
		}
		total += deficit
	}
	return total, nil
}

func validateShipment(in dto.ShipOrderRequest) error {
	var errs error
	if strings.TrimSpace(in.ShipmentID) == "" {
		errs = multierr.Append(errs, domain.Validation(domain.ErrInvalidInput.Code, "shipment_id es obligatorio"))
	}
	if strings.TrimSpace(in.StockLocationID) == "" {
		errs = multierr.Append(errs, domain.Validation(domain.ErrInvalidInput.Code, "stock_location_id es obligatorio"))
	}
	if len(in.Items) == 0 {
		errs = multierr.Append(errs, inventory.ErrEmptyItems)
	}
	seen := make(map[string]bool, len(in.Items))
	for _, l := range in.Items {
		switch {
		case strings.TrimSpace(l.VariantID) == "":
			errs = multierr.Append(errs, domain.Validation(domain.ErrInvalidInput.Code, "variant_id es obligatorio"))
		case seen[l.VariantID]:
			errs = multierr.Append(errs, domain.Validation(inventory.ErrDuplicateVariant.Code,
				fmt.Sprintf("variante %s repetida en el envío", l.VariantID)))
		case l.Quantity <= 0:
			errs = multierr.Append(errs, inventory.InvalidQuantity(l.VariantID, l.Quantity))
		}
		seen[l.VariantID] = true
	}
	return errs
}

func reservationResponse(orderID string, items []*inventory.StockItem, backordered int) *dto.OrderReservationResponse {
	out := &dto.OrderReservationResponse{
		OrderID:     orderID,
		StockItems:  make([]dto.StockItemResponse, 0, len(items)),
		Backordered: backordered,
	}
	for _, it := range items {
		out.StockItems = append(out.StockItems, *toStockItemResponse(it))
	}
	return out
}
