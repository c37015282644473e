package fulfillment

import (
	"context"
	"strings"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/fulfillment"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/geo"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// Planner decide desde qué ubicaciones se despacha cada línea de un pedido.
// Solo lee stock: no reserva ni mueve unidades.
type Planner struct {
	registry        *fulfillment.Registry
	variants        repository.VariantRepository
	locations       repository.StockLocationRepository
	orders          repository.OrderRepository
	defaultStrategy string
	maxLocations    int
	log             *logger.Logger
}

// Options valores por defecto del planificador.
type Options struct {
	DefaultStrategy string // nombre usado cuando la solicitud no trae estrategia
	MaxLocations    int    // tope de ubicaciones en SuggestAllocations; <=0 sin tope
}

// NewPlanner construye el planificador.
func NewPlanner(
	registry *fulfillment.Registry,
	variants repository.VariantRepository,
	locations repository.StockLocationRepository,
	orders repository.OrderRepository,
	opts Options,
	log *logger.Logger,
) *Planner {
	if log == nil {
		log = logger.Nop()
	}
	return &Planner{
		registry:        registry,
		variants:        variants,
		locations:       locations,
		orders:          orders,
		defaultStrategy: opts.DefaultStrategy,
		maxLocations:    opts.MaxLocations,
		log:             log,
	}
}

// PlanOrder carga el pedido y lo planifica.
func (p *Planner) PlanOrder(ctx context.Context, orderID, strategyType string) (*fulfillment.PlanResult, error) {
	order, err := p.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return p.PlanFulfillment(ctx, order, strategyType)
}

// PlanFulfillment asigna cada línea a la mejor ubicación según la estrategia.
// Las líneas sin variante o sin ubicación candidata quedan sin asignar y no
// producen error propio; solo cuentan para las banderas de cumplimiento.
func (p *Planner) PlanFulfillment(ctx context.Context, order *entity.Order, strategyType string) (*fulfillment.PlanResult, error) {
	if order == nil {
		return nil, entity.ErrOrderNotFound
	}
	if len(order.LineItems) == 0 {
		return nil, entity.ErrOrderEmpty
	}
	strategy := p.resolve(strategyType)
	customer := order.ShipPoint()
	builder := fulfillment.NewPlanBuilder(strategy.Type())

	for _, li := range order.LineItems {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates, err := p.candidates(ctx, li.VariantID)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			builder.Skip(li.ID)
			continue
		}
		loc := strategy.SelectLocation(li.VariantID, li.Quantity, candidates, customer)
		if loc == nil {
			builder.Skip(li.ID)
			continue
		}
		builder.Add(loc, fulfillment.Item{
			LineItemID:    li.ID,
			VariantID:     li.VariantID,
			Quantity:      li.Quantity,
			IsBackordered: loc.CountAvailable(li.VariantID) < li.Quantity,
		})
	}

	plan, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Str("order_id", order.ID).
		Str("strategy", string(plan.Strategy)).
		Int("shipments", len(plan.Shipments)).
		Int("unfulfilled", len(plan.UnfulfilledLineItems)).
		Msg("plan de despacho calculado")
	return plan, nil
}

// SuggestAllocations reparte una cantidad de una variante entre varias ubicaciones.
// Devuelve una lista vacía si el disponible total no alcanza.
func (p *Planner) SuggestAllocations(ctx context.Context, in dto.AllocationRequest) (*dto.AllocationListResponse, error) {
	if strings.TrimSpace(in.VariantID) == "" {
		return nil, domain.Validation(domain.ErrInvalidInput.Code, "variant_id es obligatorio")
	}
	if in.Quantity <= 0 {
		return nil, inventory.InvalidQuantity(in.VariantID, in.Quantity)
	}
	strategy := p.resolve(in.Strategy)
	maxLocations := in.MaxLocations
	if maxLocations <= 0 {
		maxLocations = p.maxLocations
	}
	candidates, err := p.candidates(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	allocs := strategy.SelectMultipleLocations(in.VariantID, in.Quantity, candidates, maxLocations, geo.NewPoint(in.Latitude, in.Longitude))
	out := &dto.AllocationListResponse{
		Strategy:                  string(strategy.Type()),
		SupportsMultipleLocations: strategy.SupportsMultipleLocations(),
		Items:                     make([]dto.AllocationResponse, 0, len(allocs)),
	}
	for _, a := range allocs {
		out.Items = append(out.Items, dto.AllocationResponse{
			LocationID:   a.Location.ID,
			LocationName: a.Location.Name,
			Quantity:     a.Quantity,
		})
	}
	return out, nil
}

// Strategies estrategias registradas y la usada por defecto.
func (p *Planner) Strategies() *dto.StrategyListResponse {
	types := p.registry.Types()
	items := make([]string, 0, len(types))
	for _, t := range types {
		items = append(items, string(t))
	}
	return &dto.StrategyListResponse{
		Default: string(p.resolve("").Type()),
		Items:   items,
	}
}

func (p *Planner) resolve(name string) fulfillment.Strategy {
	if strings.TrimSpace(name) == "" {
		name = p.defaultStrategy
	}
	return p.registry.Resolve(name)
}

// candidates ubicaciones que pueden despachar la variante: activas, con envío
// habilitado y con stock o backorder permitido.
func (p *Planner) candidates(ctx context.Context, variantID string) ([]*inventory.StockLocation, error) {
	variant, err := p.variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, nil
	}
	locations, err := p.locations.ListByVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	out := make([]*inventory.StockLocation, 0, len(locations))
	for _, loc := range locations {
		if !loc.CanShip() {
			continue
		}
		item := loc.StockItem(variantID)
		if item == nil || item.DeletedAt != nil {
			continue
		}
		if item.InStock() || item.Backorderable {
			out = append(out, loc)
		}
	}
	return out, nil
}
