package fulfillment

import (
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// ErrInvalidPlan el resultado no cumple sus invariantes de construcción.
var ErrInvalidPlan = domain.Failure("FulfillmentPlan.Invalid", "plan de despacho inconsistente")

// Item línea de pedido asignada a una ubicación.
type Item struct {
	LineItemID    string
	VariantID     string
	Quantity      int
	IsBackordered bool
}

// ShipmentPlan ítems que salen juntos desde una ubicación. Nunca está vacío.
type ShipmentPlan struct {
	LocationID   string
	LocationName string
	Items        []Item
}

// PlanResult resultado de planificar un pedido. IsFullyFulfillable e
// IsPartialFulfillment son excluyentes; ambos en false solo si no hay envíos.
type PlanResult struct {
	Strategy             StrategyType
	Shipments            []ShipmentPlan
	IsFullyFulfillable   bool
	IsPartialFulfillment bool
	UnfulfilledLineItems []string
}

// NewPlanResult calcula las banderas a partir de los envíos y valida invariantes:
// ningún envío vacío y cada línea en a lo sumo un envío.
func NewPlanResult(strategy StrategyType, shipments []ShipmentPlan, totalLines int, unfulfilled []string) (*PlanResult, error) {
	seen := make(map[string]bool)
	for _, sh := range shipments {
		if len(sh.Items) == 0 {
			return nil, domain.Failure(ErrInvalidPlan.Code, fmt.Sprintf("envío vacío para ubicación %s", sh.LocationID))
		}
		for _, it := range sh.Items {
			if seen[it.LineItemID] {
				return nil, domain.Failure(ErrInvalidPlan.Code, fmt.Sprintf("línea %s en más de un envío", it.LineItemID))
			}
			seen[it.LineItemID] = true
		}
	}
	fulfilled := len(seen)
	if fulfilled > totalLines {
		return nil, domain.Failure(ErrInvalidPlan.Code, "más líneas asignadas que líneas del pedido")
	}
	return &PlanResult{
		Strategy:             strategy,
		Shipments:            shipments,
		IsFullyFulfillable:   totalLines > 0 && fulfilled == totalLines,
		IsPartialFulfillment: fulfilled > 0 && fulfilled < totalLines,
		UnfulfilledLineItems: unfulfilled,
	}, nil
}

// FulfilledCount cantidad de líneas asignadas.
func (p *PlanResult) FulfilledCount() int {
	n := 0
	for _, sh := range p.Shipments {
		n += len(sh.Items)
	}
	return n
}

// PlanBuilder agrupa ítems por ubicación conservando el orden de aparición.
type PlanBuilder struct {
	strategy    StrategyType
	order       []string
	byLocation  map[string]*ShipmentPlan
	unfulfilled []string
	lines       int
}

func NewPlanBuilder(strategy StrategyType) *PlanBuilder {
	return &PlanBuilder{strategy: strategy, byLocation: make(map[string]*ShipmentPlan)}
}

// Add asigna la línea a la ubicación.
func (b *PlanBuilder) Add(loc *inventory.StockLocation, item Item) {
	b.lines++
	sh, ok := b.byLocation[loc.ID]
	if !ok {
		sh = &ShipmentPlan{LocationID: loc.ID, LocationName: loc.Name}
		b.byLocation[loc.ID] = sh
		b.order = append(b.order, loc.ID)
	}
	sh.Items = append(sh.Items, item)
}

// Skip registra una línea que no se pudo asignar.
func (b *PlanBuilder) Skip(lineItemID string) {
	b.lines++
	b.unfulfilled = append(b.unfulfilled, lineItemID)
}

// Build construye el resultado.
func (b *PlanBuilder) Build() (*PlanResult, error) {
	shipments := make([]ShipmentPlan, 0, len(b.order))
	for _, id := range b.order {
		shipments = append(shipments, *b.byLocation[id])
	}
	return NewPlanResult(b.strategy, shipments, b.lines, b.unfulfilled)
}
