package fulfillment

import (
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/geo"
)

// StrategyType nombre de una estrategia de selección de ubicación.
type StrategyType string

const (
	StrategyHighestStock  StrategyType = "HighestStock"
	StrategyNearest       StrategyType = "Nearest"
	StrategyCostOptimized StrategyType = "CostOptimized"
	StrategyPreferred     StrategyType = "Preferred"
)

// Allocation cantidad asignada a una ubicación.
type Allocation struct {
	Location *inventory.StockLocation
	Quantity int
}

// Strategy decide desde qué ubicación(es) se despacha una variante.
//
// SelectLocation nunca devuelve una ubicación que no pueda cubrir required
// (disponible o dentro del límite de backorder). SelectMultipleLocations devuelve
// asignaciones que suman exactamente required, o nil si el stock disponible de
// todas las candidatas no alcanza. maxLocations <= 0 no limita.
// customer nil significa sin coordenadas del cliente.
type Strategy interface {
	Type() StrategyType
	SelectLocation(variantID string, required int, locations []*inventory.StockLocation, customer *geo.Point) *inventory.StockLocation
	SelectMultipleLocations(variantID string, required int, locations []*inventory.StockLocation, maxLocations int, customer *geo.Point) []Allocation
	SupportsMultipleLocations() bool
}

// canSupply indica si la ubicación puede comprometer required de la variante.
func canSupply(loc *inventory.StockLocation, variantID string, required int) bool {
	if loc == nil {
		return false
	}
	si := loc.StockItem(variantID)
	return si != nil && si.CanSupply(required)
}

// suppliers filtra las ubicaciones que pueden cubrir required, en orden de llegada.
func suppliers(variantID string, required int, locations []*inventory.StockLocation) []*inventory.StockLocation {
	out := make([]*inventory.StockLocation, 0, len(locations))
	for _, loc := range locations {
		if canSupply(loc, variantID, required) {
			out = append(out, loc)
		}
	}
	return out
}

// allocateGreedy toma stock disponible de las ubicaciones en el orden dado hasta
// cubrir required. Si no alcanza devuelve nil: no hay compromisos parciales.
func allocateGreedy(variantID string, required int, ordered []*inventory.StockLocation, maxLocations int) []Allocation {
	if required <= 0 {
		return nil
	}
	remaining := required
	var out []Allocation
	for _, loc := range ordered {
		if maxLocations > 0 && len(out) >= maxLocations {
			break
		}
		if loc == nil {
			continue
		}
		avail := loc.CountAvailable(variantID)
		if avail <= 0 {
			continue
		}
		take := min(avail, remaining)
		out = append(out, Allocation{Location: loc, Quantity: take})
		remaining -= take
		if remaining == 0 {
			return out
		}
	}
	return nil
}

func availableAt(loc *inventory.StockLocation, variantID string) int {
	if loc == nil {
		return 0
	}
	return loc.CountAvailable(variantID)
}
