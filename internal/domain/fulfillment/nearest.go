package fulfillment

import (
	"math"
	"sort"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/geo"
)

// NearestStrategy prefiere la ubicación más cercana al cliente (Haversine).
// Sin coordenadas del cliente usa la primera ubicación con stock.
type NearestStrategy struct{}

func NewNearestStrategy() *NearestStrategy { return &NearestStrategy{} }

func (s *NearestStrategy) Type() StrategyType { return StrategyNearest }

func (s *NearestStrategy) SupportsMultipleLocations() bool { return true }

// SelectLocation con cliente ubicado, las ubicaciones sin coordenadas quedan fuera.
func (s *NearestStrategy) SelectLocation(variantID string, required int, locations []*inventory.StockLocation, customer *geo.Point) *inventory.StockLocation {
	candidates := suppliers(variantID, required, locations)
	if customer == nil {
		if len(candidates) == 0 {
			return nil
		}
		return candidates[0]
	}
	var best *inventory.StockLocation
	bestDist := math.Inf(1)
	for _, loc := range candidates {
		p := loc.Point()
		if p == nil {
			continue
		}
		if d := geo.DistanceKm(*customer, *p); d < bestDist {
			best, bestDist = loc, d
		}
	}
	return best
}

// SelectMultipleLocations ordena por distancia; las ubicaciones sin coordenadas van al final.
func (s *NearestStrategy) SelectMultipleLocations(variantID string, required int, locations []*inventory.StockLocation, maxLocations int, customer *geo.Point) []Allocation {
	ordered := append([]*inventory.StockLocation(nil), locations...)
	if customer != nil {
		dist := make(map[*inventory.StockLocation]float64, len(ordered))
		for _, loc := range ordered {
			dist[loc] = distanceOrInf(customer, loc)
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			return dist[ordered[i]] < dist[ordered[j]]
		})
	}
	return allocateGreedy(variantID, required, ordered, maxLocations)
}

func distanceOrInf(customer *geo.Point, loc *inventory.StockLocation) float64 {
	if loc == nil {
		return math.Inf(1)
	}
	p := loc.Point()
	if customer == nil || p == nil {
		return math.Inf(1)
	}
	return geo.DistanceKm(*customer, *p)
}
