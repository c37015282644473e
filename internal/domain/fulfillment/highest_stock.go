package fulfillment

import (
	"sort"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/geo"
)

// HighestStockStrategy prefiere la ubicación con más unidades disponibles.
type HighestStockStrategy struct{}

func NewHighestStockStrategy() *HighestStockStrategy { return &HighestStockStrategy{} }

func (s *HighestStockStrategy) Type() StrategyType { return StrategyHighestStock }

func (s *HighestStockStrategy) SupportsMultipleLocations() bool { return true }

// SelectLocation mayor disponible entre las que pueden cubrir required; empates por orden de llegada.
func (s *HighestStockStrategy) SelectLocation(variantID string, required int, locations []*inventory.StockLocation, _ *geo.Point) *inventory.StockLocation {
	var best *inventory.StockLocation
	bestAvail := -1
	for _, loc := range suppliers(variantID, required, locations) {
		if avail := loc.CountAvailable(variantID); avail > bestAvail {
			best, bestAvail = loc, avail
		}
	}
	return best
}

func (s *HighestStockStrategy) SelectMultipleLocations(variantID string, required int, locations []*inventory.StockLocation, maxLocations int, _ *geo.Point) []Allocation {
	ordered := append([]*inventory.StockLocation(nil), locations...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return availableAt(ordered[i], variantID) > availableAt(ordered[j], variantID)
	})
	return allocateGreedy(variantID, required, ordered, maxLocations)
}
