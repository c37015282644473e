package fulfillment

import (
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/geo"
)

// PreferredStrategy respeta la prioridad configurada por ubicación
// (fulfillment_preference_priority). No divide pedidos entre ubicaciones.
type PreferredStrategy struct{}

func NewPreferredStrategy() *PreferredStrategy { return &PreferredStrategy{} }

func (s *PreferredStrategy) Type() StrategyType { return StrategyPreferred }

func (s *PreferredStrategy) SupportsMultipleLocations() bool { return false }

// Priority prioridad de la ubicación: metadatos públicos, luego privados, 0 por defecto.
func Priority(loc *inventory.StockLocation) int {
	if p, ok := metadataInt(loc.PublicMetadata, MetaPreferencePriority); ok {
		return p
	}
	if p, ok := metadataInt(loc.PrivateMetadata, MetaPreferencePriority); ok {
		return p
	}
	return 0
}

// SelectLocation mayor prioridad positiva; si ninguna la tiene, la primera con stock.
func (s *PreferredStrategy) SelectLocation(variantID string, required int, locations []*inventory.StockLocation, _ *geo.Point) *inventory.StockLocation {
	candidates := suppliers(variantID, required, locations)
	if len(candidates) == 0 {
		return nil
	}
	var best *inventory.StockLocation
	bestPriority := 0
	for _, loc := range candidates {
		if p := Priority(loc); p > bestPriority {
			best, bestPriority = loc, p
		}
	}
	if best == nil {
		return candidates[0]
	}
	return best
}

// SelectMultipleLocations devuelve la ubicación elegida como única asignación, o nil.
func (s *PreferredStrategy) SelectMultipleLocations(variantID string, required int, locations []*inventory.StockLocation, _ int, customer *geo.Point) []Allocation {
	loc := s.SelectLocation(variantID, required, locations, customer)
	if loc == nil {
		return nil
	}
	return []Allocation{{Location: loc, Quantity: required}}
}
