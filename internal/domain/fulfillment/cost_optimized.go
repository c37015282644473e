package fulfillment

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/geo"
)

// CostModel valores por defecto del costo de despacho; cada ubicación puede
// sobrescribirlos en sus metadatos privados.
type CostModel struct {
	BaseCost           decimal.Decimal
	HandlingPerUnit    decimal.Decimal
	ShippingPerKm      decimal.Decimal
	FallbackDistanceKm decimal.Decimal
}

// DefaultCostModel base 5, manejo 0.50/unidad, envío 0.10/km, 500 km sin coordenadas.
func DefaultCostModel() CostModel {
	return CostModel{
		BaseCost:           decimal.NewFromInt(5),
		HandlingPerUnit:    decimal.RequireFromString("0.50"),
		ShippingPerKm:      decimal.RequireFromString("0.10"),
		FallbackDistanceKm: decimal.NewFromInt(500),
	}
}

// CostOptimizedStrategy minimiza base + distancia×costo_km + cantidad×manejo.
type CostOptimizedStrategy struct {
	model CostModel
}

func NewCostOptimizedStrategy(model CostModel) *CostOptimizedStrategy {
	return &CostOptimizedStrategy{model: model}
}

func (s *CostOptimizedStrategy) Type() StrategyType { return StrategyCostOptimized }

func (s *CostOptimizedStrategy) SupportsMultipleLocations() bool { return true }

// Cost costo estimado de despachar quantity desde loc.
func (s *CostOptimizedStrategy) Cost(loc *inventory.StockLocation, quantity int, customer *geo.Point) decimal.Decimal {
	base := s.model.BaseCost
	handling := s.model.HandlingPerUnit
	perKm := s.model.ShippingPerKm
	if v, ok := metadataDecimal(loc.PrivateMetadata, MetaCostBase); ok {
		base = v
	}
	if v, ok := metadataDecimal(loc.PrivateMetadata, MetaHandlingPerUnit); ok {
		handling = v
	}
	if v, ok := metadataDecimal(loc.PrivateMetadata, MetaShippingPerKm); ok {
		perKm = v
	}
	return base.
		Add(s.distance(loc, customer).Mul(perKm)).
		Add(decimal.NewFromInt(int64(quantity)).Mul(handling))
}

func (s *CostOptimizedStrategy) distance(loc *inventory.StockLocation, customer *geo.Point) decimal.Decimal {
	p := loc.Point()
	if customer == nil || p == nil {
		return s.model.FallbackDistanceKm
	}
	return decimal.NewFromFloat(geo.DistanceKm(*customer, *p))
}

// SelectLocation menor costo total para required; empates por orden de llegada.
func (s *CostOptimizedStrategy) SelectLocation(variantID string, required int, locations []*inventory.StockLocation, customer *geo.Point) *inventory.StockLocation {
	var (
		best     *inventory.StockLocation
		bestCost decimal.Decimal
	)
	for _, loc := range suppliers(variantID, required, locations) {
		c := s.Cost(loc, required, customer)
		if best == nil || c.LessThan(bestCost) {
			best, bestCost = loc, c
		}
	}
	return best
}

// SelectMultipleLocations ordena por costo unitario de lo que cada ubicación
// alcanzaría a despachar.
func (s *CostOptimizedStrategy) SelectMultipleLocations(variantID string, required int, locations []*inventory.StockLocation, maxLocations int, customer *geo.Point) []Allocation {
	if required <= 0 {
		return nil
	}
	ordered := make([]*inventory.StockLocation, 0, len(locations))
	unit := make(map[*inventory.StockLocation]decimal.Decimal, len(locations))
	for _, loc := range locations {
		avail := availableAt(loc, variantID)
		if avail <= 0 {
			continue
		}
		q := min(avail, required)
		unit[loc] = s.Cost(loc, q, customer).Div(decimal.NewFromInt(int64(q)))
		ordered = append(ordered, loc)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return unit[ordered[i]].LessThan(unit[ordered[j]])
	})
	return allocateGreedy(variantID, required, ordered, maxLocations)
}
