package fulfillment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fulfillment-api/internal/domain/fulfillment"
)

func TestParseStrategyType_SinDistinguirMayusculas(t *testing.T) {
	for in, want := range map[string]fulfillment.StrategyType{
		"nearest":       fulfillment.StrategyNearest,
		"COSTOPTIMIZED": fulfillment.StrategyCostOptimized,
		" Preferred ":   fulfillment.StrategyPreferred,
		"highestStock":  fulfillment.StrategyHighestStock,
	} {
		got, ok := fulfillment.ParseStrategyType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := fulfillment.ParseStrategyType("cheapest")
	assert.False(t, ok)
}

func TestRegistry_ResolveConFallback(t *testing.T) {
	r := fulfillment.NewDefaultRegistry(fulfillment.DefaultCostModel())

	assert.Equal(t, fulfillment.StrategyNearest, r.Resolve("NEAREST").Type())
	assert.Equal(t, fulfillment.StrategyHighestStock, r.Resolve("desconocida").Type())
	assert.Equal(t, fulfillment.StrategyHighestStock, r.Resolve("").Type())
	assert.Len(t, r.Types(), 4)
}

func TestRegistry_NoRegistradaUsaDefault(t *testing.T) {
	r := fulfillment.NewRegistry(fulfillment.NewPreferredStrategy())
	assert.Equal(t, fulfillment.StrategyHighestStock, r.Resolve("nearest").Type())

	_, ok := r.Get(fulfillment.StrategyNearest)
	assert.False(t, ok)
}
