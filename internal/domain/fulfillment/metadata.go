package fulfillment

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Claves de metadatos de ubicación que leen las estrategias.
const (
	MetaPreferencePriority = "fulfillment_preference_priority"
	MetaCostBase           = "fulfillment_cost_base"
	MetaHandlingPerUnit    = "handling_cost_per_unit"
	MetaShippingPerKm      = "shipping_cost_per_km"
)

// metadataInt lee un entero; valores ausentes o no numéricos devuelven ok=false.
func metadataInt(m map[string]any, key string) (int, bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// metadataDecimal lee un monto; nunca falla, devuelve ok=false si no se puede interpretar.
func metadataDecimal(m map[string]any, key string) (decimal.Decimal, bool) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return decimal.Zero, false
	}
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
