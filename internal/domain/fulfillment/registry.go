package fulfillment

import (
	"sort"
	"strings"
	"sync"
)

// DefaultStrategy estrategia usada cuando el nombre recibido no se reconoce.
const DefaultStrategy = StrategyHighestStock

var knownTypes = []StrategyType{StrategyHighestStock, StrategyNearest, StrategyCostOptimized, StrategyPreferred}

// ParseStrategyType interpreta el nombre sin distinguir mayúsculas.
func ParseStrategyType(name string) (StrategyType, bool) {
	name = strings.TrimSpace(name)
	for _, t := range knownTypes {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}

// Registry conjunto cerrado de estrategias por nombre.
type Registry struct {
	mu         sync.RWMutex
	strategies map[StrategyType]Strategy
}

// NewRegistry registra las estrategias recibidas.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[StrategyType]Strategy, len(strategies))}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// NewDefaultRegistry registra las cuatro estrategias con el modelo de costos dado.
func NewDefaultRegistry(costs CostModel) *Registry {
	return NewRegistry(
		NewHighestStockStrategy(),
		NewNearestStrategy(),
		NewCostOptimizedStrategy(costs),
		NewPreferredStrategy(),
	)
}

// Register agrega o reemplaza la estrategia de su tipo.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Type()] = s
}

// Get devuelve la estrategia registrada para t.
func (r *Registry) Get(t StrategyType) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[t]
	return s, ok
}

// Resolve interpreta name y devuelve su estrategia. Un nombre desconocido o no
// registrado cae en HighestStock sin error.
func (r *Registry) Resolve(name string) Strategy {
	if t, ok := ParseStrategyType(name); ok {
		if s, found := r.Get(t); found {
			return s
		}
	}
	if s, ok := r.Get(DefaultStrategy); ok {
		return s
	}
	return NewHighestStockStrategy()
}

// Types nombres registrados, ordenados.
func (r *Registry) Types() []StrategyType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]StrategyType, 0, len(r.strategies))
	for t := range r.strategies {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
