package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fulfillment-api/pkg/geo"
)

// StockLocation bodega o tienda desde donde se despacha inventario.
// Es una entidad de referencia: este núcleo no la crea ni la destruye en sus flujos.
type StockLocation struct {
	ID                   string
	Name                 string
	Code                 string
	Latitude             *float64
	Longitude            *float64
	Active               bool
	ShipEnabled          bool
	PickupEnabled        bool
	BackorderableDefault bool
	PublicMetadata       map[string]any
	PrivateMetadata      map[string]any
	StockItems           []*StockItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewStockLocation crea una ubicación activa y habilitada para despachos.
func NewStockLocation(name, code string) *StockLocation {
	now := time.Now().UTC()
	return &StockLocation{
		ID:              uuid.New().String(),
		Name:            name,
		Code:            code,
		Active:          true,
		ShipEnabled:     true,
		PublicMetadata:  map[string]any{},
		PrivateMetadata: map[string]any{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CanShip indica si la ubicación puede despachar pedidos.
func (l *StockLocation) CanShip() bool {
	return l.Active && l.ShipEnabled
}

// HasCoordinates indica si la ubicación tiene latitud y longitud.
func (l *StockLocation) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Point coordenadas de la ubicación, nil si no tiene.
func (l *StockLocation) Point() *geo.Point {
	return geo.NewPoint(l.Latitude, l.Longitude)
}

// StockItem devuelve el item de la variante en esta ubicación, nil si no existe.
func (l *StockLocation) StockItem(variantID string) *StockItem {
	for _, si := range l.StockItems {
		if si.VariantID == variantID {
			return si
		}
	}
	return nil
}

// ResolveStockItem busca el item de la variante o lo crea con la política de
// backorder por defecto de la ubicación.
func (l *StockLocation) ResolveStockItem(variantID, sku string) (item *StockItem, created bool) {
	if si := l.StockItem(variantID); si != nil {
		return si, false
	}
	si := NewStockItem(variantID, l.ID, sku, l.BackorderableDefault)
	l.StockItems = append(l.StockItems, si)
	return si, true
}

// CountAvailable disponible de la variante en la ubicación (0 si no hay item).
func (l *StockLocation) CountAvailable(variantID string) int {
	if si := l.StockItem(variantID); si != nil {
		return si.CountAvailable()
	}
	return 0
}

// Backorderable indica si la variante admite backorder aquí. Sin item, aplica el valor por defecto.
func (l *StockLocation) Backorderable(variantID string) bool {
	if si := l.StockItem(variantID); si != nil {
		return si.Backorderable
	}
	return l.BackorderableDefault
}

// Unstock retira cantidad de la variante (Adjust con delta negativo).
func (l *StockLocation) Unstock(variantID, sku string, quantity int, originator Originator, originatorID string) error {
	si, _ := l.ResolveStockItem(variantID, sku)
	return si.Adjust(-quantity, originator, "", originatorID)
}

// Restock ingresa cantidad de la variante (Adjust con delta positivo).
func (l *StockLocation) Restock(variantID, sku string, quantity int, originator Originator, originatorID string) error {
	si, _ := l.ResolveStockItem(variantID, sku)
	return si.Adjust(quantity, originator, "", originatorID)
}

// Clone copia profunda de la ubicación y sus items.
func (l *StockLocation) Clone() *StockLocation {
	c := *l
	c.PublicMetadata = cloneMap(l.PublicMetadata)
	c.PrivateMetadata = cloneMap(l.PrivateMetadata)
	c.StockItems = make([]*StockItem, 0, len(l.StockItems))
	for _, si := range l.StockItems {
		c.StockItems = append(c.StockItems, si.Clone())
	}
	if l.Latitude != nil {
		v := *l.Latitude
		c.Latitude = &v
	}
	if l.Longitude != nil {
		v := *l.Longitude
		c.Longitude = &v
	}
	return &c
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
