// Package seed carga datos de ejemplo (ubicaciones, variantes, stock y pedidos)
// desde un archivo YAML pasando por los casos de uso, igual que la API.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// File contenido del YAML. Las ubicaciones se referencian por código y las variantes por SKU.
type File struct {
	Locations []Location `yaml:"locations"`
	Variants  []Variant  `yaml:"variants"`
	Stock     []Stock    `yaml:"stock"`
	Orders    []Order    `yaml:"orders"`
}

type Location struct {
	Code                 string         `yaml:"code"`
	Name                 string         `yaml:"name"`
	Latitude             *float64       `yaml:"latitude"`
	Longitude            *float64       `yaml:"longitude"`
	ShipEnabled          *bool          `yaml:"ship_enabled"`
	BackorderableDefault bool           `yaml:"backorderable_default"`
	PublicMetadata       map[string]any `yaml:"public_metadata"`
	PrivateMetadata      map[string]any `yaml:"private_metadata"`
}

type Variant struct {
	SKU            string `yaml:"sku"`
	Name           string `yaml:"name"`
	Price          string `yaml:"price"`
	TrackInventory *bool  `yaml:"track_inventory"`
}

type Stock struct {
	Location             string `yaml:"location"`
	SKU                  string `yaml:"sku"`
	OnHand               int    `yaml:"on_hand"`
	Backorderable        *bool  `yaml:"backorderable"`
	MaxBackorderQuantity *int   `yaml:"max_backorder_quantity"`
}

type Order struct {
	ID            string      `yaml:"id"`
	Number        string      `yaml:"number"`
	ShipLatitude  *float64    `yaml:"ship_latitude"`
	ShipLongitude *float64    `yaml:"ship_longitude"`
	Lines         []OrderLine `yaml:"lines"`
}

type OrderLine struct {
	SKU      string `yaml:"sku"`
	Quantity int    `yaml:"quantity"`
}

// Parse decodifica el YAML rechazando campos desconocidos.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decodificar seed: %w", err)
	}
	return &f, nil
}

// ReadFile abre y decodifica un archivo de seed.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir seed: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Deps casos de uso y repositorios que usa el seed.
type Deps struct {
	Locations *appinv.LocationUseCase
	Stock     *appinv.StockUseCase
	Variants  repository.VariantRepository
	Orders    repository.OrderRepository
	Log       *logger.Logger
}

// Summary cuántos registros se crearon.
type Summary struct {
	Locations  int
	Variants   int
	StockItems int
	Orders     int
}

// Apply crea todo en orden: ubicaciones, variantes, stock y pedidos. Está
// pensado para una base vacía; el primer conflicto detiene la carga.
func Apply(ctx context.Context, f *File, d Deps) (Summary, error) {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	var sum Summary
	locIDs := make(map[string]string, len(f.Locations))
	for _, l := range f.Locations {
		out, err := d.Locations.Create(ctx, dto.CreateStockLocationRequest{
			Name:                 l.Name,
			Code:                 l.Code,
			Latitude:             l.Latitude,
			Longitude:            l.Longitude,
			ShipEnabled:          l.ShipEnabled,
			BackorderableDefault: l.BackorderableDefault,
			PublicMetadata:       l.PublicMetadata,
			PrivateMetadata:      l.PrivateMetadata,
		})
		if err != nil {
			return sum, fmt.Errorf("ubicación %s: %w", l.Code, err)
		}
		locIDs[l.Code] = out.ID
		sum.Locations++
	}

	variantIDs := make(map[string]string, len(f.Variants))
	for _, v := range f.Variants {
		price := decimal.Zero
		if v.Price != "" {
			p, err := decimal.NewFromString(v.Price)
			if err != nil {
				return sum, fmt.Errorf("variante %s: precio inválido: %w", v.SKU, err)
			}
			price = p
		}
		now := time.Now().UTC()
		variant := &entity.Variant{
			ID:             uuid.New().String(),
			SKU:            v.SKU,
			Name:           v.Name,
			Price:          price,
			TrackInventory: v.TrackInventory == nil || *v.TrackInventory,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := d.Variants.Create(ctx, variant); err != nil {
			return sum, fmt.Errorf("variante %s: %w", v.SKU, err)
		}
		variantIDs[v.SKU] = variant.ID
		sum.Variants++
	}

	for _, s := range f.Stock {
		locID, ok := locIDs[s.Location]
		if !ok {
			return sum, fmt.Errorf("stock %s: ubicación %q no declarada", s.SKU, s.Location)
		}
		variantID, ok := variantIDs[s.SKU]
		if !ok {
			return sum, fmt.Errorf("stock en %s: SKU %q no declarado", s.Location, s.SKU)
		}
		if _, err := d.Stock.CreateStockItem(ctx, dto.CreateStockItemRequest{
			StockLocationID:      locID,
			VariantID:            variantID,
			SKU:                  s.SKU,
			QuantityOnHand:       s.OnHand,
			Backorderable:        s.Backorderable,
			MaxBackorderQuantity: s.MaxBackorderQuantity,
		}); err != nil {
			return sum, fmt.Errorf("stock %s en %s: %w", s.SKU, s.Location, err)
		}
		sum.StockItems++
	}

	for _, o := range f.Orders {
		order := &entity.Order{
			ID:            o.ID,
			Number:        o.Number,
			ShipLatitude:  o.ShipLatitude,
			ShipLongitude: o.ShipLongitude,
			CreatedAt:     time.Now().UTC(),
		}
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		for i, ln := range o.Lines {
			variantID, ok := variantIDs[ln.SKU]
			if !ok {
				return sum, fmt.Errorf("pedido %s: SKU %q no declarado", o.Number, ln.SKU)
			}
			order.LineItems = append(order.LineItems, entity.LineItem{
				ID:        fmt.Sprintf("%s-%d", order.ID, i+1),
				OrderID:   order.ID,
				VariantID: variantID,
				Quantity:  ln.Quantity,
			})
		}
		if err := d.Orders.Create(ctx, order); err != nil {
			return sum, fmt.Errorf("pedido %s: %w", o.Number, err)
		}
		sum.Orders++
	}

	log.Info().
		Int("locations", sum.Locations).
		Int("variants", sum.Variants).
		Int("stock_items", sum.StockItems).
		Int("orders", sum.Orders).
		Msg("seed aplicado")
	return sum, nil
}
