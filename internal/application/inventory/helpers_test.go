package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/memory"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// recordingPublisher guarda los eventos publicados.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// fixture almacén en memoria con los casos de uso cableados.
type fixture struct {
	store        *memory.Store
	pub          *recordingPublisher
	stock        *appinv.StockUseCase
	reservations *appinv.ReservationUseCase
	transfers    *appinv.TransferUseCase
	locations    *appinv.LocationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	pub := &recordingPublisher{}
	log := logger.Nop()
	numbers := inventory.NewNumberGenerator("T", memory.NewSequence()).
		WithClock(func() time.Time { return time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC) })
	return &fixture{
		store:        store,
		pub:          pub,
		stock:        appinv.NewStockUseCase(tx, store.Items(), store.Movements(), store.Variants(), pub, log),
		reservations: appinv.NewReservationUseCase(tx, store.Orders(), pub, log),
		transfers:    appinv.NewTransferUseCase(tx, store.Transfers(), store.Locations(), store.Movements(), store.Variants(), numbers, pub, log),
		locations:    appinv.NewLocationUseCase(store.Locations()),
	}
}

func (f *fixture) location(t *testing.T, name string) *inventory.StockLocation {
	t.Helper()
	loc := inventory.NewStockLocation(name, "")
	require.NoError(t, f.store.Locations().Create(context.Background(), loc))
	return loc
}

func (f *fixture) variant(t *testing.T, sku string) *entity.Variant {
	t.Helper()
	v := &entity.Variant{ID: "var-" + sku, SKU: sku, Name: sku, Price: decimal.NewFromInt(10), TrackInventory: true}
	require.NoError(t, f.store.Variants().Create(context.Background(), v))
	return v
}

func (f *fixture) item(t *testing.T, loc *inventory.StockLocation, v *entity.Variant, onHand int, backorderable bool) *inventory.StockItem {
	t.Helper()
	si := inventory.NewStockItem(v.ID, loc.ID, v.SKU, backorderable)
	si.QuantityOnHand = onHand
	require.NoError(t, f.store.Items().Create(context.Background(), si))
	return si
}

func (f *fixture) order(t *testing.T, id string, lines ...entity.LineItem) *entity.Order {
	t.Helper()
	o := &entity.Order{ID: id, Number: "R" + id, LineItems: lines}
	require.NoError(t, f.store.Orders().Create(context.Background(), o))
	return o
}

func (f *fixture) reload(t *testing.T, id string) *inventory.StockItem {
	t.Helper()
	si, err := f.store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, si)
	return si
}
