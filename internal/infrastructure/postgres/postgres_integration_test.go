//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

const migrationsDir = "../../../migrations"

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...domain.Event) error { return nil }

// newTestPool levanta PostgreSQL en un contenedor, aplica migraciones y devuelve el pool.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("fulfillment_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	dbCfg := config.DBConfig{DatabaseURL: dsn}

	m, err := postgres.NewMigrator(dbCfg.MigrateURL(), migrationsDir, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.False(t, dirty)
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(ctx, dbCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgres_FlujoDeInventario(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	log := logger.Nop()

	locations := postgres.NewStockLocationRepository(pool)
	variants := postgres.NewVariantRepository(pool)
	orders := postgres.NewOrderRepository(pool)
	items := postgres.NewStockItemRepository(pool)
	movements := postgres.NewStockMovementRepository(pool)
	tx := postgres.NewTxRunner(pool)

	loc := inventory.NewStockLocation("Bodega Norte", "NORTE")
	loc.PublicMetadata["preference_priority"] = 1
	require.NoError(t, locations.Create(ctx, loc))
	require.ErrorIs(t, locations.Create(ctx, inventory.NewStockLocation("Otra", "NORTE")), domain.ErrDuplicate)

	require.NoError(t, variants.Create(ctx, &entity.Variant{
		ID: "var-1", SKU: "CAM-M", Name: "Camiseta M", Price: decimal.RequireFromString("49900.50"), TrackInventory: true,
	}))
	v, err := variants.GetBySKU(ctx, "CAM-M")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("49900.5").Equal(v.Price))

	stock := appinv.NewStockUseCase(tx, items, movements, variants, nopPublisher{}, log)
	created, err := stock.CreateStockItem(ctx, dto.CreateStockItemRequest{
		StockLocationID: loc.ID, VariantID: "var-1", SKU: "CAM-M", QuantityOnHand: 5,
	})
	require.NoError(t, err)
	_, err = stock.CreateStockItem(ctx, dto.CreateStockItemRequest{StockLocationID: loc.ID, VariantID: "var-1", SKU: "OTRO"})
	require.ErrorIs(t, err, inventory.ErrDuplicateSku)

	_, err = stock.Reserve(ctx, created.ID, dto.ReserveStockRequest{Quantity: 2, OrderID: "o-1"})
	require.NoError(t, err)
	_, err = stock.ConfirmShipment(ctx, created.ID, dto.ConfirmShipmentRequest{Quantity: 2, ShipmentID: "sh-1", OrderID: "o-1"})
	require.NoError(t, err)

	got, err := stock.GetStockItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.QuantityOnHand)
	assert.Equal(t, 0, got.QuantityReserved)
	assert.Empty(t, got.Reservations)

	page, err := stock.ListMovements(ctx, created.ID, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, string(inventory.OriginatorShipment), page.Items[0].Originator, "el más reciente primero")

	require.NoError(t, orders.Create(ctx, &entity.Order{
		ID: "o-2", Number: "R100",
		LineItems: []entity.LineItem{{ID: "l1", OrderID: "o-2", VariantID: "var-1", Quantity: 2}},
	}))
	o, err := orders.GetByID(ctx, "o-2")
	require.NoError(t, err)
	require.Len(t, o.LineItems, 1)

	byVariant, err := locations.ListByVariant(ctx, "var-1")
	require.NoError(t, err)
	require.Len(t, byVariant, 1)
	assert.Equal(t, 3, byVariant[0].CountAvailable("var-1"))
	assert.EqualValues(t, 1, byVariant[0].PublicMetadata["preference_priority"])

	missing, err := locations.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgres_BackorderPersisteUnidades(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	locations := postgres.NewStockLocationRepository(pool)
	items := postgres.NewStockItemRepository(pool)
	tx := postgres.NewTxRunner(pool)

	loc := inventory.NewStockLocation("Tienda", "")
	require.NoError(t, locations.Create(ctx, loc))
	si := inventory.NewStockItem("var-1", loc.ID, "SKU-1", true)
	require.NoError(t, items.Create(ctx, si))

	err := tx.Run(ctx, func(ctx context.Context, r appinv.TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, si.ID)
		if err != nil {
			return err
		}
		if err := item.Reserve(2, "o-1"); err != nil {
			return err
		}
		if _, err := item.AddBackorderedUnit("o-1", "l1", 2); err != nil {
			return err
		}
		return r.Items.Save(ctx, item)
	})
	require.NoError(t, err)

	got, err := items.GetByID(ctx, si.ID)
	require.NoError(t, err)
	require.Len(t, got.BackorderedUnits, 1)
	assert.Equal(t, 2, got.BackorderQuantity())

	// Reducir la reserva recorta la unidad pendiente.
	err = tx.Run(ctx, func(ctx context.Context, r appinv.TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, si.ID)
		if err != nil {
			return err
		}
		if err := item.Reserve(1, "o-1"); err != nil {
			return err
		}
		return r.Items.Save(ctx, item)
	})
	require.NoError(t, err)
	got, err = items.GetByID(ctx, si.ID)
	require.NoError(t, err)
	require.Len(t, got.BackorderedUnits, 1)
	assert.Equal(t, 1, got.BackorderedUnits[0].Quantity)

	err = tx.Run(ctx, func(ctx context.Context, r appinv.TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, si.ID)
		if err != nil {
			return err
		}
		if err := item.Adjust(5, inventory.OriginatorSupplier, "", ""); err != nil {
			return err
		}
		if err := r.Items.Save(ctx, item); err != nil {
			return err
		}
		return r.Movements.CreateBatch(ctx, item.PullMovements())
	})
	require.NoError(t, err)

	got, err = items.GetByID(ctx, si.ID)
	require.NoError(t, err)
	assert.Empty(t, got.BackorderedUnits, "las unidades llenas no se recargan")

	reserved, err := items.ListReservedForOrder(ctx, "o-1")
	require.NoError(t, err)
	require.Len(t, reserved, 1)
	q, _ := reserved[0].ReservedFor("o-1")
	assert.Equal(t, 1, q)
}

func TestPostgres_SecuenciaYTraslados(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	seq := postgres.NewSequence(pool)
	var wg sync.WaitGroup
	seen := make(chan int64, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := seq.Next(ctx, "k")
			assert.NoError(t, err)
			seen <- n
		}()
	}
	wg.Wait()
	close(seen)
	unique := map[int64]bool{}
	for n := range seen {
		unique[n] = true
	}
	assert.Len(t, unique, 20, "sin números repetidos entre conexiones")

	locations := postgres.NewStockLocationRepository(pool)
	src := inventory.NewStockLocation("Origen", "")
	dst := inventory.NewStockLocation("Destino", "")
	require.NoError(t, locations.Create(ctx, src))
	require.NoError(t, locations.Create(ctx, dst))
	si := inventory.NewStockItem("var-1", src.ID, "SKU-1", false)
	si.QuantityOnHand = 10
	require.NoError(t, postgres.NewStockItemRepository(pool).Create(ctx, si))

	variants := postgres.NewVariantRepository(pool)
	require.NoError(t, variants.Create(ctx, &entity.Variant{ID: "var-1", SKU: "SKU-1", Name: "Camiseta", TrackInventory: true}))

	numbers := inventory.NewNumberGenerator("T", seq)
	uc := appinv.NewTransferUseCase(postgres.NewTxRunner(pool), postgres.NewStockTransferRepository(pool),
		locations, postgres.NewStockMovementRepository(pool), variants, numbers, nopPublisher{}, logger.Nop())

	tr, err := uc.Create(ctx, dto.CreateStockTransferRequest{SourceLocationID: src.ID, DestinationLocationID: dst.ID})
	require.NoError(t, err)
	done, err := uc.Transfer(ctx, tr.ID, dto.ExecuteTransferRequest{Items: []dto.TransferLineRequest{{VariantID: "var-1", SKU: "SKU-1", Quantity: 4}}})
	require.NoError(t, err)
	assert.Equal(t, string(inventory.TransferStateFinalized), done.State)
	assert.Len(t, done.Movements, 2)

	moved, err := postgres.NewStockItemRepository(pool).GetByLocationAndVariant(ctx, dst.ID, "var-1")
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, 4, moved.QuantityOnHand)
}
