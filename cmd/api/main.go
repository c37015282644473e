package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	appful "github.com/jhoicas/fulfillment-api/internal/application/fulfillment"
	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain/fulfillment"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/memory"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/messaging"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/redis"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/fulfillment-api/internal/interfaces/http"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// storage repositorios y transacciones del backend elegido.
type storage struct {
	tx        appinv.TxRunner
	locations repository.StockLocationRepository
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	transfers repository.StockTransferRepository
	variants  repository.VariantRepository
	orders    repository.OrderRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Str("sequence", cfg.Sequence.Backend).
		Str("events", cfg.Events.Publisher).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Almacenamiento
	var (
		store storage
		seq   inventory.SequenceGenerator
	)
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		mem := memory.NewStore()
		store = storage{
			tx:        memory.NewTxRunner(mem),
			locations: mem.Locations(),
			items:     mem.Items(),
			movements: mem.Movements(),
			transfers: mem.Transfers(),
			variants:  mem.Variants(),
			orders:    mem.Orders(),
		}
		seq = memory.NewSequence()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		closers = append(closers, pool.Close)
		store = storage{
			tx:        postgres.NewTxRunner(pool),
			locations: postgres.NewStockLocationRepository(pool),
			items:     postgres.NewStockItemRepository(pool),
			movements: postgres.NewStockMovementRepository(pool),
			transfers: postgres.NewStockTransferRepository(pool),
			variants:  postgres.NewVariantRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
		}
		if cfg.Sequence.Backend == config.BackendPostgres {
			seq = postgres.NewSequence(pool)
		}
	}

	// Contador de números de traslado
	if cfg.Sequence.Backend == config.BackendRedis {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		closers = append(closers, func() { _ = client.Close() })
		seq = redis.NewSequence(client)
	} else if seq == nil {
		seq = memory.NewSequence()
	}

	// Eventos de dominio
	var publisher ports.EventPublisher
	switch cfg.Events.Publisher {
	case config.PublisherKafka:
		kp := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka), log)
		closers = append(closers, func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor Kafka")
			}
		})
		publisher = kp
	case config.PublisherNone:
		publisher = messaging.NopPublisher{}
	default:
		publisher = messaging.NewLogPublisher(log)
	}

	locationUC := appinv.NewLocationUseCase(store.locations)
	stockUC := appinv.NewStockUseCase(store.tx, store.items, store.movements, store.variants, publisher, log)
	reservationUC := appinv.NewReservationUseCase(store.tx, store.orders, publisher, log)
	transferUC := appinv.NewTransferUseCase(
		store.tx, store.transfers, store.locations, store.movements, store.variants,
		inventory.NewNumberGenerator(cfg.Sequence.TransferPrefix, seq),
		publisher, log,
	)

	registry := fulfillment.NewDefaultRegistry(fulfillment.CostModel{
		BaseCost:           decimal.NewFromFloat(cfg.Fulfillment.CostBase),
		HandlingPerUnit:    decimal.NewFromFloat(cfg.Fulfillment.HandlingPerUnit),
		ShippingPerKm:      decimal.NewFromFloat(cfg.Fulfillment.ShippingPerKm),
		FallbackDistanceKm: decimal.NewFromFloat(cfg.Fulfillment.FallbackDistanceKm),
	})
	planner := appful.NewPlanner(registry, store.variants, store.locations, store.orders, appful.Options{
		DefaultStrategy: cfg.Fulfillment.DefaultStrategy,
		MaxLocations:    cfg.Fulfillment.MaxLocations,
	}, log)

	if cfg.Storage.SeedFile != "" {
		file, err := seed.ReadFile(cfg.Storage.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("leer seed")
		}
		if _, err := seed.Apply(ctx, file, seed.Deps{
			Locations: locationUC,
			Stock:     stockUC,
			Variants:  store.variants,
			Orders:    store.orders,
			Log:       log,
		}); err != nil {
			log.Fatal().Err(err).Str("file", cfg.Storage.SeedFile).Msg("aplicar seed")
		}
	}

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:        cfg.App.Name,
		DocsEnabled: cfg.HTTP.DocsEnabled,
		DocsFile:    cfg.HTTP.DocsFile,
		Log:         log,
	}, httpRouter.RouterDeps{
		LocationUC:    locationUC,
		StockUC:       stockUC,
		ReservationUC: reservationUC,
		TransferUC:    transferUC,
		Planner:       planner,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
