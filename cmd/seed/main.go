// seed carga ubicaciones, variantes, stock y pedidos de ejemplo en PostgreSQL
// a partir de un archivo YAML (ver seeds/demo.yaml).
//
// Uso: go run ./cmd/seed [ruta/seed.yaml]
// Por defecto usa seeds/demo.yaml. Requiere la base migrada y vacía.
package main

import (
	"context"
	"fmt"
	"os"

	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/messaging"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/seed"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

func main() {
	path := "seeds/demo.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	file, err := seed.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer seed: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tx := postgres.NewTxRunner(pool)
	sum, err := seed.Apply(ctx, file, seed.Deps{
		Locations: appinv.NewLocationUseCase(postgres.NewStockLocationRepository(pool)),
		Stock: appinv.NewStockUseCase(tx,
			postgres.NewStockItemRepository(pool),
			postgres.NewStockMovementRepository(pool),
			postgres.NewVariantRepository(pool),
			messaging.NewLogPublisher(log), log),
		Variants: postgres.NewVariantRepository(pool),
		Orders:   postgres.NewOrderRepository(pool),
		Log:      log,
	})
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("seed incompleto")
		pool.Close()
		os.Exit(1)
	}
	fmt.Printf("Seed %s: %d ubicaciones, %d variantes, %d stock items, %d pedidos\n",
		path, sum.Locations, sum.Variants, sum.StockItems, sum.Orders)
}
