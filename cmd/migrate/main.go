// migrate aplica o revierte las migraciones SQL de la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|version|steps N]
// Sin argumentos ejecuta up. La conexión sale de DATABASE_URL o DB_*.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/fulfillment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := postgres.NewMigrator(cfg.DB.MigrateURL(), cfg.DB.MigrationsDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("crear migrador")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar migrador")
		}
	}()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(os.Args) < 3 {
			err = fmt.Errorf("steps requiere un número")
			break
		}
		var n int
		if n, err = strconv.Atoi(os.Args[2]); err == nil {
			err = m.Steps(n)
		}
	case "version":
		var (
			version uint
			dirty   bool
		)
		if version, dirty, err = m.Version(); err == nil {
			fmt.Printf("versión %d (dirty=%t)\n", version, dirty)
		}
	default:
		err = fmt.Errorf("comando desconocido %q: use up, down, steps N o version", cmd)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
}
