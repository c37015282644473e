package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// Migrator aplica las migraciones SQL de migrations/ con golang-migrate (driver pgx5).
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// NewMigrator crea el migrador. databaseURL usa el esquema pgx5:// (config.DBConfig.MigrateURL).
func NewMigrator(databaseURL, migrationsDir string, log *logger.Logger) (*Migrator, error) {
	m, err := migrate.New("file://"+migrationsDir, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("crear migrador: %w", err)
	}
	return &Migrator{m: m, log: log.Component("migrate")}, nil
}

// Up aplica todas las migraciones pendientes.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Msg("sin migraciones pendientes")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	return m.logVersion("migraciones aplicadas")
}

// Down revierte todas las migraciones.
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Msg("sin migraciones para revertir")
			return nil
		}
		return fmt.Errorf("migrate down: %w", err)
	}
	m.log.Info().Msg("migraciones revertidas")
	return nil
}

// Steps aplica n migraciones (positivo sube, negativo baja).
func (m *Migrator) Steps(n int) error {
	if err := m.m.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate steps %d: %w", n, err)
	}
	return m.logVersion("pasos aplicados")
}

// Version versión actual; 0 si la base no tiene migraciones.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("versión de migración: %w", err)
	}
	return version, dirty, nil
}

// Close libera la fuente y la conexión del migrador.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return multierr.Combine(srcErr, dbErr)
}

func (m *Migrator) logVersion(msg string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.log.Info().Uint("version", version).Bool("dirty", dirty).Msg(msg)
	return nil
}
