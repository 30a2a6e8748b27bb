// Package migrations holds the embedded SQLite schema of the habits store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/slok/habits/internal/log"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// DefaultVersionTable is the table that tracks the applied schema version.
const DefaultVersionTable = "habits_schema_version"

// MigratorConfig is the configuration of the schema migrator.
type MigratorConfig struct {
	DB           *sql.DB
	VersionTable string
	Logger       log.Logger
}

func (c *MigratorConfig) defaults() error {
	if c.DB == nil {
		return fmt.Errorf("db is required")
	}

	if c.VersionTable == "" {
		c.VersionTable = DefaultVersionTable
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLiteMigrator"})

	return nil
}

// Migrator applies the embedded schema to a database.
type Migrator struct {
	db           *sql.DB
	versionTable string
	logger       log.Logger
}

// NewMigrator returns a new schema migrator.
func NewMigrator(cfg MigratorConfig) (*Migrator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Migrator{
		db:           cfg.DB,
		versionTable: cfg.VersionTable,
		logger:       cfg.Logger,
	}, nil
}

// Up applies the pending migrations and returns the resulting schema version.
func (m *Migrator) Up(ctx context.Context) (uint, error) {
	var version uint
	err := m.with(ctx, func(inst *migrate.Migrate) error {
		err := inst.Up()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not apply schema: %w", err)
		}

		version, err = currentVersion(inst)
		return err
	})
	if err != nil {
		return 0, err
	}

	m.logger.Debugf("Schema at version %d", version)
	return version, nil
}

// Down reverts every migration, leaving an empty schema.
func (m *Migrator) Down(ctx context.Context) error {
	err := m.with(ctx, func(inst *migrate.Migrate) error {
		err := inst.Down()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("could not revert schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debugf("Schema reverted")
	return nil
}

// Version returns the applied schema version, 0 when nothing was applied.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	var version uint
	err := m.with(ctx, func(inst *migrate.Migrate) (err error) {
		version, err = currentVersion(inst)
		return err
	})
	return version, err
}

func currentVersion(inst *migrate.Migrate) (uint, error) {
	version, dirty, err := inst.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not get schema version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}

// with runs fn with a migrate instance over the embedded schema. The instance
// is not closed, closing it would close the shared database.
func (m *Migrator) with(ctx context.Context, fn func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{MigrationsTable: m.versionTable})
	if err != nil {
		return fmt.Errorf("could not create driver: %w", err)
	}

	src, err := iofs.New(schemaFiles, "sql")
	if err != nil {
		return fmt.Errorf("could not load schema files: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			m.logger.Errorf("Could not close schema files: %s", err)
		}
	}()

	inst, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	return fn(inst)
}
