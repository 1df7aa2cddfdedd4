package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"fintrack/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations brings the ledger schema at dbPath up to the newest embedded
// version. A schema left dirty by a failed run is reported, not repaired.
func RunMigrations(ctx context.Context, dbPath string) error {
	logger := log.FromContext(ctx).WithComponent(log.ComponentStorage)

	// Own connection: closing the migrator closes it too
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer db.Close()

	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer m.Close()

	from, err := schemaVersion(m)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.DebugContext(ctx, "Ledger schema up to date", log.FieldOperation, log.OpMigrate, "version", from)
			return nil
		}
		return fmt.Errorf("migrate ledger schema from version %d: %w", from, err)
	}

	to, err := schemaVersion(m)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Ledger schema migrated",
		log.FieldOperation, log.OpMigrate,
		"from_version", from,
		"to_version", to)
	return nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// schemaVersion returns the applied version, 0 for a fresh database.
func schemaVersion(m *migrate.Migrate) (uint, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return v, fmt.Errorf("ledger schema version %d is dirty", v)
	}
	return v, nil
}
