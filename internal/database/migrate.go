package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/at-ishikawa/nounquiz/internal/config"
)

// MigrationURL returns the golang-migrate database URL for the configured driver.
func MigrationURL(cfg config.DatabaseConfig) (string, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return "", err
	}

	switch cfg.Driver {
	case DriverMySQL, "":
		return "mysql://" + dsn, nil
	case DriverSQLite:
		return "sqlite://" + dsn, nil
	case DriverPgx:
		return "pgx5://" + strings.TrimPrefix(dsn, "postgres://"), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Migrate applies the up migrations under migrations/ that the database has
// not recorded yet. An up-to-date database is not an error.
func Migrate(cfg config.DatabaseConfig, migrations fs.FS) error {
	databaseURL, err := MigrationURL(cfg)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("iofs.New() > %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("migrate.NewWithSourceInstance() > %w", err)
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			slog.Default().Warn("failed to close the migration", "source_error", sourceErr, "database_error", dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up() > %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("m.Version() > %w", err)
	}
	slog.Default().Debug("database migrated", "driver", cfg.Driver, "version", version, "dirty", dirty)
	return nil
}
