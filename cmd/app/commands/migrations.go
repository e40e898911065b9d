package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/trustregistry/internal/config"
)

// RunMigrations applies every pending migration of the driver's dialect.
// postgres and pgx share the PostgreSQL migrations. The memory driver keeps no
// schema and is rejected.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations",
		slog.String("driver", driver),
	)

	var migrationsPath, databaseURL string
	switch driver {
	case config.DriverPostgres, config.DriverPgx:
		migrationsPath = "file://migrations/postgresql"
		databaseURL = connectionString
	case config.DriverMySQL:
		migrationsPath = "file://migrations/mysql"
		databaseURL = connectionString
		if !strings.HasPrefix(databaseURL, "mysql://") {
			databaseURL = "mysql://" + databaseURL
		}
	case config.DriverMemory:
		return fmt.Errorf("failed to create migrate instance: the memory driver has no schema")
	default:
		return fmt.Errorf("failed to create migrate instance: unsupported driver %q", driver)
	}

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
