// Package app provides the dependency injection container that assembles the registries.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/config"
	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/http"
)

// lazy initializes a component on first use and remembers the result, error included.
type lazy[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (l *lazy[T]) get(init func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.value, l.err = init()
	})
	return l.value, l.err
}

// Container holds all application dependencies. Components are created on first
// access and shared afterwards; in particular every registry shares one
// TxManager, which is what lets recovery execution and controller transfer
// commit as a single transition.
type Container struct {
	config *config.Config

	// Infrastructure
	loggerInit sync.Once
	logger     *slog.Logger
	db         lazy[*sql.DB]
	memory     lazy[*database.MemoryTxManager]
	txManager  lazy[database.TxManager]
	clock      lazy[clock.Clock]
	redis      lazy[*redis.Client]

	metricsComponents
	eventComponents
	registryComponents
	authComponents

	// Servers
	httpServer    lazy[*http.Server]
	metricsServer lazy[*http.MetricsServer]
	serverCancel  context.CancelFunc

	mu sync.Mutex
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{config: cfg}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the SQL connection. It fails for the memory driver.
func (c *Container) DB() (*sql.DB, error) {
	return c.db.get(c.initDB)
}

// MemoryStore returns the transaction manager the in-memory repositories share.
func (c *Container) MemoryStore() (*database.MemoryTxManager, error) {
	return c.memory.get(func() (*database.MemoryTxManager, error) {
		if c.config.DBDriver != config.DriverMemory {
			return nil, fmt.Errorf("memory store requested with driver %q", c.config.DBDriver)
		}
		return database.NewMemoryTxManager(), nil
	})
}

// TxManager returns the transaction manager of the configured backend.
func (c *Container) TxManager() (database.TxManager, error) {
	return c.txManager.get(c.initTxManager)
}

// HealthChecker returns what the readiness endpoint pings.
func (c *Container) HealthChecker() (http.HealthChecker, error) {
	if c.config.DBDriver == config.DriverMemory {
		return c.MemoryStore()
	}
	return c.DB()
}

// Clock returns the monotonic system clock used to stamp records.
func (c *Container) Clock() clock.Clock {
	value, _ := c.clock.get(func() (clock.Clock, error) {
		return clock.NewSystemClock(), nil
	})
	return value
}

// Shutdown stops background work and closes every initialized resource.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.serverCancel != nil {
		c.serverCancel()
	}

	if server := c.httpServer.value; server != nil {
		if err := server.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if server := c.metricsServer.value; server != nil {
		if err := server.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if publisher := c.eventPublisher.value; publisher != nil {
		if err := publisher.Close(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("event publisher close: %w", err))
		}
	}

	if provider := c.metricsProvider.value; provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if client := c.redis.value; client != nil {
		if err := client.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}

	if db := c.db.value; db != nil {
		if err := db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	switch c.config.DBDriver {
	case config.DriverPostgres, config.DriverPgx, config.DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}

	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	if c.config.DBDriver == config.DriverMemory {
		return c.MemoryStore()
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// selectRepository builds the repository matching DB_DRIVER. postgres and pgx
// share the PostgreSQL SQL dialect.
func selectRepository[T any](
	c *Container,
	memory func(*database.MemoryTxManager) T,
	postgres func(*sql.DB) T,
	mysql func(*sql.DB) T,
) (T, error) {
	var zero T

	if c.config.DBDriver == config.DriverMemory {
		store, err := c.MemoryStore()
		if err != nil {
			return zero, err
		}
		return memory(store), nil
	}

	db, err := c.DB()
	if err != nil {
		return zero, err
	}

	switch c.config.DBDriver {
	case config.DriverPostgres, config.DriverPgx:
		return postgres(db), nil
	case config.DriverMySQL:
		return mysql(db), nil
	default:
		return zero, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
