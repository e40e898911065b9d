// Package database provides database connection management and utilities.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	apperrors "github.com/allisson/trustregistry/internal/errors"
)

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect establishes a database connection with the given configuration.
// Driver is a database/sql driver name: "postgres" (lib/pq), "pgx" or "mysql".
func Connect(cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// IsUniqueViolation reports whether err is a primary key or unique constraint
// violation raised by one of the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if apperrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var pgErr *pgconn.PgError
	if apperrors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var mysqlErr *mysql.MySQLError
	if apperrors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}

	return false
}
