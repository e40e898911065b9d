// Package repository provides data persistence implementations for the directory.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/directory/domain"
	apperrors "github.com/allisson/trustregistry/internal/errors"
)

// PostgreSQLDirectoryRepository handles directory persistence for PostgreSQL.
type PostgreSQLDirectoryRepository struct {
	db *sql.DB
}

// NewPostgreSQLDirectoryRepository creates a new PostgreSQLDirectoryRepository.
func NewPostgreSQLDirectoryRepository(db *sql.DB) *PostgreSQLDirectoryRepository {
	return &PostgreSQLDirectoryRepository{db: db}
}

// Get retrieves the singleton directory row.
func (r *PostgreSQLDirectoryRepository) Get(ctx context.Context) (*domain.Addresses, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT identifier_registry, access_control, recovery, revocation, issuer_registry, updated_at
			  FROM directory WHERE id = 1`

	var addresses domain.Addresses
	err := querier.QueryRowContext(ctx, query).Scan(
		&addresses.IdentifierRegistry,
		&addresses.AccessControl,
		&addresses.Recovery,
		&addresses.Revocation,
		&addresses.IssuerRegistry,
		&addresses.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDirectoryNotSet
		}
		return nil, apperrors.Wrap(err, "failed to get directory")
	}
	return &addresses, nil
}

// Upsert overwrites the singleton directory row.
func (r *PostgreSQLDirectoryRepository) Upsert(ctx context.Context, addresses *domain.Addresses) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO directory (id, identifier_registry, access_control, recovery, revocation, issuer_registry, updated_at)
			  VALUES (1, $1, $2, $3, $4, $5, $6)
			  ON CONFLICT (id) DO UPDATE SET
			      identifier_registry = EXCLUDED.identifier_registry,
			      access_control = EXCLUDED.access_control,
			      recovery = EXCLUDED.recovery,
			      revocation = EXCLUDED.revocation,
			      issuer_registry = EXCLUDED.issuer_registry,
			      updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		addresses.IdentifierRegistry,
		addresses.AccessControl,
		addresses.Recovery,
		addresses.Revocation,
		addresses.IssuerRegistry,
		addresses.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert directory")
	}
	return nil
}
