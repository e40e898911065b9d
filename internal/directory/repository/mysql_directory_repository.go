package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/directory/domain"
	apperrors "github.com/allisson/trustregistry/internal/errors"
)

// MySQLDirectoryRepository handles directory persistence for MySQL.
type MySQLDirectoryRepository struct {
	db *sql.DB
}

// NewMySQLDirectoryRepository creates a new MySQLDirectoryRepository.
func NewMySQLDirectoryRepository(db *sql.DB) *MySQLDirectoryRepository {
	return &MySQLDirectoryRepository{db: db}
}

// Get retrieves the singleton directory row.
func (r *MySQLDirectoryRepository) Get(ctx context.Context) (*domain.Addresses, error) {
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
func (r *MySQLDirectoryRepository) Upsert(ctx context.Context, addresses *domain.Addresses) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO directory (id, identifier_registry, access_control, recovery, revocation, issuer_registry, updated_at)
			  VALUES (1, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			      identifier_registry = VALUES(identifier_registry),
			      access_control = VALUES(access_control),
			      recovery = VALUES(recovery),
			      revocation = VALUES(revocation),
			      issuer_registry = VALUES(issuer_registry),
			      updated_at = VALUES(updated_at)`

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
