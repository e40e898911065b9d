// Package repository provides data persistence implementations for registry ownership.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/ownership/domain"
)

// PostgreSQLOwnershipRepository handles ownership persistence for PostgreSQL.
type PostgreSQLOwnershipRepository struct {
	db *sql.DB
}

// NewPostgreSQLOwnershipRepository creates a new PostgreSQLOwnershipRepository.
func NewPostgreSQLOwnershipRepository(db *sql.DB) *PostgreSQLOwnershipRepository {
	return &PostgreSQLOwnershipRepository{db: db}
}

// Get retrieves the owner of a registry.
func (r *PostgreSQLOwnershipRepository) Get(
	ctx context.Context,
	registry domain.Registry,
) (*domain.Ownership, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT registry, owner, updated_at FROM registry_owners WHERE registry = $1` + database.ForUpdate(ctx)

	var ownership domain.Ownership
	err := querier.QueryRowContext(ctx, query, registry).
		Scan(&ownership.Registry, &ownership.Owner, &ownership.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOwnershipNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get registry owner")
	}
	return &ownership, nil
}

// Create inserts the first owner of a registry.
func (r *PostgreSQLOwnershipRepository) Create(ctx context.Context, ownership *domain.Ownership) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO registry_owners (registry, owner, updated_at) VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, ownership.Registry, ownership.Owner, ownership.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "registry owner already recorded")
		}
		return apperrors.Wrap(err, "failed to create registry owner")
	}
	return nil
}

// Update replaces the owner of a registry.
func (r *PostgreSQLOwnershipRepository) Update(ctx context.Context, ownership *domain.Ownership) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE registry_owners SET owner = $1, updated_at = $2 WHERE registry = $3`

	_, err := querier.ExecContext(ctx, query, ownership.Owner, ownership.UpdatedAt, ownership.Registry)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registry owner")
	}
	return nil
}
