package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/ownership/domain"
)

// MySQLOwnershipRepository handles ownership persistence for MySQL.
type MySQLOwnershipRepository struct {
	db *sql.DB
}

// NewMySQLOwnershipRepository creates a new MySQLOwnershipRepository.
func NewMySQLOwnershipRepository(db *sql.DB) *MySQLOwnershipRepository {
	return &MySQLOwnershipRepository{db: db}
}

// Get retrieves the owner of a registry.
func (r *MySQLOwnershipRepository) Get(
	ctx context.Context,
	registry domain.Registry,
) (*domain.Ownership, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT registry, owner, updated_at FROM registry_owners WHERE registry = ?` + database.ForUpdate(ctx)

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
func (r *MySQLOwnershipRepository) Create(ctx context.Context, ownership *domain.Ownership) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO registry_owners (registry, owner, updated_at) VALUES (?, ?, ?)`

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
func (r *MySQLOwnershipRepository) Update(ctx context.Context, ownership *domain.Ownership) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE registry_owners SET owner = ?, updated_at = ? WHERE registry = ?`

	_, err := querier.ExecContext(ctx, query, ownership.Owner, ownership.UpdatedAt, ownership.Registry)
	if err != nil {
		return apperrors.Wrap(err, "failed to update registry owner")
	}
	return nil
}
