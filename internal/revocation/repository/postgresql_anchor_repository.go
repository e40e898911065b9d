// Package repository provides data persistence implementations for credential anchors.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/revocation/domain"
)

// PostgreSQLAnchorRepository handles credential anchor persistence for PostgreSQL.
type PostgreSQLAnchorRepository struct {
	db *sql.DB
}

// NewPostgreSQLAnchorRepository creates a new PostgreSQLAnchorRepository.
func NewPostgreSQLAnchorRepository(db *sql.DB) *PostgreSQLAnchorRepository {
	return &PostgreSQLAnchorRepository{db: db}
}

// Create inserts a new credential anchor.
func (r *PostgreSQLAnchorRepository) Create(ctx context.Context, anchor *domain.Anchor) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO credential_anchors (hash, issuer, content_ref, revoked, anchored_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		anchor.Hash,
		anchor.Issuer,
		anchor.ContentRef,
		anchor.Revoked,
		anchor.AnchoredAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrAlreadyAnchored
		}
		return apperrors.Wrap(err, "failed to create credential anchor")
	}
	return nil
}

// Get retrieves a credential anchor by hash.
func (r *PostgreSQLAnchorRepository) Get(ctx context.Context, h hash.Hash) (*domain.Anchor, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT hash, issuer, content_ref, revoked, anchored_at
			  FROM credential_anchors WHERE hash = $1` + database.ForUpdate(ctx)

	var anchor domain.Anchor
	err := querier.QueryRowContext(ctx, query, h).Scan(
		&anchor.Hash,
		&anchor.Issuer,
		&anchor.ContentRef,
		&anchor.Revoked,
		&anchor.AnchoredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotAnchored
		}
		return nil, apperrors.Wrap(err, "failed to get credential anchor")
	}
	return &anchor, nil
}

// MarkRevoked sets the revoked flag of an anchor.
func (r *PostgreSQLAnchorRepository) MarkRevoked(ctx context.Context, h hash.Hash) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE credential_anchors SET revoked = TRUE WHERE hash = $1`

	result, err := querier.ExecContext(ctx, query, h)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke credential anchor")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrNotAnchored
	}
	return nil
}
