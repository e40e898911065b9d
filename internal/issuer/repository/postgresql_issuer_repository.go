// Package repository provides data persistence implementations for the issuer trust list.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/issuer/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// PostgreSQLIssuerRepository handles issuer persistence for PostgreSQL.
type PostgreSQLIssuerRepository struct {
	db *sql.DB
}

// NewPostgreSQLIssuerRepository creates a new PostgreSQLIssuerRepository.
func NewPostgreSQLIssuerRepository(db *sql.DB) *PostgreSQLIssuerRepository {
	return &PostgreSQLIssuerRepository{db: db}
}

// Get retrieves an issuer entry.
func (r *PostgreSQLIssuerRepository) Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT issuer, trusted, metadata_ref, updated_at FROM issuers WHERE issuer = $1`

	var entry domain.Issuer
	err := querier.QueryRowContext(ctx, query, issuer).
		Scan(&entry.Issuer, &entry.Trusted, &entry.MetadataRef, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIssuerNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get issuer")
	}
	return &entry, nil
}

// Upsert inserts or overwrites an issuer entry.
func (r *PostgreSQLIssuerRepository) Upsert(ctx context.Context, entry *domain.Issuer) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO issuers (issuer, trusted, metadata_ref, updated_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (issuer) DO UPDATE
			  SET trusted = EXCLUDED.trusted, metadata_ref = EXCLUDED.metadata_ref, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(ctx, query, entry.Issuer, entry.Trusted, entry.MetadataRef, entry.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert issuer")
	}
	return nil
}
