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

// MySQLIssuerRepository handles issuer persistence for MySQL.
type MySQLIssuerRepository struct {
	db *sql.DB
}

// NewMySQLIssuerRepository creates a new MySQLIssuerRepository.
func NewMySQLIssuerRepository(db *sql.DB) *MySQLIssuerRepository {
	return &MySQLIssuerRepository{db: db}
}

// Get retrieves an issuer entry.
func (r *MySQLIssuerRepository) Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT issuer, trusted, metadata_ref, updated_at FROM issuers WHERE issuer = ?`

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
func (r *MySQLIssuerRepository) Upsert(ctx context.Context, entry *domain.Issuer) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO issuers (issuer, trusted, metadata_ref, updated_at)
			  VALUES (?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  trusted = VALUES(trusted), metadata_ref = VALUES(metadata_ref), updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(ctx, query, entry.Issuer, entry.Trusted, entry.MetadataRef, entry.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert issuer")
	}
	return nil
}
