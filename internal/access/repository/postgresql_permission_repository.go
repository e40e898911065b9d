// Package repository provides data persistence implementations for access permissions.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
)

// PostgreSQLPermissionRepository handles permission persistence for PostgreSQL.
type PostgreSQLPermissionRepository struct {
	db *sql.DB
}

// NewPostgreSQLPermissionRepository creates a new PostgreSQLPermissionRepository.
func NewPostgreSQLPermissionRepository(db *sql.DB) *PostgreSQLPermissionRepository {
	return &PostgreSQLPermissionRepository{db: db}
}

// Get retrieves the permission stored for key.
func (r *PostgreSQLPermissionRepository) Get(ctx context.Context, key domain.Key) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT granted, expiry, consent_ref, updated_at
			  FROM permissions WHERE subject = $1 AND grantee = $2 AND attribute = $3`

	permission := domain.Permission{Key: key}
	err := querier.QueryRowContext(ctx, query, key.Subject, key.Grantee, key.Attribute).
		Scan(&permission.Granted, &permission.Expiry, &permission.ConsentRef, &permission.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission")
	}
	return &permission, nil
}

// Upsert overwrites the permission stored for its key.
func (r *PostgreSQLPermissionRepository) Upsert(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (subject, grantee, attribute, granted, expiry, consent_ref, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (subject, grantee, attribute) DO UPDATE
			  SET granted = EXCLUDED.granted, expiry = EXCLUDED.expiry,
			      consent_ref = EXCLUDED.consent_ref, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		permission.Subject,
		permission.Grantee,
		permission.Attribute,
		permission.Granted,
		permission.Expiry,
		permission.ConsentRef,
		permission.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert permission")
	}
	return nil
}
