package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
)

// MySQLPermissionRepository handles permission persistence for MySQL.
type MySQLPermissionRepository struct {
	db *sql.DB
}

// NewMySQLPermissionRepository creates a new MySQLPermissionRepository.
func NewMySQLPermissionRepository(db *sql.DB) *MySQLPermissionRepository {
	return &MySQLPermissionRepository{db: db}
}

// Get retrieves the permission stored for key.
func (r *MySQLPermissionRepository) Get(ctx context.Context, key domain.Key) (*domain.Permission, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT granted, expiry, consent_ref, updated_at
			  FROM permissions WHERE subject = ? AND grantee = ? AND attribute = ?`

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
func (r *MySQLPermissionRepository) Upsert(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (subject, grantee, attribute, granted, expiry, consent_ref, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  granted = VALUES(granted), expiry = VALUES(expiry),
			  consent_ref = VALUES(consent_ref), updated_at = VALUES(updated_at)`

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
