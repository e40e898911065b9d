// Package repository provides data persistence implementations for identifier records.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// PostgreSQLIdentifierRepository handles identifier persistence for PostgreSQL.
type PostgreSQLIdentifierRepository struct {
	db *sql.DB
}

// NewPostgreSQLIdentifierRepository creates a new PostgreSQLIdentifierRepository.
func NewPostgreSQLIdentifierRepository(db *sql.DB) *PostgreSQLIdentifierRepository {
	return &PostgreSQLIdentifierRepository{db: db}
}

// Create inserts a new identifier record.
func (r *PostgreSQLIdentifierRepository) Create(ctx context.Context, record *domain.Record) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identifiers (id_hash, identifier, controller, registrant, document_ref, public_key, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.IDHash,
		record.ID,
		record.Controller,
		record.Registrant,
		record.DocumentRef,
		record.PublicKey,
		record.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return apperrors.Wrap(err, "failed to create identifier")
	}
	return nil
}

// Get retrieves an identifier record by hash.
func (r *PostgreSQLIdentifierRepository) Get(ctx context.Context, idHash hash.Hash) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id_hash, identifier, controller, registrant, document_ref, public_key, updated_at
			  FROM identifiers WHERE id_hash = $1` + database.ForUpdate(ctx)

	var record domain.Record
	err := querier.QueryRowContext(ctx, query, idHash).Scan(
		&record.IDHash,
		&record.ID,
		&record.Controller,
		&record.Registrant,
		&record.DocumentRef,
		&record.PublicKey,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnknownIdentifier
		}
		return nil, apperrors.Wrap(err, "failed to get identifier")
	}
	return &record, nil
}

// Update overwrites the mutable fields of an identifier record.
func (r *PostgreSQLIdentifierRepository) Update(ctx context.Context, record *domain.Record) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identifiers SET controller = $1, document_ref = $2, public_key = $3, updated_at = $4
			  WHERE id_hash = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Controller,
		record.DocumentRef,
		record.PublicKey,
		record.UpdatedAt,
		record.IDHash,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update identifier")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrUnknownIdentifier
	}
	return nil
}

// ListByRegistrant returns the records registered by registrant in registration order.
func (r *PostgreSQLIdentifierRepository) ListByRegistrant(
	ctx context.Context,
	registrant principal.Principal,
	offset, limit int,
) ([]*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id_hash, identifier, controller, registrant, document_ref, public_key, updated_at
			  FROM identifiers WHERE registrant = $1 ORDER BY created_seq ASC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, registrant, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list identifiers")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecords(rows)
}

// GetRecoveryManager returns the configured recovery manager.
func (r *PostgreSQLIdentifierRepository) GetRecoveryManager(ctx context.Context) (principal.Principal, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT recovery_manager FROM identifier_settings WHERE id = 1` + database.ForUpdate(ctx)

	var manager principal.Principal
	err := querier.QueryRowContext(ctx, query).Scan(&manager)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return principal.Zero, nil
		}
		return principal.Zero, apperrors.Wrap(err, "failed to get recovery manager")
	}
	return manager, nil
}

// SetRecoveryManager stores the recovery manager.
func (r *PostgreSQLIdentifierRepository) SetRecoveryManager(
	ctx context.Context,
	manager principal.Principal,
	updatedAt int64,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identifier_settings (id, recovery_manager, updated_at) VALUES (1, $1, $2)
			  ON CONFLICT (id) DO UPDATE
			  SET recovery_manager = EXCLUDED.recovery_manager, updated_at = EXCLUDED.updated_at`

	if _, err := querier.ExecContext(ctx, query, manager, updatedAt); err != nil {
		return apperrors.Wrap(err, "failed to set recovery manager")
	}
	return nil
}
