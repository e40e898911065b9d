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

// MySQLIdentifierRepository handles identifier persistence for MySQL.
type MySQLIdentifierRepository struct {
	db *sql.DB
}

// NewMySQLIdentifierRepository creates a new MySQLIdentifierRepository.
func NewMySQLIdentifierRepository(db *sql.DB) *MySQLIdentifierRepository {
	return &MySQLIdentifierRepository{db: db}
}

// Create inserts a new identifier record.
func (r *MySQLIdentifierRepository) Create(ctx context.Context, record *domain.Record) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identifiers (id_hash, identifier, controller, registrant, document_ref, public_key, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

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
func (r *MySQLIdentifierRepository) Get(ctx context.Context, idHash hash.Hash) (*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id_hash, identifier, controller, registrant, document_ref, public_key, updated_at
			  FROM identifiers WHERE id_hash = ?` + database.ForUpdate(ctx)

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
func (r *MySQLIdentifierRepository) Update(ctx context.Context, record *domain.Record) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identifiers SET controller = ?, document_ref = ?, public_key = ?, updated_at = ?
			  WHERE id_hash = ?`

	// MySQL reports zero affected rows for an update that changes nothing, so
	// existence is established by the caller's locked Get instead.
	_, err := querier.ExecContext(
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
	return nil
}

// ListByRegistrant returns the records registered by registrant in registration order.
func (r *MySQLIdentifierRepository) ListByRegistrant(
	ctx context.Context,
	registrant principal.Principal,
	offset, limit int,
) ([]*domain.Record, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id_hash, identifier, controller, registrant, document_ref, public_key, updated_at
			  FROM identifiers WHERE registrant = ? ORDER BY created_seq ASC LIMIT ? OFFSET ?`

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
func (r *MySQLIdentifierRepository) GetRecoveryManager(ctx context.Context) (principal.Principal, error) {
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
func (r *MySQLIdentifierRepository) SetRecoveryManager(
	ctx context.Context,
	manager principal.Principal,
	updatedAt int64,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identifier_settings (id, recovery_manager, updated_at) VALUES (1, ?, ?)
			  ON DUPLICATE KEY UPDATE recovery_manager = VALUES(recovery_manager), updated_at = VALUES(updated_at)`

	if _, err := querier.ExecContext(ctx, query, manager, updatedAt); err != nil {
		return apperrors.Wrap(err, "failed to set recovery manager")
	}
	return nil
}
