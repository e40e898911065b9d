package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
)

// MySQLGuardianRepository handles guardian set persistence for MySQL.
type MySQLGuardianRepository struct {
	db *sql.DB
}

// NewMySQLGuardianRepository creates a new MySQLGuardianRepository.
func NewMySQLGuardianRepository(db *sql.DB) *MySQLGuardianRepository {
	return &MySQLGuardianRepository{db: db}
}

// GetSet retrieves the guardian set of owner with its ordered guardian list.
func (r *MySQLGuardianRepository) GetSet(
	ctx context.Context,
	owner principal.Principal,
) (*domain.GuardianSet, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT owner, threshold, epoch, approvals_count, updated_at
			  FROM guardian_sets WHERE owner = ?` + database.ForUpdate(ctx)

	var set domain.GuardianSet
	err := querier.QueryRowContext(ctx, query, owner).Scan(
		&set.Owner,
		&set.Threshold,
		&set.Epoch,
		&set.ApprovalsCount,
		&set.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGuardiansNotSet
		}
		return nil, apperrors.Wrap(err, "failed to get guardian set")
	}

	guardians, err := queryGuardians(
		ctx,
		querier,
		`SELECT guardian FROM guardians WHERE owner = ? ORDER BY position ASC`,
		owner,
	)
	if err != nil {
		return nil, err
	}
	set.Guardians = guardians

	return &set, nil
}

// SaveSet upserts the guardian set row and replaces its guardian list.
func (r *MySQLGuardianRepository) SaveSet(ctx context.Context, set *domain.GuardianSet) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO guardian_sets (owner, threshold, epoch, approvals_count, updated_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			      threshold = VALUES(threshold),
			      epoch = VALUES(epoch),
			      approvals_count = VALUES(approvals_count),
			      updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(ctx, query, set.Owner, set.Threshold, set.Epoch, set.ApprovalsCount, set.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to save guardian set")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM guardians WHERE owner = ?`, set.Owner); err != nil {
		return apperrors.Wrap(err, "failed to clear guardians")
	}

	for position, guardian := range set.Guardians {
		_, err := querier.ExecContext(
			ctx,
			`INSERT INTO guardians (owner, guardian, position) VALUES (?, ?, ?)`,
			set.Owner,
			guardian,
			position,
		)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return domain.ErrDuplicateGuardian
			}
			return apperrors.Wrap(err, "failed to insert guardian")
		}
	}
	return nil
}

// UpdateBallot persists the epoch, approvals count and update time of a set.
func (r *MySQLGuardianRepository) UpdateBallot(ctx context.Context, set *domain.GuardianSet) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE guardian_sets SET epoch = ?, approvals_count = ?, updated_at = ? WHERE owner = ?`

	// Existence is established by the caller's locked GetSet; MySQL reports zero
	// affected rows for an update that changes nothing.
	_, err := querier.ExecContext(ctx, query, set.Epoch, set.ApprovalsCount, set.UpdatedAt, set.Owner)
	if err != nil {
		return apperrors.Wrap(err, "failed to update guardian ballot")
	}
	return nil
}

// CreateApproval records the vote of one guardian.
func (r *MySQLGuardianRepository) CreateApproval(ctx context.Context, approval *domain.Approval) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO recovery_approvals (owner, guardian, epoch, approved_at) VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, approval.Owner, approval.Guardian, approval.Epoch, approval.ApprovedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrAlreadyApproved
		}
		return apperrors.Wrap(err, "failed to create recovery approval")
	}
	return nil
}

// HasApproval reports whether guardian approved the recovery of owner.
func (r *MySQLGuardianRepository) HasApproval(
	ctx context.Context,
	owner, guardian principal.Principal,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM recovery_approvals WHERE owner = ? AND guardian = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, owner, guardian).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check recovery approval")
	}
	return exists, nil
}

// DeleteApprovals removes every approval cast for owner.
func (r *MySQLGuardianRepository) DeleteApprovals(ctx context.Context, owner principal.Principal) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM recovery_approvals WHERE owner = ?`, owner); err != nil {
		return apperrors.Wrap(err, "failed to delete recovery approvals")
	}
	return nil
}
