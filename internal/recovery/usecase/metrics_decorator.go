package usecase

import (
	"context"
	"time"

	identifierDomain "github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
)

// recoveryUseCaseWithMetrics decorates RecoveryUseCase with metrics instrumentation.
type recoveryUseCaseWithMetrics struct {
	next    RecoveryUseCase
	metrics metrics.BusinessMetrics
}

// NewRecoveryUseCaseWithMetrics wraps a RecoveryUseCase with metrics recording.
func NewRecoveryUseCaseWithMetrics(useCase RecoveryUseCase, m metrics.BusinessMetrics) RecoveryUseCase {
	return &recoveryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SetGuardians records metrics for guardian set replacements.
func (r *recoveryUseCaseWithMetrics) SetGuardians(
	ctx context.Context,
	guardians []principal.Principal,
	threshold int,
) (*domain.GuardianSet, error) {
	start := time.Now()
	set, err := r.next.SetGuardians(ctx, guardians, threshold)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "recovery", "recovery_set_guardians", status)
	r.metrics.RecordDuration(ctx, "recovery", "recovery_set_guardians", time.Since(start), status)

	return set, err
}

// ApproveRecovery records metrics for guardian approvals.
func (r *recoveryUseCaseWithMetrics) ApproveRecovery(ctx context.Context, owner principal.Principal) error {
	start := time.Now()
	err := r.next.ApproveRecovery(ctx, owner)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "recovery", "recovery_approve", status)
	r.metrics.RecordDuration(ctx, "recovery", "recovery_approve", time.Since(start), status)

	return err
}

// ExecuteRecovery records metrics for recovery executions.
func (r *recoveryUseCaseWithMetrics) ExecuteRecovery(
	ctx context.Context,
	owner, newController principal.Principal,
	id string,
) (*identifierDomain.Record, error) {
	start := time.Now()
	record, err := r.next.ExecuteRecovery(ctx, owner, newController, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "recovery", "recovery_execute", status)
	r.metrics.RecordDuration(ctx, "recovery", "recovery_execute", time.Since(start), status)

	return record, err
}

// GetGuardians records metrics for guardian set lookups.
func (r *recoveryUseCaseWithMetrics) GetGuardians(
	ctx context.Context,
	owner principal.Principal,
) (*domain.GuardianSet, error) {
	start := time.Now()
	set, err := r.next.GetGuardians(ctx, owner)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "recovery", "recovery_get_guardians", status)
	r.metrics.RecordDuration(ctx, "recovery", "recovery_get_guardians", time.Since(start), status)

	return set, err
}

// ApprovalsCount records metrics for approval count lookups.
func (r *recoveryUseCaseWithMetrics) ApprovalsCount(ctx context.Context, owner principal.Principal) (int, error) {
	start := time.Now()
	count, err := r.next.ApprovalsCount(ctx, owner)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "recovery", "recovery_approvals_count", status)
	r.metrics.RecordDuration(ctx, "recovery", "recovery_approvals_count", time.Since(start), status)

	return count, err
}

// HasApproved records metrics for ballot lookups.
func (r *recoveryUseCaseWithMetrics) HasApproved(
	ctx context.Context,
	owner, guardian principal.Principal,
) (bool, error) {
	start := time.Now()
	approved, err := r.next.HasApproved(ctx, owner, guardian)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "recovery", "recovery_has_approved", status)
	r.metrics.RecordDuration(ctx, "recovery", "recovery_has_approved", time.Since(start), status)

	return approved, err
}
