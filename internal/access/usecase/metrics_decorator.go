package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/principal"
)

// accessUseCaseWithMetrics decorates AccessUseCase with metrics instrumentation.
type accessUseCaseWithMetrics struct {
	next    AccessUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessUseCaseWithMetrics wraps an AccessUseCase with metrics recording.
func NewAccessUseCaseWithMetrics(useCase AccessUseCase, m metrics.BusinessMetrics) AccessUseCase {
	return &accessUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Grant records metrics for single grants.
func (a *accessUseCaseWithMetrics) Grant(ctx context.Context, grant domain.Grant) (*domain.Permission, error) {
	start := time.Now()
	permission, err := a.next.Grant(ctx, grant)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "access", "access_grant", status)
	a.metrics.RecordDuration(ctx, "access", "access_grant", time.Since(start), status)

	return permission, err
}

// GrantBatch records metrics for batch grants.
func (a *accessUseCaseWithMetrics) GrantBatch(
	ctx context.Context,
	grantees []principal.Principal,
	attributes []string,
	expiries []int64,
	consentRefs []string,
) ([]*domain.Permission, error) {
	start := time.Now()
	permissions, err := a.next.GrantBatch(ctx, grantees, attributes, expiries, consentRefs)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "access", "access_grant_batch", status)
	a.metrics.RecordDuration(ctx, "access", "access_grant_batch", time.Since(start), status)

	return permissions, err
}

// Revoke records metrics for single revocations.
func (a *accessUseCaseWithMetrics) Revoke(ctx context.Context, revocation domain.Revocation) error {
	start := time.Now()
	err := a.next.Revoke(ctx, revocation)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "access", "access_revoke", status)
	a.metrics.RecordDuration(ctx, "access", "access_revoke", time.Since(start), status)

	return err
}

// RevokeBatch records metrics for batch revocations.
func (a *accessUseCaseWithMetrics) RevokeBatch(
	ctx context.Context,
	grantees []principal.Principal,
	attributes []string,
) error {
	start := time.Now()
	err := a.next.RevokeBatch(ctx, grantees, attributes)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "access", "access_revoke_batch", status)
	a.metrics.RecordDuration(ctx, "access", "access_revoke_batch", time.Since(start), status)

	return err
}

// HasAccess records metrics for access checks.
func (a *accessUseCaseWithMetrics) HasAccess(ctx context.Context, key domain.Key) (bool, error) {
	start := time.Now()
	granted, err := a.next.HasAccess(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "access", "access_check", status)
	a.metrics.RecordDuration(ctx, "access", "access_check", time.Since(start), status)

	return granted, err
}

// GetPermission records metrics for permission lookups.
func (a *accessUseCaseWithMetrics) GetPermission(ctx context.Context, key domain.Key) (*domain.Permission, error) {
	start := time.Now()
	permission, err := a.next.GetPermission(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "access", "access_get_permission", status)
	a.metrics.RecordDuration(ctx, "access", "access_get_permission", time.Since(start), status)

	return permission, err
}
