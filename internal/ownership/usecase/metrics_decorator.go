package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// ownershipUseCaseWithMetrics decorates OwnershipUseCase with metrics instrumentation.
type ownershipUseCaseWithMetrics struct {
	next    OwnershipUseCase
	metrics metrics.BusinessMetrics
}

// NewOwnershipUseCaseWithMetrics wraps an OwnershipUseCase with metrics recording.
func NewOwnershipUseCaseWithMetrics(useCase OwnershipUseCase, m metrics.BusinessMetrics) OwnershipUseCase {
	return &ownershipUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (o *ownershipUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "ownership", operation, status)
	o.metrics.RecordDuration(ctx, "ownership", operation, time.Since(start), status)
}

// Bootstrap records metrics for owner bootstrap.
func (o *ownershipUseCaseWithMetrics) Bootstrap(
	ctx context.Context,
	registry domain.Registry,
	owner principal.Principal,
) (*domain.Ownership, error) {
	start := time.Now()
	ownership, err := o.next.Bootstrap(ctx, registry, owner)
	o.record(ctx, "ownership_bootstrap", start, err)
	return ownership, err
}

// Owner records metrics for owner lookups.
func (o *ownershipUseCaseWithMetrics) Owner(
	ctx context.Context,
	registry domain.Registry,
) (principal.Principal, error) {
	start := time.Now()
	owner, err := o.next.Owner(ctx, registry)
	o.record(ctx, "ownership_get", start, err)
	return owner, err
}

// RequireOwner is not instrumented: it runs inside other registries' operations,
// which already record their own metrics.
func (o *ownershipUseCaseWithMetrics) RequireOwner(
	ctx context.Context,
	registry domain.Registry,
	caller principal.Principal,
) error {
	return o.next.RequireOwner(ctx, registry, caller)
}

// TransferOwnership records metrics for ownership transfers.
func (o *ownershipUseCaseWithMetrics) TransferOwnership(
	ctx context.Context,
	registry domain.Registry,
	newOwner principal.Principal,
) (*domain.Ownership, error) {
	start := time.Now()
	ownership, err := o.next.TransferOwnership(ctx, registry, newOwner)
	o.record(ctx, "ownership_transfer", start, err)
	return ownership, err
}
