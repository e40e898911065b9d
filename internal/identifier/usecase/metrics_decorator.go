package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/principal"
)

// identifierUseCaseWithMetrics decorates IdentifierUseCase with metrics instrumentation.
type identifierUseCaseWithMetrics struct {
	next    IdentifierUseCase
	metrics metrics.BusinessMetrics
}

// NewIdentifierUseCaseWithMetrics wraps an IdentifierUseCase with metrics recording.
func NewIdentifierUseCaseWithMetrics(useCase IdentifierUseCase, m metrics.BusinessMetrics) IdentifierUseCase {
	return &identifierUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (i *identifierUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "identifier", operation, status)
	i.metrics.RecordDuration(ctx, "identifier", operation, time.Since(start), status)
}

func (i *identifierUseCaseWithMetrics) Register(
	ctx context.Context,
	id, documentRef, publicKey string,
) (*domain.Record, error) {
	start := time.Now()
	record, err := i.next.Register(ctx, id, documentRef, publicKey)
	i.record(ctx, "identifier_register", start, err)
	return record, err
}

func (i *identifierUseCaseWithMetrics) Update(
	ctx context.Context,
	id, documentRef, publicKey string,
) (*domain.Record, error) {
	start := time.Now()
	record, err := i.next.Update(ctx, id, documentRef, publicKey)
	i.record(ctx, "identifier_update", start, err)
	return record, err
}

func (i *identifierUseCaseWithMetrics) Resolve(ctx context.Context, id string) (*domain.Record, error) {
	start := time.Now()
	record, err := i.next.Resolve(ctx, id)
	i.record(ctx, "identifier_resolve", start, err)
	return record, err
}

func (i *identifierUseCaseWithMetrics) ListByController(
	ctx context.Context,
	controller principal.Principal,
	offset, limit int,
) ([]*domain.Record, error) {
	start := time.Now()
	records, err := i.next.ListByController(ctx, controller, offset, limit)
	i.record(ctx, "identifier_list", start, err)
	return records, err
}

func (i *identifierUseCaseWithMetrics) RecoveryManager(ctx context.Context) (principal.Principal, error) {
	start := time.Now()
	manager, err := i.next.RecoveryManager(ctx)
	i.record(ctx, "identifier_get_recovery_manager", start, err)
	return manager, err
}

func (i *identifierUseCaseWithMetrics) SetRecoveryManager(ctx context.Context, manager principal.Principal) error {
	start := time.Now()
	err := i.next.SetRecoveryManager(ctx, manager)
	i.record(ctx, "identifier_set_recovery_manager", start, err)
	return err
}

func (i *identifierUseCaseWithMetrics) UpdateControllerByRecovery(
	ctx context.Context,
	id string,
	newController principal.Principal,
) (*domain.Record, error) {
	start := time.Now()
	record, err := i.next.UpdateControllerByRecovery(ctx, id, newController)
	i.record(ctx, "identifier_recovery_transfer", start, err)
	return record, err
}
