package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/issuer/domain"
	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/principal"
)

// issuerUseCaseWithMetrics decorates IssuerUseCase with metrics instrumentation.
type issuerUseCaseWithMetrics struct {
	next    IssuerUseCase
	metrics metrics.BusinessMetrics
}

// NewIssuerUseCaseWithMetrics wraps an IssuerUseCase with metrics recording.
func NewIssuerUseCaseWithMetrics(useCase IssuerUseCase, m metrics.BusinessMetrics) IssuerUseCase {
	return &issuerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// AddIssuer records metrics for issuer additions.
func (i *issuerUseCaseWithMetrics) AddIssuer(
	ctx context.Context,
	issuer principal.Principal,
	metadataRef string,
) (*domain.Issuer, error) {
	start := time.Now()
	entry, err := i.next.AddIssuer(ctx, issuer, metadataRef)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuer", "issuer_add", status)
	i.metrics.RecordDuration(ctx, "issuer", "issuer_add", time.Since(start), status)

	return entry, err
}

// RemoveIssuer records metrics for issuer removals.
func (i *issuerUseCaseWithMetrics) RemoveIssuer(ctx context.Context, issuer principal.Principal) error {
	start := time.Now()
	err := i.next.RemoveIssuer(ctx, issuer)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuer", "issuer_remove", status)
	i.metrics.RecordDuration(ctx, "issuer", "issuer_remove", time.Since(start), status)

	return err
}

// IsTrusted records metrics for trust checks.
func (i *issuerUseCaseWithMetrics) IsTrusted(ctx context.Context, issuer principal.Principal) (bool, error) {
	start := time.Now()
	trusted, err := i.next.IsTrusted(ctx, issuer)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuer", "issuer_is_trusted", status)
	i.metrics.RecordDuration(ctx, "issuer", "issuer_is_trusted", time.Since(start), status)

	return trusted, err
}

// GetMetadataRef records metrics for metadata lookups.
func (i *issuerUseCaseWithMetrics) GetMetadataRef(ctx context.Context, issuer principal.Principal) (string, error) {
	start := time.Now()
	ref, err := i.next.GetMetadataRef(ctx, issuer)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuer", "issuer_get_metadata", status)
	i.metrics.RecordDuration(ctx, "issuer", "issuer_get_metadata", time.Since(start), status)

	return ref, err
}

// Get records metrics for issuer lookups.
func (i *issuerUseCaseWithMetrics) Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error) {
	start := time.Now()
	entry, err := i.next.Get(ctx, issuer)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "issuer", "issuer_get", status)
	i.metrics.RecordDuration(ctx, "issuer", "issuer_get", time.Since(start), status)

	return entry, err
}
