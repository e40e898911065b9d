package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/revocation/domain"
)

// revocationUseCaseWithMetrics decorates RevocationUseCase with metrics instrumentation.
type revocationUseCaseWithMetrics struct {
	next    RevocationUseCase
	metrics metrics.BusinessMetrics
}

// NewRevocationUseCaseWithMetrics wraps a RevocationUseCase with metrics recording.
func NewRevocationUseCaseWithMetrics(useCase RevocationUseCase, m metrics.BusinessMetrics) RevocationUseCase {
	return &revocationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// AnchorCredential records metrics for credential anchoring.
func (r *revocationUseCaseWithMetrics) AnchorCredential(
	ctx context.Context,
	h hash.Hash,
	contentRef string,
) (*domain.Anchor, error) {
	start := time.Now()
	anchor, err := r.next.AnchorCredential(ctx, h, contentRef)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "revocation", "credential_anchor", status)
	r.metrics.RecordDuration(ctx, "revocation", "credential_anchor", time.Since(start), status)

	return anchor, err
}

// RevokeCredential records metrics for credential revocations.
func (r *revocationUseCaseWithMetrics) RevokeCredential(ctx context.Context, h hash.Hash, reason string) error {
	start := time.Now()
	err := r.next.RevokeCredential(ctx, h, reason)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "revocation", "credential_revoke", status)
	r.metrics.RecordDuration(ctx, "revocation", "credential_revoke", time.Since(start), status)

	return err
}

// IsRevoked records metrics for revocation checks.
func (r *revocationUseCaseWithMetrics) IsRevoked(ctx context.Context, h hash.Hash) (bool, error) {
	start := time.Now()
	revoked, err := r.next.IsRevoked(ctx, h)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "revocation", "credential_is_revoked", status)
	r.metrics.RecordDuration(ctx, "revocation", "credential_is_revoked", time.Since(start), status)

	return revoked, err
}

// GetAnchor records metrics for anchor lookups.
func (r *revocationUseCaseWithMetrics) GetAnchor(ctx context.Context, h hash.Hash) (*domain.Anchor, error) {
	start := time.Now()
	anchor, err := r.next.GetAnchor(ctx, h)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "revocation", "credential_get", status)
	r.metrics.RecordDuration(ctx, "revocation", "credential_get", time.Since(start), status)

	return anchor, err
}
