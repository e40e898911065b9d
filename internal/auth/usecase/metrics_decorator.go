package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/auth/domain"
	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/principal"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	subject principal.Principal,
	ttl time.Duration,
) (*domain.IssuedToken, error) {
	start := time.Now()
	token, err := t.next.Issue(ctx, subject, ttl)

	status := metrics.OperationStatus(err)

	t.metrics.RecordOperation(ctx, "auth", "auth_token_issue", status)
	t.metrics.RecordDuration(ctx, "auth", "auth_token_issue", time.Since(start), status)

	return token, err
}

// Authenticate records metrics for token authentication.
func (t *tokenUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*domain.Claims, error) {
	start := time.Now()
	claims, err := t.next.Authenticate(ctx, token)

	status := metrics.OperationStatus(err)

	t.metrics.RecordOperation(ctx, "auth", "auth_token_authenticate", status)
	t.metrics.RecordDuration(ctx, "auth", "auth_token_authenticate", time.Since(start), status)

	return claims, err
}

// Revoke records metrics for token revocation.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, token string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, token)

	status := metrics.OperationStatus(err)

	t.metrics.RecordOperation(ctx, "auth", "auth_token_revoke", status)
	t.metrics.RecordDuration(ctx, "auth", "auth_token_revoke", time.Since(start), status)

	return err
}
