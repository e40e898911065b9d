// Package usecase issues, authenticates and revokes sender tokens.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/auth/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// DenyList records revoked token ids until the tokens would have expired anyway.
type DenyList interface {
	Deny(ctx context.Context, jti string, ttl time.Duration) error
	IsDenied(ctx context.Context, jti string) (bool, error)
}

// TokenUseCase is the authentication boundary: it maps a bearer token to the
// principal a request acts as.
type TokenUseCase interface {
	// Issue mints a token for subject. A non-positive ttl uses the configured default.
	Issue(ctx context.Context, subject principal.Principal, ttl time.Duration) (*domain.IssuedToken, error)

	// Authenticate verifies token and checks the deny-list.
	Authenticate(ctx context.Context, token string) (*domain.Claims, error)

	// Revoke puts token on the deny-list. Revoking an expired token is a no-op.
	Revoke(ctx context.Context, token string) error
}
