package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/auth/domain"
	"github.com/allisson/trustregistry/internal/auth/service"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
)

type tokenUseCase struct {
	tokens     service.TokenService
	denyList   DenyList
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenUseCase creates a TokenUseCase.
func NewTokenUseCase(tokens service.TokenService, denyList DenyList, defaultTTL time.Duration) TokenUseCase {
	return &tokenUseCase{
		tokens:     tokens,
		denyList:   denyList,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (t *tokenUseCase) Issue(
	ctx context.Context,
	subject principal.Principal,
	ttl time.Duration,
) (*domain.IssuedToken, error) {
	if ttl <= 0 {
		ttl = t.defaultTTL
	}
	return t.tokens.Sign(subject, ttl)
}

func (t *tokenUseCase) Authenticate(ctx context.Context, token string) (*domain.Claims, error) {
	claims, err := t.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	denied, err := t.denyList.IsDenied(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if denied {
		return nil, domain.ErrTokenRevoked
	}

	return claims, nil
}

func (t *tokenUseCase) Revoke(ctx context.Context, token string) error {
	claims, err := t.tokens.Verify(token)
	if err != nil {
		if apperrors.Is(err, domain.ErrTokenExpired) {
			return nil
		}
		return err
	}

	ttl := claims.RemainingTTL(t.now())
	if ttl <= 0 {
		return nil
	}
	return t.denyList.Deny(ctx, claims.ID, ttl)
}
