// Package service signs and verifies sender tokens.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/allisson/trustregistry/internal/auth/domain"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
)

// TokenService signs and verifies sender tokens.
type TokenService interface {
	Sign(subject principal.Principal, ttl time.Duration) (*domain.IssuedToken, error)
	// Verify checks signature, issuer and expiry. It does not consult the deny-list.
	Verify(token string) (*domain.Claims, error)
}

// jwtTokenService implements TokenService with HS256 signed JWTs.
type jwtTokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTTokenService creates a TokenService signing with secret.
func NewJWTTokenService(secret, issuer string) (TokenService, error) {
	return newJWTTokenService(secret, issuer, time.Now)
}

func newJWTTokenService(secret, issuer string, now func() time.Time) (*jwtTokenService, error) {
	if secret == "" {
		return nil, domain.ErrMissingSecret
	}
	return &jwtTokenService{secret: []byte(secret), issuer: issuer, now: now}, nil
}

// Sign issues a token for subject. The jti is a UUIDv7 so deny-list entries
// sort by issue time.
func (s *jwtTokenService) Sign(subject principal.Principal, ttl time.Duration) (*domain.IssuedToken, error) {
	if subject.IsZero() {
		return nil, domain.ErrMissingSubject
	}
	if ttl <= 0 {
		ttl = domain.DefaultTokenTTL
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate token id")
	}

	now := s.now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject.String(),
		Issuer:    s.issuer,
		ID:        id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &domain.IssuedToken{
		Token:     signed,
		ID:        id.String(),
		Subject:   subject,
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

func (s *jwtTokenService) Verify(token string) (*domain.Claims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	result := &domain.Claims{
		ID:        claims.ID,
		Subject:   principal.Principal(claims.Subject),
		Issuer:    claims.Issuer,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}
