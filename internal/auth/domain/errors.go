package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
)

// Authentication errors. All of them surface as 401 responses.
var (
	// ErrInvalidToken indicates a token that is malformed, badly signed or issued by someone else.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrTokenExpired indicates a token past its expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token has expired")

	// ErrTokenRevoked indicates a token that was put on the deny-list.
	ErrTokenRevoked = errors.Wrap(errors.ErrUnauthorized, "token has been revoked")

	// ErrMissingSubject indicates an attempt to issue a token without a subject.
	ErrMissingSubject = errors.Wrap(errors.ErrInvalidInput, "token subject is required")

	// ErrMissingSecret indicates the service was started without a signing secret.
	ErrMissingSecret = errors.Wrap(errors.ErrInvalidInput, "AUTH_JWT_SECRET is required")
)
