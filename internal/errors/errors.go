// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Registry use cases wrap these sentinels and
// the HTTP layer maps them to status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all registry modules.
var (
	// ErrNotFound indicates the target record does not exist (unknown identifier, missing anchor).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the record already exists (duplicate registration or anchor).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request carries no authenticated sender.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the sender is not allowed to perform the transition
	// (wrong controller, owner, issuer or a non-guardian caller).
	ErrForbidden = errors.New("forbidden")

	// ErrLocked indicates the resource is temporarily unavailable for mutation.
	ErrLocked = errors.New("locked")

	// ErrAlreadyDone indicates a one-shot transition was already applied
	// (duplicate approval, duplicate credential revocation).
	ErrAlreadyDone = errors.New("already done")

	// ErrInsufficientConsensus indicates a recovery was executed before the
	// guardian threshold was met.
	ErrInsufficientConsensus = errors.New("insufficient consensus")

	// ErrTooManyRequests indicates the sender exceeded its request budget.
	ErrTooManyRequests = errors.New("too many requests")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
