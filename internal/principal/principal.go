// Package principal defines the caller identity shared by every registry and the
// helpers that carry the authenticated sender through a request context.
package principal

import (
	"context"

	apperrors "github.com/allisson/trustregistry/internal/errors"
)

// Principal is an opaque caller identifier. Principals are only ever compared for equality.
type Principal string

// Zero is the empty principal. Read operations report it for unknown records.
const Zero Principal = ""

// IsZero reports whether p is the empty principal.
func (p Principal) IsZero() bool {
	return p == Zero
}

// String returns the principal as a plain string.
func (p Principal) String() string {
	return string(p)
}

// ErrNoSender is returned when a mutating operation runs without an authenticated sender.
var ErrNoSender = apperrors.Wrap(apperrors.ErrUnauthorized, "sender is not authenticated")

// senderKey is a context key type for storing the authenticated sender.
type senderKey struct{}

// WithSender stores the authenticated sender in the context.
func WithSender(ctx context.Context, sender Principal) context.Context {
	return context.WithValue(ctx, senderKey{}, sender)
}

// Sender retrieves the authenticated sender from the context.
func Sender(ctx context.Context) (Principal, bool) {
	sender, ok := ctx.Value(senderKey{}).(Principal)
	if !ok || sender.IsZero() {
		return Zero, false
	}
	return sender, true
}

// RequireSender returns the authenticated sender or ErrNoSender.
func RequireSender(ctx context.Context) (Principal, error) {
	sender, ok := Sender(ctx)
	if !ok {
		return Zero, ErrNoSender
	}
	return sender, nil
}
