package domain

import (
	"time"

	"github.com/allisson/trustregistry/internal/principal"
)

// Claims are the verified contents of a sender token.
type Claims struct {
	ID        string
	Subject   principal.Principal
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RemainingTTL returns how long the token stays valid after now.
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if remaining := c.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// IssuedToken is a freshly signed token. The signed value is only ever
// returned once, to the caller that requested it.
type IssuedToken struct {
	Token     string
	ID        string
	Subject   principal.Principal
	ExpiresAt time.Time
}
