// Package domain defines time-bound data access grants a subject issues to
// grantees for individual attributes.
package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
)

// Key identifies a permission. Empty attributes and zero grantees are valid keys.
type Key struct {
	Subject   principal.Principal
	Grantee   principal.Principal
	Attribute string
}

// Permission is the latest grant or revocation recorded for a Key. An Expiry of
// zero never expires; a past non-zero Expiry makes the grant inert without
// clearing it.
type Permission struct {
	Key
	Granted    bool
	Expiry     int64
	ConsentRef string
	UpdatedAt  int64
}

// ActiveAt reports whether the permission grants access at time now.
func (p *Permission) ActiveAt(now int64) bool {
	return p.Granted && (p.Expiry == 0 || p.Expiry > now)
}

// Grant is one element of a grant request.
type Grant struct {
	Grantee    principal.Principal
	Attribute  string
	Expiry     int64
	ConsentRef string
}

// Revocation is one element of a revoke request.
type Revocation struct {
	Grantee   principal.Principal
	Attribute string
}

const (
	EventAccessGranted = "access.granted"
	EventAccessRevoked = "access.revoked"
)

// GrantedEvent is the payload of EventAccessGranted.
type GrantedEvent struct {
	Subject    principal.Principal `json:"subject"`
	Grantee    principal.Principal `json:"grantee"`
	Attribute  string              `json:"attribute"`
	Expiry     int64               `json:"expiry"`
	ConsentRef string              `json:"consent_ref"`
}

// RevokedEvent is the payload of EventAccessRevoked.
type RevokedEvent struct {
	Subject   principal.Principal `json:"subject"`
	Grantee   principal.Principal `json:"grantee"`
	Attribute string              `json:"attribute"`
}

var (
	// ErrLengthMismatch is returned when the arrays of a batch request differ in length.
	ErrLengthMismatch = errors.Wrap(errors.ErrInvalidInput, "batch arrays differ in length")

	// ErrPermissionNotFound is returned by repositories for keys never granted or revoked.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")
)
