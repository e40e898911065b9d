// Package domain defines credential anchors: the first on-record commitment of
// a credential hash, attributed to the issuer that made it.
package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/principal"
)

// Anchor records who anchored a credential hash and whether it was revoked.
// Revocation is one-way.
type Anchor struct {
	Hash       hash.Hash
	Issuer     principal.Principal
	ContentRef string
	Revoked    bool
	AnchoredAt int64
}

const (
	EventCredentialAnchored = "credential.anchored"
	EventCredentialRevoked  = "credential.revoked"
)

// AnchoredEvent is the payload of EventCredentialAnchored.
type AnchoredEvent struct {
	Hash       hash.Hash           `json:"hash"`
	Issuer     principal.Principal `json:"issuer"`
	ContentRef string              `json:"content_ref"`
}

// RevokedEvent is the payload of EventCredentialRevoked. The reason is only
// ever carried here.
type RevokedEvent struct {
	Hash   hash.Hash           `json:"hash"`
	Issuer principal.Principal `json:"issuer"`
	Reason string              `json:"reason"`
}

var (
	// ErrAlreadyAnchored is returned when a credential hash already has an anchor.
	ErrAlreadyAnchored = errors.Wrap(errors.ErrConflict, "credential already anchored")

	// ErrNotAnchored is returned when revoking a hash that was never anchored.
	ErrNotAnchored = errors.Wrap(errors.ErrNotFound, "credential not anchored")

	// ErrNotIssuer is returned when the sender is not the anchoring issuer.
	ErrNotIssuer = errors.Wrap(errors.ErrForbidden, "sender is not the anchoring issuer")

	// ErrAlreadyRevoked is returned on a second revocation of the same credential.
	ErrAlreadyRevoked = errors.Wrap(errors.ErrAlreadyDone, "credential already revoked")
)
