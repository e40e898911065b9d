// Package domain defines the issuer trust list: the owner-curated set of
// credential issuers verifiers may rely on.
package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
)

// Issuer is an entry of the trust list. An absent entry reads as untrusted with
// an empty metadata reference.
type Issuer struct {
	Issuer      principal.Principal
	Trusted     bool
	MetadataRef string
	UpdatedAt   int64
}

const (
	EventIssuerAdded   = "issuer.added"
	EventIssuerRemoved = "issuer.removed"
)

// AddedEvent is the payload of EventIssuerAdded.
type AddedEvent struct {
	Issuer      principal.Principal `json:"issuer"`
	MetadataRef string              `json:"metadata_ref"`
}

// RemovedEvent is the payload of EventIssuerRemoved.
type RemovedEvent struct {
	Issuer principal.Principal `json:"issuer"`
}

// ErrIssuerNotFound is returned by repositories for issuers that were never listed.
var ErrIssuerNotFound = errors.Wrap(errors.ErrNotFound, "issuer not found")
