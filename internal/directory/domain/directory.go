// Package domain defines the directory of registry component references.
package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
)

// Addresses holds the published reference of every registry component. The
// references are opaque and never checked against the components they name.
type Addresses struct {
	IdentifierRegistry string
	AccessControl      string
	Recovery           string
	Revocation         string
	IssuerRegistry     string
	UpdatedAt          int64
}

const EventAddressesSet = "directory.addresses_set"

// AddressesSetEvent is the payload of EventAddressesSet.
type AddressesSetEvent struct {
	IdentifierRegistry string `json:"identifier_registry"`
	AccessControl      string `json:"access_control"`
	Recovery           string `json:"recovery"`
	Revocation         string `json:"revocation"`
	IssuerRegistry     string `json:"issuer_registry"`
}

// ErrDirectoryNotSet is returned by repositories before the first SetAddresses.
var ErrDirectoryNotSet = errors.Wrap(errors.ErrNotFound, "directory not set")
