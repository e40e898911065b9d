// Package domain defines registry ownership: the explicit owner principal that
// gates the privileged operations of the identifier, issuer and directory registries.
package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
)

// Registry names a registry that has an owner.
type Registry string

const (
	RegistryIdentifier Registry = "identifier"
	RegistryIssuer     Registry = "issuer"
	RegistryDirectory  Registry = "directory"
)

// Registries lists every owned registry.
var Registries = []Registry{RegistryIdentifier, RegistryIssuer, RegistryDirectory}

// Validate returns ErrUnknownRegistry for names outside Registries.
func (r Registry) Validate() error {
	for _, known := range Registries {
		if r == known {
			return nil
		}
	}
	return ErrUnknownRegistry
}

// Ownership records the current owner of a registry.
type Ownership struct {
	Registry  Registry
	Owner     principal.Principal
	UpdatedAt int64
}

// EventOwnershipTransferred is recorded when an owner is bootstrapped or transferred.
const EventOwnershipTransferred = "ownership.transferred"

// TransferredEvent is the payload of EventOwnershipTransferred.
type TransferredEvent struct {
	Registry Registry            `json:"registry"`
	OldOwner principal.Principal `json:"old_owner"`
	NewOwner principal.Principal `json:"new_owner"`
}

var (
	// ErrNotOwner indicates the caller is not the registry owner.
	ErrNotOwner = errors.Wrap(errors.ErrForbidden, "caller is not the registry owner")

	// ErrUnknownRegistry indicates a registry name that has no ownership record.
	ErrUnknownRegistry = errors.Wrap(errors.ErrInvalidInput, "unknown registry")

	// ErrOwnerRequired indicates an empty owner principal.
	ErrOwnerRequired = errors.Wrap(errors.ErrInvalidInput, "owner principal is required")

	// ErrOwnershipNotFound is returned by repositories when a registry has no owner yet.
	ErrOwnershipNotFound = errors.Wrap(errors.ErrNotFound, "registry has no owner")
)
