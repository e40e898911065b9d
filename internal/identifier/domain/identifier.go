// Package domain defines identifier records: the canonical mapping from an
// identifier to its controller, document reference and public key.
package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/principal"
)

// Record is an identifier record. It is created once and never deleted. An
// unknown identifier resolves to a record with a zero Controller.
type Record struct {
	IDHash     hash.Hash
	ID         string
	Controller principal.Principal
	// Registrant is the controller at registration time. Listings by controller
	// follow it, so a recovered identifier stays listed under its registrant.
	Registrant  principal.Principal
	DocumentRef string
	PublicKey   string
	UpdatedAt   int64
}

// IsRegistered reports whether the record exists.
func (r *Record) IsRegistered() bool {
	return !r.Controller.IsZero()
}

// HashID returns the key under which id is stored and reported in events.
func HashID(id string) hash.Hash {
	return hash.Keccak256([]byte(id))
}

const (
	EventIdentifierRegistered = "identifier.registered"
	EventIdentifierUpdated    = "identifier.updated"
	EventRecoveryManagerSet   = "identifier.recovery_manager_set"
	EventControllerUpdated    = "identifier.controller_updated"
)

// RegisteredEvent is the payload of EventIdentifierRegistered.
type RegisteredEvent struct {
	IDHash      hash.Hash           `json:"id_hash"`
	ID          string              `json:"id"`
	Controller  principal.Principal `json:"controller"`
	DocumentRef string              `json:"document_ref"`
}

// UpdatedEvent is the payload of EventIdentifierUpdated.
type UpdatedEvent struct {
	IDHash      hash.Hash           `json:"id_hash"`
	Controller  principal.Principal `json:"controller"`
	PublicKey   string              `json:"public_key"`
	DocumentRef string              `json:"document_ref"`
}

// RecoveryManagerSetEvent is the payload of EventRecoveryManagerSet.
type RecoveryManagerSetEvent struct {
	OldManager principal.Principal `json:"old_manager"`
	NewManager principal.Principal `json:"new_manager"`
}

// ControllerUpdatedEvent is the payload of EventControllerUpdated.
type ControllerUpdatedEvent struct {
	IDHash        hash.Hash           `json:"id_hash"`
	OldController principal.Principal `json:"old_controller"`
	NewController principal.Principal `json:"new_controller"`
}

var (
	// ErrAlreadyRegistered is returned when registering an existing identifier.
	ErrAlreadyRegistered = errors.Wrap(errors.ErrConflict, "identifier already registered")

	// ErrUnknownIdentifier is returned when mutating an identifier that was never registered.
	ErrUnknownIdentifier = errors.Wrap(errors.ErrNotFound, "unknown identifier")

	// ErrNotController is returned when the sender does not control the identifier.
	ErrNotController = errors.Wrap(errors.ErrForbidden, "sender is not the controller")

	// ErrNotRecoveryManager is returned when a recovery transfer is not made by
	// the current recovery manager.
	ErrNotRecoveryManager = errors.Wrap(errors.ErrForbidden, "sender is not the recovery manager")

	// ErrControllerRequired is returned when a recovery transfer names no new controller.
	ErrControllerRequired = errors.Wrap(errors.ErrInvalidInput, "new controller is required")
)
