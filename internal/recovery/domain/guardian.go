// Package domain defines guardian sets and approval ballots of the social
// recovery protocol.
package domain

import (
	"github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/principal"
)

// GuardianSet is the recovery configuration of one identity owner.
//
// Epoch starts at zero and is incremented by every guardian replacement and
// every executed recovery; approvals only count within the epoch they were
// cast in. ApprovalsCount always equals the number of stored approvals.
type GuardianSet struct {
	Owner          principal.Principal
	Guardians      []principal.Principal
	Threshold      int
	Epoch          int64
	ApprovalsCount int
	UpdatedAt      int64
}

// Initialized reports whether the owner has ever configured guardians.
func (s *GuardianSet) Initialized() bool {
	return s.Epoch > 0
}

// IsGuardian reports whether p belongs to the current guardian set.
func (s *GuardianSet) IsGuardian(p principal.Principal) bool {
	for _, guardian := range s.Guardians {
		if guardian == p {
			return true
		}
	}
	return false
}

// ThresholdMet reports whether enough guardians approved to execute a recovery.
func (s *GuardianSet) ThresholdMet() bool {
	return s.Initialized() && s.ApprovalsCount >= s.Threshold
}

// Approval is the ballot of one guardian for one owner.
type Approval struct {
	Owner      principal.Principal
	Guardian   principal.Principal
	Epoch      int64
	ApprovedAt int64
}

// ValidateGuardians checks a guardian list and threshold before they replace a set.
func ValidateGuardians(guardians []principal.Principal, threshold int) error {
	if len(guardians) == 0 {
		return ErrInvalidGuardianCount
	}
	if threshold < 1 || threshold > len(guardians) {
		return ErrInvalidThreshold
	}

	seen := make(map[principal.Principal]struct{}, len(guardians))
	for _, guardian := range guardians {
		if guardian.IsZero() {
			return ErrInvalidGuardian
		}
		if _, dup := seen[guardian]; dup {
			return ErrDuplicateGuardian
		}
		seen[guardian] = struct{}{}
	}
	return nil
}

const (
	EventGuardiansSet     = "recovery.guardians_set"
	EventRecoveryApproved = "recovery.approved"
	EventRecoveryExecuted = "recovery.executed"
)

// GuardiansSetEvent is the payload of EventGuardiansSet.
type GuardiansSetEvent struct {
	Owner     principal.Principal   `json:"owner"`
	Guardians []principal.Principal `json:"guardians"`
	Threshold int                   `json:"threshold"`
	Epoch     int64                 `json:"epoch"`
}

// ApprovedEvent is the payload of EventRecoveryApproved.
type ApprovedEvent struct {
	Owner          principal.Principal `json:"owner"`
	Guardian       principal.Principal `json:"guardian"`
	Epoch          int64               `json:"epoch"`
	ApprovalsCount int                 `json:"approvals_count"`
}

// ExecutedEvent is the payload of EventRecoveryExecuted. Epoch is the epoch
// whose approvals authorized the transfer.
type ExecutedEvent struct {
	Owner         principal.Principal `json:"owner"`
	NewController principal.Principal `json:"new_controller"`
	ID            string              `json:"id"`
	IDHash        hash.Hash           `json:"id_hash"`
	Epoch         int64               `json:"epoch"`
}

var (
	// ErrGuardiansNotSet is returned by repositories for owners without a guardian set.
	ErrGuardiansNotSet = errors.Wrap(errors.ErrNotFound, "guardian set not found")

	// ErrInvalidGuardianCount is returned when the guardian list is empty.
	ErrInvalidGuardianCount = errors.Wrap(errors.ErrInvalidInput, "at least one guardian is required")

	// ErrInvalidThreshold is returned when the threshold is zero or exceeds the guardian count.
	ErrInvalidThreshold = errors.Wrap(errors.ErrInvalidInput, "threshold must be between 1 and the guardian count")

	// ErrDuplicateGuardian is returned when a principal appears twice in a guardian list.
	ErrDuplicateGuardian = errors.Wrap(errors.ErrInvalidInput, "guardians must be distinct")

	// ErrInvalidGuardian is returned for an empty guardian principal.
	ErrInvalidGuardian = errors.Wrap(errors.ErrInvalidInput, "guardian must not be empty")

	// ErrNotGuardian is returned when the sender is not in the owner's guardian set.
	ErrNotGuardian = errors.Wrap(errors.ErrForbidden, "sender is not a guardian of the owner")

	// ErrAlreadyApproved is returned on a second approval within one epoch.
	ErrAlreadyApproved = errors.Wrap(errors.ErrAlreadyDone, "guardian already approved")

	// ErrInsufficientApprovals is returned when executing before the threshold is met.
	ErrInsufficientApprovals = errors.Wrap(errors.ErrInsufficientConsensus, "not enough guardian approvals")
)
