// Package usecase implements the guardian based recovery coordinator.
package usecase

import (
	"context"

	identifierDomain "github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
)

// GuardianRepository defines guardian set and approval persistence operations.
type GuardianRepository interface {
	// GetSet returns domain.ErrGuardiansNotSet for unknown owners. Inside a
	// transaction the set row stays locked until commit.
	GetSet(ctx context.Context, owner principal.Principal) (*domain.GuardianSet, error)
	// SaveSet upserts the set and replaces its guardian list.
	SaveSet(ctx context.Context, set *domain.GuardianSet) error
	// UpdateBallot persists the epoch, approvals count and update time of a set.
	UpdateBallot(ctx context.Context, set *domain.GuardianSet) error
	// CreateApproval returns domain.ErrAlreadyApproved when the guardian already voted.
	CreateApproval(ctx context.Context, approval *domain.Approval) error
	HasApproval(ctx context.Context, owner, guardian principal.Principal) (bool, error)
	DeleteApprovals(ctx context.Context, owner principal.Principal) error
}

// ControllerTransferer is the privileged entry point of the identifier
// registry the coordinator calls once a recovery is authorized.
type ControllerTransferer interface {
	UpdateControllerByRecovery(
		ctx context.Context,
		id string,
		newController principal.Principal,
	) (*identifierDomain.Record, error)
}

// RecoveryUseCase defines the recovery coordinator operations.
type RecoveryUseCase interface {
	// SetGuardians replaces the sender's guardian set and discards every
	// approval cast for the previous one.
	SetGuardians(ctx context.Context, guardians []principal.Principal, threshold int) (*domain.GuardianSet, error)
	ApproveRecovery(ctx context.Context, owner principal.Principal) error
	ExecuteRecovery(
		ctx context.Context,
		owner, newController principal.Principal,
		id string,
	) (*identifierDomain.Record, error)
	// GetGuardians returns an uninitialized set for unknown owners.
	GetGuardians(ctx context.Context, owner principal.Principal) (*domain.GuardianSet, error)
	ApprovalsCount(ctx context.Context, owner principal.Principal) (int, error)
	HasApproved(ctx context.Context, owner, guardian principal.Principal) (bool, error)
}
