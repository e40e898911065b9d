// Package usecase implements registry ownership: bootstrap at deployment, owner
// checks for privileged operations and transfer of ownership.
package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// OwnershipRepository defines ownership persistence operations.
type OwnershipRepository interface {
	// Get returns domain.ErrOwnershipNotFound when the registry has no owner.
	// Inside a transaction the row stays locked until commit.
	Get(ctx context.Context, registry domain.Registry) (*domain.Ownership, error)
	Create(ctx context.Context, ownership *domain.Ownership) error
	Update(ctx context.Context, ownership *domain.Ownership) error
}

// OwnershipUseCase defines the ownership operations shared by the owned registries.
type OwnershipUseCase interface {
	// Bootstrap records owner as the registry owner unless one is already recorded.
	Bootstrap(ctx context.Context, registry domain.Registry, owner principal.Principal) (*domain.Ownership, error)
	// Owner returns the registry owner, or the zero principal when none is recorded.
	Owner(ctx context.Context, registry domain.Registry) (principal.Principal, error)
	// RequireOwner fails with domain.ErrNotOwner unless caller owns the registry.
	RequireOwner(ctx context.Context, registry domain.Registry, caller principal.Principal) error
	// TransferOwnership hands the registry to newOwner. Only the current owner may call it.
	TransferOwnership(
		ctx context.Context,
		registry domain.Registry,
		newOwner principal.Principal,
	) (*domain.Ownership, error)
}
