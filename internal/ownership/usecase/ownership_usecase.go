package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

type ownershipUseCase struct {
	txManager database.TxManager
	repo      OwnershipRepository
	recorder  eventsUseCase.Recorder
	clock     clock.Clock
}

// NewOwnershipUseCase creates a new OwnershipUseCase.
func NewOwnershipUseCase(
	txManager database.TxManager,
	repo OwnershipRepository,
	recorder eventsUseCase.Recorder,
	clk clock.Clock,
) OwnershipUseCase {
	return &ownershipUseCase{
		txManager: txManager,
		repo:      repo,
		recorder:  recorder,
		clock:     clk,
	}
}

func (uc *ownershipUseCase) Bootstrap(
	ctx context.Context,
	registry domain.Registry,
	owner principal.Principal,
) (*domain.Ownership, error) {
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, domain.ErrOwnerRequired
	}

	var result *domain.Ownership
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := uc.repo.Get(ctx, registry)
		if err == nil {
			result = existing
			return nil
		}
		if !apperrors.Is(err, domain.ErrOwnershipNotFound) {
			return err
		}

		ownership := &domain.Ownership{Registry: registry, Owner: owner, UpdatedAt: uc.clock.Now()}
		if err := uc.repo.Create(ctx, ownership); err != nil {
			return err
		}

		result = ownership
		return uc.recorder.Record(ctx, domain.EventOwnershipTransferred, domain.TransferredEvent{
			Registry: registry,
			OldOwner: principal.Zero,
			NewOwner: owner,
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *ownershipUseCase) Owner(ctx context.Context, registry domain.Registry) (principal.Principal, error) {
	if err := registry.Validate(); err != nil {
		return principal.Zero, err
	}

	ownership, err := uc.repo.Get(ctx, registry)
	if err != nil {
		if apperrors.Is(err, domain.ErrOwnershipNotFound) {
			return principal.Zero, nil
		}
		return principal.Zero, err
	}
	return ownership.Owner, nil
}

func (uc *ownershipUseCase) RequireOwner(
	ctx context.Context,
	registry domain.Registry,
	caller principal.Principal,
) error {
	if err := registry.Validate(); err != nil {
		return err
	}

	ownership, err := uc.repo.Get(ctx, registry)
	if err != nil {
		if apperrors.Is(err, domain.ErrOwnershipNotFound) {
			return domain.ErrNotOwner
		}
		return err
	}

	if caller.IsZero() || ownership.Owner != caller {
		return domain.ErrNotOwner
	}
	return nil
}

func (uc *ownershipUseCase) TransferOwnership(
	ctx context.Context,
	registry domain.Registry,
	newOwner principal.Principal,
) (*domain.Ownership, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	if newOwner.IsZero() {
		return nil, domain.ErrOwnerRequired
	}

	var result *domain.Ownership
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		ownership, err := uc.repo.Get(ctx, registry)
		if err != nil {
			if apperrors.Is(err, domain.ErrOwnershipNotFound) {
				return domain.ErrNotOwner
			}
			return err
		}
		if ownership.Owner != sender {
			return domain.ErrNotOwner
		}

		oldOwner := ownership.Owner
		ownership.Owner = newOwner
		ownership.UpdatedAt = uc.clock.Now()
		if err := uc.repo.Update(ctx, ownership); err != nil {
			return err
		}

		result = ownership
		return uc.recorder.Record(ctx, domain.EventOwnershipTransferred, domain.TransferredEvent{
			Registry: registry,
			OldOwner: oldOwner,
			NewOwner: newOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
