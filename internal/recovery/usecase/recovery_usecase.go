package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	identifierDomain "github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
)

type recoveryUseCase struct {
	txManager   database.TxManager
	repo        GuardianRepository
	identifiers ControllerTransferer
	self        principal.Principal
	recorder    eventsUseCase.Recorder
	clock       clock.Clock
}

// NewRecoveryUseCase creates a new RecoveryUseCase. self is the principal the
// coordinator presents to the identifier registry; it must be installed there
// as recovery manager.
func NewRecoveryUseCase(
	txManager database.TxManager,
	repo GuardianRepository,
	identifiers ControllerTransferer,
	self principal.Principal,
	recorder eventsUseCase.Recorder,
	clk clock.Clock,
) RecoveryUseCase {
	return &recoveryUseCase{
		txManager:   txManager,
		repo:        repo,
		identifiers: identifiers,
		self:        self,
		recorder:    recorder,
		clock:       clk,
	}
}

func (uc *recoveryUseCase) SetGuardians(
	ctx context.Context,
	guardians []principal.Principal,
	threshold int,
) (*domain.GuardianSet, error) {
	owner, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateGuardians(guardians, threshold); err != nil {
		return nil, err
	}

	set := &domain.GuardianSet{
		Owner:     owner,
		Guardians: append([]principal.Principal(nil), guardians...),
		Threshold: threshold,
	}
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := uc.getSet(ctx, owner)
		if err != nil {
			return err
		}

		set.Epoch = current.Epoch + 1
		set.UpdatedAt = uc.clock.Now()
		if err := uc.repo.SaveSet(ctx, set); err != nil {
			return err
		}
		if err := uc.repo.DeleteApprovals(ctx, owner); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventGuardiansSet, domain.GuardiansSetEvent{
			Owner:     owner,
			Guardians: set.Guardians,
			Threshold: threshold,
			Epoch:     set.Epoch,
		})
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

// ApproveRecovery casts the sender's vote for recovering owner.
func (uc *recoveryUseCase) ApproveRecovery(ctx context.Context, owner principal.Principal) error {
	guardian, err := principal.RequireSender(ctx)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		set, err := uc.getSet(ctx, owner)
		if err != nil {
			return err
		}
		if !set.IsGuardian(guardian) {
			return domain.ErrNotGuardian
		}

		now := uc.clock.Now()
		err = uc.repo.CreateApproval(ctx, &domain.Approval{
			Owner:      owner,
			Guardian:   guardian,
			Epoch:      set.Epoch,
			ApprovedAt: now,
		})
		if err != nil {
			return err
		}

		set.ApprovalsCount++
		set.UpdatedAt = now
		if err := uc.repo.UpdateBallot(ctx, set); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventRecoveryApproved, domain.ApprovedEvent{
			Owner:          owner,
			Guardian:       guardian,
			Epoch:          set.Epoch,
			ApprovalsCount: set.ApprovalsCount,
		})
	})
}

// ExecuteRecovery hands control of id to newController once the owner's
// guardians reached their threshold. Any authenticated sender may trigger it.
// A successful execution consumes the approvals and opens a new epoch.
func (uc *recoveryUseCase) ExecuteRecovery(
	ctx context.Context,
	owner, newController principal.Principal,
	id string,
) (*identifierDomain.Record, error) {
	if _, err := principal.RequireSender(ctx); err != nil {
		return nil, err
	}

	var record *identifierDomain.Record
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		set, err := uc.getSet(ctx, owner)
		if err != nil {
			return err
		}
		if !set.ThresholdMet() {
			return domain.ErrInsufficientApprovals
		}

		record, err = uc.identifiers.UpdateControllerByRecovery(principal.WithSender(ctx, uc.self), id, newController)
		if err != nil {
			return err
		}

		executedEpoch := set.Epoch
		if err := uc.repo.DeleteApprovals(ctx, owner); err != nil {
			return err
		}
		set.Epoch++
		set.ApprovalsCount = 0
		set.UpdatedAt = uc.clock.Now()
		if err := uc.repo.UpdateBallot(ctx, set); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventRecoveryExecuted, domain.ExecutedEvent{
			Owner:         owner,
			NewController: newController,
			ID:            id,
			IDHash:        record.IDHash,
			Epoch:         executedEpoch,
		})
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (uc *recoveryUseCase) GetGuardians(ctx context.Context, owner principal.Principal) (*domain.GuardianSet, error) {
	return uc.getSet(ctx, owner)
}

func (uc *recoveryUseCase) ApprovalsCount(ctx context.Context, owner principal.Principal) (int, error) {
	set, err := uc.getSet(ctx, owner)
	if err != nil {
		return 0, err
	}
	return set.ApprovalsCount, nil
}

func (uc *recoveryUseCase) HasApproved(ctx context.Context, owner, guardian principal.Principal) (bool, error) {
	return uc.repo.HasApproval(ctx, owner, guardian)
}

// getSet maps an unknown owner to an uninitialized set.
func (uc *recoveryUseCase) getSet(ctx context.Context, owner principal.Principal) (*domain.GuardianSet, error) {
	set, err := uc.repo.GetSet(ctx, owner)
	if err != nil {
		if apperrors.Is(err, domain.ErrGuardiansNotSet) {
			return &domain.GuardianSet{Owner: owner}, nil
		}
		return nil, err
	}
	return set, nil
}
