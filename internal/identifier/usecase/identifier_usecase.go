package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/identifier/domain"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	ownershipUseCase "github.com/allisson/trustregistry/internal/ownership/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

type identifierUseCase struct {
	txManager database.TxManager
	repo      IdentifierRepository
	ownership ownershipUseCase.OwnershipUseCase
	recorder  eventsUseCase.Recorder
	clock     clock.Clock
}

// NewIdentifierUseCase creates a new IdentifierUseCase.
func NewIdentifierUseCase(
	txManager database.TxManager,
	repo IdentifierRepository,
	ownership ownershipUseCase.OwnershipUseCase,
	recorder eventsUseCase.Recorder,
	clk clock.Clock,
) IdentifierUseCase {
	return &identifierUseCase{
		txManager: txManager,
		repo:      repo,
		ownership: ownership,
		recorder:  recorder,
		clock:     clk,
	}
}

// Register creates the record of id with the sender as controller.
func (uc *identifierUseCase) Register(
	ctx context.Context,
	id, documentRef, publicKey string,
) (*domain.Record, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}

	record := &domain.Record{
		IDHash:      domain.HashID(id),
		ID:          id,
		Controller:  sender,
		Registrant:  sender,
		DocumentRef: documentRef,
		PublicKey:   publicKey,
	}
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		record.UpdatedAt = uc.clock.Now()
		if err := uc.repo.Create(ctx, record); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventIdentifierRegistered, domain.RegisteredEvent{
			IDHash:      record.IDHash,
			ID:          id,
			Controller:  sender,
			DocumentRef: documentRef,
		})
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Update overwrites the document reference and public key of id. Only the
// current controller may do so.
func (uc *identifierUseCase) Update(
	ctx context.Context,
	id, documentRef, publicKey string,
) (*domain.Record, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}

	var record *domain.Record
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err = uc.repo.Get(ctx, domain.HashID(id))
		if err != nil {
			return err
		}
		if record.Controller != sender {
			return domain.ErrNotController
		}

		record.DocumentRef = documentRef
		record.PublicKey = publicKey
		record.UpdatedAt = uc.clock.Now()
		if err := uc.repo.Update(ctx, record); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventIdentifierUpdated, domain.UpdatedEvent{
			IDHash:      record.IDHash,
			Controller:  sender,
			PublicKey:   publicKey,
			DocumentRef: documentRef,
		})
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Resolve returns the record of id, or a record with a zero controller when id
// was never registered.
func (uc *identifierUseCase) Resolve(ctx context.Context, id string) (*domain.Record, error) {
	idHash := domain.HashID(id)

	record, err := uc.repo.Get(ctx, idHash)
	if err != nil {
		if apperrors.Is(err, domain.ErrUnknownIdentifier) {
			return &domain.Record{IDHash: idHash, ID: id}, nil
		}
		return nil, err
	}
	return record, nil
}

func (uc *identifierUseCase) ListByController(
	ctx context.Context,
	controller principal.Principal,
	offset, limit int,
) ([]*domain.Record, error) {
	return uc.repo.ListByRegistrant(ctx, controller, offset, limit)
}

func (uc *identifierUseCase) RecoveryManager(ctx context.Context) (principal.Principal, error) {
	return uc.repo.GetRecoveryManager(ctx)
}

// SetRecoveryManager replaces the single principal allowed to transfer control
// through UpdateControllerByRecovery. Restricted to the registry owner.
func (uc *identifierUseCase) SetRecoveryManager(ctx context.Context, manager principal.Principal) error {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.ownership.RequireOwner(ctx, ownershipDomain.RegistryIdentifier, sender); err != nil {
			return err
		}

		old, err := uc.repo.GetRecoveryManager(ctx)
		if err != nil {
			return err
		}

		if err := uc.repo.SetRecoveryManager(ctx, manager, uc.clock.Now()); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventRecoveryManagerSet, domain.RecoveryManagerSetEvent{
			OldManager: old,
			NewManager: manager,
		})
	})
}

func (uc *identifierUseCase) UpdateControllerByRecovery(
	ctx context.Context,
	id string,
	newController principal.Principal,
) (*domain.Record, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}
	if newController.IsZero() {
		return nil, domain.ErrControllerRequired
	}

	var record *domain.Record
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		manager, err := uc.repo.GetRecoveryManager(ctx)
		if err != nil {
			return err
		}
		if manager.IsZero() || manager != sender {
			return domain.ErrNotRecoveryManager
		}

		record, err = uc.repo.Get(ctx, domain.HashID(id))
		if err != nil {
			return err
		}

		old := record.Controller
		record.Controller = newController
		record.UpdatedAt = uc.clock.Now()
		if err := uc.repo.Update(ctx, record); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventControllerUpdated, domain.ControllerUpdatedEvent{
			IDHash:        record.IDHash,
			OldController: old,
			NewController: newController,
		})
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
