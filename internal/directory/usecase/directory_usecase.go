package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/directory/domain"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	ownershipUseCase "github.com/allisson/trustregistry/internal/ownership/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

type directoryUseCase struct {
	txManager database.TxManager
	repo      DirectoryRepository
	ownership ownershipUseCase.OwnershipUseCase
	recorder  eventsUseCase.Recorder
	clock     clock.Clock
}

// NewDirectoryUseCase creates a new DirectoryUseCase.
func NewDirectoryUseCase(
	txManager database.TxManager,
	repo DirectoryRepository,
	ownership ownershipUseCase.OwnershipUseCase,
	recorder eventsUseCase.Recorder,
	clk clock.Clock,
) DirectoryUseCase {
	return &directoryUseCase{
		txManager: txManager,
		repo:      repo,
		ownership: ownership,
		recorder:  recorder,
		clock:     clk,
	}
}

// SetAddresses overwrites all five references. Only the directory owner may do so.
func (uc *directoryUseCase) SetAddresses(
	ctx context.Context,
	addresses domain.Addresses,
) (*domain.Addresses, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.ownership.RequireOwner(ctx, ownershipDomain.RegistryDirectory, sender); err != nil {
			return err
		}

		addresses.UpdatedAt = uc.clock.Now()
		if err := uc.repo.Upsert(ctx, &addresses); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventAddressesSet, domain.AddressesSetEvent{
			IdentifierRegistry: addresses.IdentifierRegistry,
			AccessControl:      addresses.AccessControl,
			Recovery:           addresses.Recovery,
			Revocation:         addresses.Revocation,
			IssuerRegistry:     addresses.IssuerRegistry,
		})
	})
	if err != nil {
		return nil, err
	}

	return &addresses, nil
}

func (uc *directoryUseCase) GetAddresses(ctx context.Context) (*domain.Addresses, error) {
	addresses, err := uc.repo.Get(ctx)
	if err != nil {
		if apperrors.Is(err, domain.ErrDirectoryNotSet) {
			return &domain.Addresses{}, nil
		}
		return nil, err
	}
	return addresses, nil
}
