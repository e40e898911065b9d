package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/issuer/domain"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	ownershipUseCase "github.com/allisson/trustregistry/internal/ownership/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

type issuerUseCase struct {
	txManager database.TxManager
	repo      IssuerRepository
	ownership ownershipUseCase.OwnershipUseCase
	recorder  eventsUseCase.Recorder
	clock     clock.Clock
}

// NewIssuerUseCase creates a new IssuerUseCase.
func NewIssuerUseCase(
	txManager database.TxManager,
	repo IssuerRepository,
	ownership ownershipUseCase.OwnershipUseCase,
	recorder eventsUseCase.Recorder,
	clk clock.Clock,
) IssuerUseCase {
	return &issuerUseCase{
		txManager: txManager,
		repo:      repo,
		ownership: ownership,
		recorder:  recorder,
		clock:     clk,
	}
}

// AddIssuer lists issuer as trusted, overwriting the metadata of an existing entry.
func (uc *issuerUseCase) AddIssuer(
	ctx context.Context,
	issuer principal.Principal,
	metadataRef string,
) (*domain.Issuer, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}

	entry := &domain.Issuer{Issuer: issuer, Trusted: true, MetadataRef: metadataRef}
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.ownership.RequireOwner(ctx, ownershipDomain.RegistryIssuer, sender); err != nil {
			return err
		}

		entry.UpdatedAt = uc.clock.Now()
		if err := uc.repo.Upsert(ctx, entry); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventIssuerAdded, domain.AddedEvent{
			Issuer:      issuer,
			MetadataRef: metadataRef,
		})
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// RemoveIssuer clears the trusted flag and metadata of issuer.
func (uc *issuerUseCase) RemoveIssuer(ctx context.Context, issuer principal.Principal) error {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.ownership.RequireOwner(ctx, ownershipDomain.RegistryIssuer, sender); err != nil {
			return err
		}

		entry := &domain.Issuer{Issuer: issuer, UpdatedAt: uc.clock.Now()}
		if err := uc.repo.Upsert(ctx, entry); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventIssuerRemoved, domain.RemovedEvent{Issuer: issuer})
	})
}

func (uc *issuerUseCase) IsTrusted(ctx context.Context, issuer principal.Principal) (bool, error) {
	entry, err := uc.Get(ctx, issuer)
	if err != nil {
		return false, err
	}
	return entry.Trusted, nil
}

func (uc *issuerUseCase) GetMetadataRef(ctx context.Context, issuer principal.Principal) (string, error) {
	entry, err := uc.Get(ctx, issuer)
	if err != nil {
		return "", err
	}
	return entry.MetadataRef, nil
}

func (uc *issuerUseCase) Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error) {
	entry, err := uc.repo.Get(ctx, issuer)
	if err != nil {
		if apperrors.Is(err, domain.ErrIssuerNotFound) {
			return &domain.Issuer{Issuer: issuer}, nil
		}
		return nil, err
	}
	return entry, nil
}
