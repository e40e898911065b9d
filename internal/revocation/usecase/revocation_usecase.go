package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/revocation/domain"
)

type revocationUseCase struct {
	txManager database.TxManager
	repo      AnchorRepository
	recorder  eventsUseCase.Recorder
	clock     clock.Clock
}

// NewRevocationUseCase creates a new RevocationUseCase.
func NewRevocationUseCase(
	txManager database.TxManager,
	repo AnchorRepository,
	recorder eventsUseCase.Recorder,
	clk clock.Clock,
) RevocationUseCase {
	return &revocationUseCase{
		txManager: txManager,
		repo:      repo,
		recorder:  recorder,
		clock:     clk,
	}
}

// AnchorCredential records the sender as the issuer of record for h.
func (uc *revocationUseCase) AnchorCredential(
	ctx context.Context,
	h hash.Hash,
	contentRef string,
) (*domain.Anchor, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}

	anchor := &domain.Anchor{Hash: h, Issuer: sender, ContentRef: contentRef}
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		anchor.AnchoredAt = uc.clock.Now()
		if err := uc.repo.Create(ctx, anchor); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventCredentialAnchored, domain.AnchoredEvent{
			Hash:       h,
			Issuer:     sender,
			ContentRef: contentRef,
		})
	})
	if err != nil {
		return nil, err
	}

	return anchor, nil
}

// RevokeCredential flips the revoked flag of an anchor. Only the anchoring issuer
// may do so, and only once.
func (uc *revocationUseCase) RevokeCredential(ctx context.Context, h hash.Hash, reason string) error {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		anchor, err := uc.repo.Get(ctx, h)
		if err != nil {
			return err
		}
		if anchor.Issuer != sender {
			return domain.ErrNotIssuer
		}
		if anchor.Revoked {
			return domain.ErrAlreadyRevoked
		}

		if err := uc.repo.MarkRevoked(ctx, h); err != nil {
			return err
		}

		return uc.recorder.Record(ctx, domain.EventCredentialRevoked, domain.RevokedEvent{
			Hash:   h,
			Issuer: sender,
			Reason: reason,
		})
	})
}

func (uc *revocationUseCase) IsRevoked(ctx context.Context, h hash.Hash) (bool, error) {
	anchor, err := uc.GetAnchor(ctx, h)
	if err != nil {
		return false, err
	}
	return anchor.Revoked, nil
}

func (uc *revocationUseCase) GetAnchor(ctx context.Context, h hash.Hash) (*domain.Anchor, error) {
	anchor, err := uc.repo.Get(ctx, h)
	if err != nil {
		if apperrors.Is(err, domain.ErrNotAnchored) {
			return &domain.Anchor{Hash: h}, nil
		}
		return nil, err
	}
	return anchor, nil
}
