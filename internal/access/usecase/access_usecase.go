package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

type accessUseCase struct {
	txManager database.TxManager
	repo      PermissionRepository
	recorder  eventsUseCase.Recorder
	clock     clock.Clock
}

// NewAccessUseCase creates a new AccessUseCase.
func NewAccessUseCase(
	txManager database.TxManager,
	repo PermissionRepository,
	recorder eventsUseCase.Recorder,
	clk clock.Clock,
) AccessUseCase {
	return &accessUseCase{
		txManager: txManager,
		repo:      repo,
		recorder:  recorder,
		clock:     clk,
	}
}

func (uc *accessUseCase) Grant(ctx context.Context, grant domain.Grant) (*domain.Permission, error) {
	permissions, err := uc.grantAll(ctx, []domain.Grant{grant})
	if err != nil {
		return nil, err
	}
	return permissions[0], nil
}

func (uc *accessUseCase) GrantBatch(
	ctx context.Context,
	grantees []principal.Principal,
	attributes []string,
	expiries []int64,
	consentRefs []string,
) ([]*domain.Permission, error) {
	n := len(grantees)
	if len(attributes) != n || len(expiries) != n || len(consentRefs) != n {
		return nil, domain.ErrLengthMismatch
	}

	grants := make([]domain.Grant, n)
	for i := range grants {
		grants[i] = domain.Grant{
			Grantee:    grantees[i],
			Attribute:  attributes[i],
			Expiry:     expiries[i],
			ConsentRef: consentRefs[i],
		}
	}
	return uc.grantAll(ctx, grants)
}

// grantAll overwrites the permission of every grant in one transaction and
// records one event per element.
func (uc *accessUseCase) grantAll(ctx context.Context, grants []domain.Grant) ([]*domain.Permission, error) {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return nil, err
	}

	permissions := make([]*domain.Permission, 0, len(grants))
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()
		for _, grant := range grants {
			permission := &domain.Permission{
				Key:        domain.Key{Subject: sender, Grantee: grant.Grantee, Attribute: grant.Attribute},
				Granted:    true,
				Expiry:     grant.Expiry,
				ConsentRef: grant.ConsentRef,
				UpdatedAt:  now,
			}
			if err := uc.repo.Upsert(ctx, permission); err != nil {
				return err
			}

			err := uc.recorder.Record(ctx, domain.EventAccessGranted, domain.GrantedEvent{
				Subject:    sender,
				Grantee:    grant.Grantee,
				Attribute:  grant.Attribute,
				Expiry:     grant.Expiry,
				ConsentRef: grant.ConsentRef,
			})
			if err != nil {
				return err
			}
			permissions = append(permissions, permission)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return permissions, nil
}

func (uc *accessUseCase) Revoke(ctx context.Context, revocation domain.Revocation) error {
	return uc.revokeAll(ctx, []domain.Revocation{revocation})
}

func (uc *accessUseCase) RevokeBatch(
	ctx context.Context,
	grantees []principal.Principal,
	attributes []string,
) error {
	if len(grantees) != len(attributes) {
		return domain.ErrLengthMismatch
	}

	revocations := make([]domain.Revocation, len(grantees))
	for i := range revocations {
		revocations[i] = domain.Revocation{Grantee: grantees[i], Attribute: attributes[i]}
	}
	return uc.revokeAll(ctx, revocations)
}

// revokeAll clears every permission regardless of its prior state. The row is
// kept with granted=false, no expiry and no consent reference.
func (uc *accessUseCase) revokeAll(ctx context.Context, revocations []domain.Revocation) error {
	sender, err := principal.RequireSender(ctx)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()
		for _, revocation := range revocations {
			permission := &domain.Permission{
				Key:       domain.Key{Subject: sender, Grantee: revocation.Grantee, Attribute: revocation.Attribute},
				UpdatedAt: now,
			}
			if err := uc.repo.Upsert(ctx, permission); err != nil {
				return err
			}

			err := uc.recorder.Record(ctx, domain.EventAccessRevoked, domain.RevokedEvent{
				Subject:   sender,
				Grantee:   revocation.Grantee,
				Attribute: revocation.Attribute,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// HasAccess evaluates the stored permission against the current time.
func (uc *accessUseCase) HasAccess(ctx context.Context, key domain.Key) (bool, error) {
	permission, err := uc.GetPermission(ctx, key)
	if err != nil {
		return false, err
	}
	return permission.ActiveAt(uc.clock.Now()), nil
}

func (uc *accessUseCase) GetPermission(ctx context.Context, key domain.Key) (*domain.Permission, error) {
	permission, err := uc.repo.Get(ctx, key)
	if err != nil {
		if apperrors.Is(err, domain.ErrPermissionNotFound) {
			return &domain.Permission{Key: key}, nil
		}
		return nil, err
	}
	return permission, nil
}
