// Package usecase implements the identifier registry.
package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// IdentifierRepository defines identifier record persistence operations.
type IdentifierRepository interface {
	// Create inserts a record, returning domain.ErrAlreadyRegistered on a duplicate.
	Create(ctx context.Context, record *domain.Record) error
	// Get returns domain.ErrUnknownIdentifier for unknown hashes. Inside a
	// transaction the row stays locked until commit.
	Get(ctx context.Context, idHash hash.Hash) (*domain.Record, error)
	Update(ctx context.Context, record *domain.Record) error
	// ListByRegistrant returns records in registration order.
	ListByRegistrant(
		ctx context.Context,
		registrant principal.Principal,
		offset, limit int,
	) ([]*domain.Record, error)
	// GetRecoveryManager returns the zero principal when none was set.
	GetRecoveryManager(ctx context.Context) (principal.Principal, error)
	SetRecoveryManager(ctx context.Context, manager principal.Principal, updatedAt int64) error
}

// IdentifierUseCase defines the identifier registry operations.
type IdentifierUseCase interface {
	Register(ctx context.Context, id, documentRef, publicKey string) (*domain.Record, error)
	Update(ctx context.Context, id, documentRef, publicKey string) (*domain.Record, error)
	Resolve(ctx context.Context, id string) (*domain.Record, error)
	ListByController(
		ctx context.Context,
		controller principal.Principal,
		offset, limit int,
	) ([]*domain.Record, error)
	RecoveryManager(ctx context.Context) (principal.Principal, error)
	SetRecoveryManager(ctx context.Context, manager principal.Principal) error
	// UpdateControllerByRecovery is the only way to change a controller without
	// its consent. It joins the caller's transaction when there is one.
	UpdateControllerByRecovery(
		ctx context.Context,
		id string,
		newController principal.Principal,
	) (*domain.Record, error)
}
