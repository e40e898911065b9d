// Package usecase implements the issuer trust list.
package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/issuer/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// IssuerRepository defines issuer persistence operations.
type IssuerRepository interface {
	Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error)
	Upsert(ctx context.Context, issuer *domain.Issuer) error
}

// IssuerUseCase defines the issuer trust list operations.
type IssuerUseCase interface {
	AddIssuer(ctx context.Context, issuer principal.Principal, metadataRef string) (*domain.Issuer, error)
	RemoveIssuer(ctx context.Context, issuer principal.Principal) error
	IsTrusted(ctx context.Context, issuer principal.Principal) (bool, error)
	GetMetadataRef(ctx context.Context, issuer principal.Principal) (string, error)
	// Get returns the full entry, or an untrusted zero entry for unknown issuers.
	Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error)
}
