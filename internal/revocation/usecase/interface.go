// Package usecase implements the credential revocation registry.
package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/revocation/domain"
)

// AnchorRepository defines credential anchor persistence operations.
type AnchorRepository interface {
	// Create inserts a new anchor, returning domain.ErrAlreadyAnchored on a duplicate hash.
	Create(ctx context.Context, anchor *domain.Anchor) error
	// Get returns domain.ErrNotAnchored for unknown hashes. Inside a transaction
	// the row stays locked until commit.
	Get(ctx context.Context, h hash.Hash) (*domain.Anchor, error)
	MarkRevoked(ctx context.Context, h hash.Hash) error
}

// RevocationUseCase defines the revocation registry operations.
type RevocationUseCase interface {
	AnchorCredential(ctx context.Context, h hash.Hash, contentRef string) (*domain.Anchor, error)
	RevokeCredential(ctx context.Context, h hash.Hash, reason string) error
	IsRevoked(ctx context.Context, h hash.Hash) (bool, error)
	// GetAnchor returns the anchor, or a zero anchor carrying only the hash when unknown.
	GetAnchor(ctx context.Context, h hash.Hash) (*domain.Anchor, error)
}
