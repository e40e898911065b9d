package repository

import (
	"context"

	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/ownership/domain"
)

// MemoryOwnershipRepository keeps registry owners in process memory.
type MemoryOwnershipRepository struct {
	tx     *database.MemoryTxManager
	owners map[domain.Registry]domain.Ownership
}

// NewMemoryOwnershipRepository creates an ownership repository bound to tx.
func NewMemoryOwnershipRepository(tx *database.MemoryTxManager) *MemoryOwnershipRepository {
	return &MemoryOwnershipRepository{tx: tx, owners: make(map[domain.Registry]domain.Ownership)}
}

// Get retrieves the owner of a registry.
func (r *MemoryOwnershipRepository) Get(
	ctx context.Context,
	registry domain.Registry,
) (*domain.Ownership, error) {
	var (
		ownership domain.Ownership
		found     bool
	)
	r.tx.Read(ctx, func() {
		ownership, found = r.owners[registry]
	})
	if !found {
		return nil, domain.ErrOwnershipNotFound
	}
	return &ownership, nil
}

// Create inserts the first owner of a registry.
func (r *MemoryOwnershipRepository) Create(ctx context.Context, ownership *domain.Ownership) error {
	var err error
	r.tx.Write(ctx, func() func() {
		if _, exists := r.owners[ownership.Registry]; exists {
			err = apperrors.Wrap(apperrors.ErrConflict, "registry owner already recorded")
			return nil
		}
		r.owners[ownership.Registry] = *ownership
		return func() { delete(r.owners, ownership.Registry) }
	})
	return err
}

// Update replaces the owner of a registry.
func (r *MemoryOwnershipRepository) Update(ctx context.Context, ownership *domain.Ownership) error {
	r.tx.Write(ctx, func() func() {
		previous, existed := r.owners[ownership.Registry]
		r.owners[ownership.Registry] = *ownership
		return func() {
			if existed {
				r.owners[ownership.Registry] = previous
				return
			}
			delete(r.owners, ownership.Registry)
		}
	})
	return nil
}
