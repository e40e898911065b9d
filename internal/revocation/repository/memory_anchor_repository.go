package repository

import (
	"context"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/revocation/domain"
)

// MemoryAnchorRepository keeps credential anchors in process memory.
type MemoryAnchorRepository struct {
	tx      *database.MemoryTxManager
	anchors map[hash.Hash]domain.Anchor
}

// NewMemoryAnchorRepository creates an anchor repository bound to tx.
func NewMemoryAnchorRepository(tx *database.MemoryTxManager) *MemoryAnchorRepository {
	return &MemoryAnchorRepository{tx: tx, anchors: make(map[hash.Hash]domain.Anchor)}
}

// Create inserts a new credential anchor.
func (r *MemoryAnchorRepository) Create(ctx context.Context, anchor *domain.Anchor) error {
	var err error
	r.tx.Write(ctx, func() func() {
		if _, exists := r.anchors[anchor.Hash]; exists {
			err = domain.ErrAlreadyAnchored
			return nil
		}
		r.anchors[anchor.Hash] = *anchor
		return func() { delete(r.anchors, anchor.Hash) }
	})
	return err
}

// Get retrieves a credential anchor by hash.
func (r *MemoryAnchorRepository) Get(ctx context.Context, h hash.Hash) (*domain.Anchor, error) {
	var (
		anchor domain.Anchor
		found  bool
	)
	r.tx.Read(ctx, func() {
		anchor, found = r.anchors[h]
	})
	if !found {
		return nil, domain.ErrNotAnchored
	}
	return &anchor, nil
}

// MarkRevoked sets the revoked flag of an anchor.
func (r *MemoryAnchorRepository) MarkRevoked(ctx context.Context, h hash.Hash) error {
	var err error
	r.tx.Write(ctx, func() func() {
		anchor, found := r.anchors[h]
		if !found {
			err = domain.ErrNotAnchored
			return nil
		}
		previous := anchor
		anchor.Revoked = true
		r.anchors[h] = anchor
		return func() { r.anchors[h] = previous }
	})
	return err
}
