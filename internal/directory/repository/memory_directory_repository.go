package repository

import (
	"context"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/directory/domain"
)

// MemoryDirectoryRepository keeps the directory in process memory.
type MemoryDirectoryRepository struct {
	tx        *database.MemoryTxManager
	addresses *domain.Addresses
}

// NewMemoryDirectoryRepository creates a directory repository bound to tx.
func NewMemoryDirectoryRepository(tx *database.MemoryTxManager) *MemoryDirectoryRepository {
	return &MemoryDirectoryRepository{tx: tx}
}

func (r *MemoryDirectoryRepository) Get(ctx context.Context) (*domain.Addresses, error) {
	var addresses *domain.Addresses
	r.tx.Read(ctx, func() {
		if r.addresses != nil {
			stored := *r.addresses
			addresses = &stored
		}
	})
	if addresses == nil {
		return nil, domain.ErrDirectoryNotSet
	}
	return addresses, nil
}

func (r *MemoryDirectoryRepository) Upsert(ctx context.Context, addresses *domain.Addresses) error {
	stored := *addresses
	r.tx.Write(ctx, func() func() {
		previous := r.addresses
		r.addresses = &stored
		return func() { r.addresses = previous }
	})
	return nil
}
