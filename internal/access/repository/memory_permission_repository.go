package repository

import (
	"context"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/database"
)

// MemoryPermissionRepository keeps permissions in process memory.
type MemoryPermissionRepository struct {
	tx          *database.MemoryTxManager
	permissions map[domain.Key]domain.Permission
}

// NewMemoryPermissionRepository creates a permission repository bound to tx.
func NewMemoryPermissionRepository(tx *database.MemoryTxManager) *MemoryPermissionRepository {
	return &MemoryPermissionRepository{tx: tx, permissions: make(map[domain.Key]domain.Permission)}
}

// Get retrieves the permission stored for key.
func (r *MemoryPermissionRepository) Get(ctx context.Context, key domain.Key) (*domain.Permission, error) {
	var (
		permission domain.Permission
		found      bool
	)
	r.tx.Read(ctx, func() {
		permission, found = r.permissions[key]
	})
	if !found {
		return nil, domain.ErrPermissionNotFound
	}
	return &permission, nil
}

// Upsert overwrites the permission stored for its key.
func (r *MemoryPermissionRepository) Upsert(ctx context.Context, permission *domain.Permission) error {
	r.tx.Write(ctx, func() func() {
		previous, existed := r.permissions[permission.Key]
		r.permissions[permission.Key] = *permission
		return func() {
			if existed {
				r.permissions[permission.Key] = previous
				return
			}
			delete(r.permissions, permission.Key)
		}
	})
	return nil
}
