// Package usecase implements the directory hub.
package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/directory/domain"
)

// DirectoryRepository defines directory persistence operations.
type DirectoryRepository interface {
	// Get returns domain.ErrDirectoryNotSet until addresses are first stored.
	Get(ctx context.Context) (*domain.Addresses, error)
	Upsert(ctx context.Context, addresses *domain.Addresses) error
}

// DirectoryUseCase defines the directory hub operations.
type DirectoryUseCase interface {
	SetAddresses(ctx context.Context, addresses domain.Addresses) (*domain.Addresses, error)
	// GetAddresses returns zero addresses when none were set.
	GetAddresses(ctx context.Context) (*domain.Addresses, error)
}
