// Package usecase implements the access control registry.
package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// PermissionRepository defines permission persistence operations.
type PermissionRepository interface {
	Get(ctx context.Context, key domain.Key) (*domain.Permission, error)
	Upsert(ctx context.Context, permission *domain.Permission) error
}

// AccessUseCase defines the access control operations. The sender is always the
// subject of the grants it writes.
type AccessUseCase interface {
	Grant(ctx context.Context, grant domain.Grant) (*domain.Permission, error)
	// GrantBatch applies every element or none. The slices must have equal length.
	GrantBatch(
		ctx context.Context,
		grantees []principal.Principal,
		attributes []string,
		expiries []int64,
		consentRefs []string,
	) ([]*domain.Permission, error)
	Revoke(ctx context.Context, revocation domain.Revocation) error
	RevokeBatch(ctx context.Context, grantees []principal.Principal, attributes []string) error
	HasAccess(ctx context.Context, key domain.Key) (bool, error)
	// GetPermission returns the stored permission or a zero permission for the key.
	GetPermission(ctx context.Context, key domain.Key) (*domain.Permission, error)
}
