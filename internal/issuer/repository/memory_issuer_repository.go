package repository

import (
	"context"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/issuer/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// MemoryIssuerRepository keeps the issuer trust list in process memory.
type MemoryIssuerRepository struct {
	tx      *database.MemoryTxManager
	issuers map[principal.Principal]domain.Issuer
}

// NewMemoryIssuerRepository creates an issuer repository bound to tx.
func NewMemoryIssuerRepository(tx *database.MemoryTxManager) *MemoryIssuerRepository {
	return &MemoryIssuerRepository{tx: tx, issuers: make(map[principal.Principal]domain.Issuer)}
}

// Get retrieves an issuer entry.
func (r *MemoryIssuerRepository) Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error) {
	var (
		entry domain.Issuer
		found bool
	)
	r.tx.Read(ctx, func() {
		entry, found = r.issuers[issuer]
	})
	if !found {
		return nil, domain.ErrIssuerNotFound
	}
	return &entry, nil
}

// Upsert inserts or overwrites an issuer entry.
func (r *MemoryIssuerRepository) Upsert(ctx context.Context, entry *domain.Issuer) error {
	r.tx.Write(ctx, func() func() {
		previous, existed := r.issuers[entry.Issuer]
		r.issuers[entry.Issuer] = *entry
		return func() {
			if existed {
				r.issuers[entry.Issuer] = previous
				return
			}
			delete(r.issuers, entry.Issuer)
		}
	})
	return nil
}
