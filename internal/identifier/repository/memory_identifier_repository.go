package repository

import (
	"context"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// MemoryIdentifierRepository keeps identifier records in process memory.
type MemoryIdentifierRepository struct {
	tx              *database.MemoryTxManager
	records         map[hash.Hash]domain.Record
	byRegistrant    map[principal.Principal][]hash.Hash
	recoveryManager principal.Principal
}

// NewMemoryIdentifierRepository creates an identifier repository bound to tx.
func NewMemoryIdentifierRepository(tx *database.MemoryTxManager) *MemoryIdentifierRepository {
	return &MemoryIdentifierRepository{
		tx:           tx,
		records:      make(map[hash.Hash]domain.Record),
		byRegistrant: make(map[principal.Principal][]hash.Hash),
	}
}

// Create inserts a new identifier record.
func (r *MemoryIdentifierRepository) Create(ctx context.Context, record *domain.Record) error {
	var err error
	r.tx.Write(ctx, func() func() {
		if _, exists := r.records[record.IDHash]; exists {
			err = domain.ErrAlreadyRegistered
			return nil
		}
		r.records[record.IDHash] = *record
		r.byRegistrant[record.Registrant] = append(r.byRegistrant[record.Registrant], record.IDHash)
		return func() {
			delete(r.records, record.IDHash)
			hashes := r.byRegistrant[record.Registrant]
			r.byRegistrant[record.Registrant] = hashes[:len(hashes)-1]
		}
	})
	return err
}

// Get retrieves an identifier record by hash.
func (r *MemoryIdentifierRepository) Get(ctx context.Context, idHash hash.Hash) (*domain.Record, error) {
	var (
		record domain.Record
		found  bool
	)
	r.tx.Read(ctx, func() {
		record, found = r.records[idHash]
	})
	if !found {
		return nil, domain.ErrUnknownIdentifier
	}
	return &record, nil
}

// Update overwrites the mutable fields of an identifier record.
func (r *MemoryIdentifierRepository) Update(ctx context.Context, record *domain.Record) error {
	var err error
	r.tx.Write(ctx, func() func() {
		previous, found := r.records[record.IDHash]
		if !found {
			err = domain.ErrUnknownIdentifier
			return nil
		}
		updated := previous
		updated.Controller = record.Controller
		updated.DocumentRef = record.DocumentRef
		updated.PublicKey = record.PublicKey
		updated.UpdatedAt = record.UpdatedAt
		r.records[record.IDHash] = updated
		return func() { r.records[record.IDHash] = previous }
	})
	return err
}

// ListByRegistrant returns the records registered by registrant in registration order.
func (r *MemoryIdentifierRepository) ListByRegistrant(
	ctx context.Context,
	registrant principal.Principal,
	offset, limit int,
) ([]*domain.Record, error) {
	records := make([]*domain.Record, 0)
	r.tx.Read(ctx, func() {
		hashes := r.byRegistrant[registrant]
		for i := offset; i < len(hashes) && len(records) < limit; i++ {
			record := r.records[hashes[i]]
			records = append(records, &record)
		}
	})
	return records, nil
}

// GetRecoveryManager returns the configured recovery manager.
func (r *MemoryIdentifierRepository) GetRecoveryManager(ctx context.Context) (principal.Principal, error) {
	var manager principal.Principal
	r.tx.Read(ctx, func() {
		manager = r.recoveryManager
	})
	return manager, nil
}

// SetRecoveryManager stores the recovery manager.
func (r *MemoryIdentifierRepository) SetRecoveryManager(
	ctx context.Context,
	manager principal.Principal,
	_ int64,
) error {
	r.tx.Write(ctx, func() func() {
		previous := r.recoveryManager
		r.recoveryManager = manager
		return func() { r.recoveryManager = previous }
	})
	return nil
}
