package repository

import (
	"context"
	"maps"
	"slices"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
)

// MemoryGuardianRepository keeps guardian sets and approvals in process memory.
type MemoryGuardianRepository struct {
	tx        *database.MemoryTxManager
	sets      map[principal.Principal]domain.GuardianSet
	approvals map[principal.Principal]map[principal.Principal]domain.Approval
}

// NewMemoryGuardianRepository creates a guardian repository bound to tx.
func NewMemoryGuardianRepository(tx *database.MemoryTxManager) *MemoryGuardianRepository {
	return &MemoryGuardianRepository{
		tx:        tx,
		sets:      make(map[principal.Principal]domain.GuardianSet),
		approvals: make(map[principal.Principal]map[principal.Principal]domain.Approval),
	}
}

// GetSet retrieves the guardian set of owner.
func (r *MemoryGuardianRepository) GetSet(
	ctx context.Context,
	owner principal.Principal,
) (*domain.GuardianSet, error) {
	var (
		set   domain.GuardianSet
		found bool
	)
	r.tx.Read(ctx, func() {
		set, found = r.sets[owner]
	})
	if !found {
		return nil, domain.ErrGuardiansNotSet
	}
	set.Guardians = slices.Clone(set.Guardians)
	return &set, nil
}

// SaveSet stores a copy of set, replacing any previous one.
func (r *MemoryGuardianRepository) SaveSet(ctx context.Context, set *domain.GuardianSet) error {
	stored := *set
	stored.Guardians = slices.Clone(set.Guardians)
	r.tx.Write(ctx, func() func() {
		return r.putSet(stored)
	})
	return nil
}

// UpdateBallot persists the epoch, approvals count and update time of a set.
func (r *MemoryGuardianRepository) UpdateBallot(ctx context.Context, set *domain.GuardianSet) error {
	var err error
	r.tx.Write(ctx, func() func() {
		stored, found := r.sets[set.Owner]
		if !found {
			err = domain.ErrGuardiansNotSet
			return nil
		}
		stored.Epoch = set.Epoch
		stored.ApprovalsCount = set.ApprovalsCount
		stored.UpdatedAt = set.UpdatedAt
		return r.putSet(stored)
	})
	return err
}

func (r *MemoryGuardianRepository) putSet(set domain.GuardianSet) func() {
	previous, existed := r.sets[set.Owner]
	r.sets[set.Owner] = set
	return func() {
		if existed {
			r.sets[set.Owner] = previous
			return
		}
		delete(r.sets, set.Owner)
	}
}

// CreateApproval records the vote of one guardian.
func (r *MemoryGuardianRepository) CreateApproval(ctx context.Context, approval *domain.Approval) error {
	var err error
	r.tx.Write(ctx, func() func() {
		ballot := r.approvals[approval.Owner]
		if _, voted := ballot[approval.Guardian]; voted {
			err = domain.ErrAlreadyApproved
			return nil
		}
		if ballot == nil {
			ballot = make(map[principal.Principal]domain.Approval)
			r.approvals[approval.Owner] = ballot
		}
		ballot[approval.Guardian] = *approval
		return func() { delete(ballot, approval.Guardian) }
	})
	return err
}

// HasApproval reports whether guardian approved the recovery of owner.
func (r *MemoryGuardianRepository) HasApproval(
	ctx context.Context,
	owner, guardian principal.Principal,
) (bool, error) {
	var voted bool
	r.tx.Read(ctx, func() {
		_, voted = r.approvals[owner][guardian]
	})
	return voted, nil
}

// DeleteApprovals removes every approval cast for owner.
func (r *MemoryGuardianRepository) DeleteApprovals(ctx context.Context, owner principal.Principal) error {
	r.tx.Write(ctx, func() func() {
		previous, existed := r.approvals[owner]
		if !existed {
			return nil
		}
		delete(r.approvals, owner)
		previous = maps.Clone(previous)
		return func() { r.approvals[owner] = previous }
	})
	return nil
}
