package repository

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/events/domain"
)

// MemoryEventRepository keeps the event log in process memory.
type MemoryEventRepository struct {
	tx      *database.MemoryTxManager
	events  []*domain.Event
	nextSeq int64
}

// NewMemoryEventRepository creates an event repository bound to tx.
func NewMemoryEventRepository(tx *database.MemoryTxManager) *MemoryEventRepository {
	return &MemoryEventRepository{tx: tx, nextSeq: 1}
}

// Create appends a copy of the event and assigns its sequence.
func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.tx.Write(ctx, func() func() {
		event.Sequence = r.nextSeq
		event.UpdatedAt = event.CreatedAt
		stored := *event
		r.events = append(r.events, &stored)
		r.nextSeq++
		return func() {
			r.events = r.events[:len(r.events)-1]
			r.nextSeq--
		}
	})
	return nil
}

// GetPending returns up to limit pending events in sequence order.
func (r *MemoryEventRepository) GetPending(ctx context.Context, limit int) ([]*domain.Event, error) {
	result := make([]*domain.Event, 0)
	r.tx.Read(ctx, func() {
		for _, event := range r.events {
			if len(result) >= limit {
				break
			}
			if event.Status == domain.StatusPending {
				copied := *event
				result = append(result, &copied)
			}
		}
	})
	return result, nil
}

// List returns events in sequence order.
func (r *MemoryEventRepository) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	result := make([]*domain.Event, 0)
	r.tx.Read(ctx, func() {
		for i := offset; i < len(r.events) && len(result) < limit; i++ {
			copied := *r.events[i]
			result = append(result, &copied)
		}
	})
	return result, nil
}

// Update stores the delivery status of an event.
func (r *MemoryEventRepository) Update(ctx context.Context, event *domain.Event) error {
	r.tx.Write(ctx, func() func() {
		for _, stored := range r.events {
			if stored.ID != event.ID {
				continue
			}
			previous := *stored
			stored.Status = event.Status
			stored.Retries = event.Retries
			stored.LastError = event.LastError
			stored.ProcessedAt = event.ProcessedAt
			stored.UpdatedAt = time.Now().UTC()
			return func() { *stored = previous }
		}
		return nil
	})
	return nil
}
