// Package usecase implements recording, listing, verification and dispatch of
// registry events.
package usecase

import (
	"context"

	"github.com/allisson/trustregistry/internal/events/domain"
)

// EventRepository defines event log persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetPending(ctx context.Context, limit int) ([]*domain.Event, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
}

// Recorder appends one event to the log. It must be called inside the
// transaction of the state change the event describes.
type Recorder interface {
	Record(ctx context.Context, eventType string, payload any) error
}

// EventUseCase exposes the event log to observers.
type EventUseCase interface {
	List(ctx context.Context, offset, limit int) ([]*domain.Event, error)
	Verify(ctx context.Context) (*domain.VerificationReport, error)
}

// Dispatcher forwards committed events to the configured publisher.
type Dispatcher interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}
