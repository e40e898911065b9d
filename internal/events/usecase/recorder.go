package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/events/domain"
	"github.com/allisson/trustregistry/internal/events/service"
)

type recorder struct {
	repo   EventRepository
	signer service.EventSigner
	now    func() time.Time
}

// NewRecorder creates a Recorder that signs every event before storing it.
func NewRecorder(repo EventRepository, signer service.EventSigner) Recorder {
	return &recorder{
		repo:   repo,
		signer: signer,
		now:    time.Now,
	}
}

// Record marshals payload to JSON and appends a pending event.
func (r *recorder) Record(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal event payload")
	}

	// Stored timestamps keep microsecond precision; signing must see the same value.
	event := &domain.Event{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(body),
		Status:    domain.StatusPending,
		CreatedAt: r.now().UTC().Truncate(time.Microsecond),
	}

	signature, err := r.signer.Sign(event)
	if err != nil {
		return apperrors.Wrap(err, "failed to sign event")
	}
	event.Signature = signature

	return apperrors.Wrap(r.repo.Create(ctx, event), "failed to record event")
}
