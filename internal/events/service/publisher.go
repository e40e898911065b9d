package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/allisson/trustregistry/internal/events/domain"
)

// EventPublisher forwards a committed event to an external sink.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
	Close(ctx context.Context) error
}

// Envelope is the wire representation of an event handed to publishers.
type Envelope struct {
	ID        string          `json:"id"`
	Sequence  int64           `json:"sequence"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Signature string          `json:"signature,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// MarshalEnvelope encodes an event as a JSON envelope.
func MarshalEnvelope(event *domain.Event) ([]byte, error) {
	payload := json.RawMessage(event.Payload)
	if !json.Valid(payload) {
		quoted, err := json.Marshal(event.Payload)
		if err != nil {
			return nil, err
		}
		payload = quoted
	}

	return json.Marshal(Envelope{
		ID:        event.ID.String(),
		Sequence:  event.Sequence,
		EventType: event.EventType,
		Payload:   payload,
		Signature: hex.EncodeToString(event.Signature),
		CreatedAt: event.CreatedAt.UTC(),
	})
}

// LogPublisher writes events to the structured log.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that logs each event at info level.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.Event) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "registry event",
		slog.String("event_id", event.ID.String()),
		slog.Int64("sequence", event.Sequence),
		slog.String("event_type", event.EventType),
		slog.Any("payload", payload),
	)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close(context.Context) error {
	return nil
}
