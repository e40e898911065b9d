// Package dto provides data transfer objects for the event log API.
package dto

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/allisson/trustregistry/internal/events/domain"
)

// EventResponse represents one event in API responses.
type EventResponse struct {
	ID          string          `json:"id"`
	Sequence    int64           `json:"sequence"`
	EventType   string          `json:"event_type"`
	Payload     json.RawMessage `json:"payload"`
	Signature   string          `json:"signature,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

// ListEventsResponse represents a page of the event log.
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEventsToListResponse converts domain events to a list response.
func MapEventsToListResponse(events []*domain.Event) ListEventsResponse {
	data := make([]EventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, EventResponse{
			ID:          event.ID.String(),
			Sequence:    event.Sequence,
			EventType:   event.EventType,
			Payload:     json.RawMessage(event.Payload),
			Signature:   hex.EncodeToString(event.Signature),
			Status:      string(event.Status),
			CreatedAt:   event.CreatedAt,
			ProcessedAt: event.ProcessedAt,
		})
	}
	return ListEventsResponse{Data: data}
}
