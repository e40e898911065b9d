// Package domain defines the registry event log entities. Every state change of
// every registry appends exactly one event, written in the same transaction as
// the change itself.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/trustregistry/internal/errors"
)

// Status is the delivery status of an event towards the configured publisher.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"
)

// Event is one entry of the append-only registry event log.
type Event struct {
	ID          uuid.UUID
	Sequence    int64
	EventType   string
	Payload     string
	Signature   []byte
	Status      Status
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSigned reports whether the event carries a signature.
func (e *Event) IsSigned() bool {
	return len(e.Signature) > 0
}

// VerificationReport summarizes an integrity check over the event log.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidEvents []uuid.UUID
}

var (
	// ErrSignatureInvalid indicates the event content does not match its signature.
	ErrSignatureInvalid = errors.New("event signature is invalid")

	// ErrSigningKeyRequired indicates an operation needs a configured signing key.
	ErrSigningKeyRequired = errors.Wrap(errors.ErrInvalidInput, "event signing key is required")
)
