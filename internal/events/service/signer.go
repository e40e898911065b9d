// Package service provides event signing, signing key loading and the publishers
// the dispatcher forwards committed events to.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/allisson/trustregistry/internal/events/domain"
)

// EventSigner signs events when they are recorded and verifies them later.
type EventSigner interface {
	Sign(event *domain.Event) ([]byte, error)
	Verify(event *domain.Event) error
}

type hmacSigner struct {
	key []byte
}

// NewEventSigner creates an HMAC-SHA256 signer. The signing key is derived from
// the configured key material with HKDF-SHA256 so the raw key is never used directly.
func NewEventSigner(keyMaterial []byte) (EventSigner, error) {
	if len(keyMaterial) == 0 {
		return nil, domain.ErrSigningKeyRequired
	}

	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, keyMaterial, nil, []byte("registry-event-signing-v1"))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}

	return &hmacSigner{key: key}, nil
}

// canonicalize encodes the signed fields of an event.
// Format: id || len(event_type) event_type || len(payload) payload || created_at (unix nano)
func canonicalize(event *domain.Event) []byte {
	buf := make([]byte, 0, 64+len(event.EventType)+len(event.Payload))
	buf = append(buf, event.ID[:]...)
	buf = appendLengthPrefixed(buf, []byte(event.EventType))
	buf = appendLengthPrefixed(buf, []byte(event.Payload))
	buf = binary.BigEndian.AppendUint64(buf, uint64(event.CreatedAt.UnixNano()))
	return buf
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// Sign returns the 32-byte HMAC-SHA256 of the event's canonical form.
func (s *hmacSigner) Sign(event *domain.Event) ([]byte, error) {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(canonicalize(event))
	return mac.Sum(nil), nil
}

// Verify returns ErrSignatureInvalid when the stored signature does not match.
func (s *hmacSigner) Verify(event *domain.Event) error {
	expected, err := s.Sign(event)
	if err != nil {
		return err
	}
	if !hmac.Equal(event.Signature, expected) {
		return domain.ErrSignatureInvalid
	}
	return nil
}

// noopSigner leaves events unsigned. Used when no signing key is configured.
type noopSigner struct{}

// NewNoopSigner returns a signer that produces no signatures.
func NewNoopSigner() EventSigner {
	return noopSigner{}
}

func (noopSigner) Sign(*domain.Event) ([]byte, error) {
	return nil, nil
}

func (noopSigner) Verify(*domain.Event) error {
	return domain.ErrSigningKeyRequired
}
