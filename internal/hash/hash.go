// Package hash provides the fixed width 32-byte digest used to key credential
// anchors and identifier records.
package hash

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	apperrors "github.com/allisson/trustregistry/internal/errors"
)

// Size is the length of a Hash in bytes.
const Size = 32

// Hash is a 32-byte digest. It is rendered as 0x-prefixed lowercase hex.
type Hash [Size]byte

// ErrInvalidHash is returned when a string is not a 32-byte hex encoded digest.
var ErrInvalidHash = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid 32-byte hash")

// Parse decodes a hex encoded hash with an optional 0x prefix.
func Parse(s string) (Hash, error) {
	var h Hash

	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*Size {
		return h, ErrInvalidHash
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, ErrInvalidHash
	}
	return h, nil
}

// Keccak256 returns the legacy Keccak-256 digest of data.
func Keccak256(data []byte) Hash {
	var h Hash
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	hasher.Sum(h[:0])
	return h
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Value implements driver.Valuer. Hashes are stored as raw bytes.
func (h Hash) Value() (driver.Value, error) {
	return h[:], nil
}

// Scan implements sql.Scanner.
func (h *Hash) Scan(src any) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into hash", src)
	}
	if len(b) != Size {
		return fmt.Errorf("cannot scan %d bytes into hash", len(b))
	}
	copy(h[:], b)
	return nil
}
