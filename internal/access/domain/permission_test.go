package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermission_ActiveAt(t *testing.T) {
	tests := []struct {
		name       string
		permission Permission
		now        int64
		expected   bool
	}{
		{name: "granted without expiry", permission: Permission{Granted: true}, now: 1 << 40, expected: true},
		{name: "granted before expiry", permission: Permission{Granted: true, Expiry: 100}, now: 99, expected: true},
		{name: "expiry is exclusive", permission: Permission{Granted: true, Expiry: 100}, now: 100, expected: false},
		{name: "expired", permission: Permission{Granted: true, Expiry: 100}, now: 101, expected: false},
		{name: "revoked", permission: Permission{Expiry: 0}, now: 1, expected: false},
		{name: "revoked with future expiry", permission: Permission{Expiry: 500}, now: 1, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.permission.ActiveAt(tt.now))
		})
	}
}
