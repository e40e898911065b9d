package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/principal"
)

func TestValidateGuardians(t *testing.T) {
	g1, g2 := principal.Principal("did:example:g1"), principal.Principal("did:example:g2")

	tests := []struct {
		name      string
		guardians []principal.Principal
		threshold int
		expected  error
	}{
		{name: "valid", guardians: []principal.Principal{g1, g2}, threshold: 2},
		{name: "empty", guardians: nil, threshold: 1, expected: ErrInvalidGuardianCount},
		{name: "zero threshold", guardians: []principal.Principal{g1}, threshold: 0, expected: ErrInvalidThreshold},
		{name: "threshold too high", guardians: []principal.Principal{g1, g2}, threshold: 3, expected: ErrInvalidThreshold},
		{name: "duplicate", guardians: []principal.Principal{g1, g1}, threshold: 1, expected: ErrDuplicateGuardian},
		{name: "blank guardian", guardians: []principal.Principal{g1, ""}, threshold: 1, expected: ErrInvalidGuardian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGuardians(tt.guardians, tt.threshold)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}

func TestGuardianSet(t *testing.T) {
	var set GuardianSet
	assert.False(t, set.Initialized())
	assert.False(t, set.ThresholdMet())

	set = GuardianSet{
		Guardians: []principal.Principal{"did:example:g1", "did:example:g2"},
		Threshold: 2,
		Epoch:     1,
	}
	assert.True(t, set.IsGuardian("did:example:g2"))
	assert.False(t, set.IsGuardian("did:example:mallory"))

	set.ApprovalsCount = 1
	assert.False(t, set.ThresholdMet())
	set.ApprovalsCount = 2
	assert.True(t, set.ThresholdMet())

	assert.ErrorIs(t, ErrInsufficientApprovals, errors.ErrInsufficientConsensus)
	assert.ErrorIs(t, ErrAlreadyApproved, errors.ErrAlreadyDone)
	assert.ErrorIs(t, ErrNotGuardian, errors.ErrForbidden)
}
