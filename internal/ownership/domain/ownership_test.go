package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/trustregistry/internal/errors"
)

func TestRegistry_Validate(t *testing.T) {
	for _, registry := range Registries {
		assert.NoError(t, registry.Validate(), registry)
	}

	err := Registry("access").Validate()
	assert.ErrorIs(t, err, ErrUnknownRegistry)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestErrors(t *testing.T) {
	assert.ErrorIs(t, ErrNotOwner, errors.ErrForbidden)
	assert.ErrorIs(t, ErrOwnerRequired, errors.ErrInvalidInput)
	assert.ErrorIs(t, ErrOwnershipNotFound, errors.ErrNotFound)
}
