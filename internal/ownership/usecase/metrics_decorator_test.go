package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/ownership/usecase/mocks"
	"github.com/allisson/trustregistry/internal/principal"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestOwnershipUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Bootstrap success", func(t *testing.T) {
		next := &mocks.MockOwnershipUseCase{}
		m := &mockBusinessMetrics{}
		expected := &domain.Ownership{Registry: domain.RegistryIssuer, Owner: "admin"}

		next.On("Bootstrap", ctx, domain.RegistryIssuer, principal.Principal("admin")).Return(expected, nil)
		m.On("RecordOperation", ctx, "ownership", "ownership_bootstrap", "success").Once()
		m.On("RecordDuration", ctx, "ownership", "ownership_bootstrap", mock.AnythingOfType("time.Duration"), "success").
			Once()

		result, err := NewOwnershipUseCaseWithMetrics(next, m).Bootstrap(ctx, domain.RegistryIssuer, "admin")
		assert.NoError(t, err)
		assert.Equal(t, expected, result)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("TransferOwnership error", func(t *testing.T) {
		next := &mocks.MockOwnershipUseCase{}
		m := &mockBusinessMetrics{}

		next.On("TransferOwnership", ctx, domain.RegistryIssuer, principal.Principal("ops")).
			Return(nil, domain.ErrNotOwner)
		m.On("RecordOperation", ctx, "ownership", "ownership_transfer", "error").Once()
		m.On("RecordDuration", ctx, "ownership", "ownership_transfer", mock.AnythingOfType("time.Duration"), "error").
			Once()

		result, err := NewOwnershipUseCaseWithMetrics(next, m).TransferOwnership(ctx, domain.RegistryIssuer, "ops")
		assert.ErrorIs(t, err, domain.ErrNotOwner)
		assert.Nil(t, result)
		m.AssertExpectations(t)
	})

	t.Run("Owner error", func(t *testing.T) {
		next := &mocks.MockOwnershipUseCase{}
		m := &mockBusinessMetrics{}

		next.On("Owner", ctx, domain.RegistryIssuer).Return(principal.Zero, errors.New("db down"))
		m.On("RecordOperation", ctx, "ownership", "ownership_get", "error").Once()
		m.On("RecordDuration", ctx, "ownership", "ownership_get", mock.AnythingOfType("time.Duration"), "error").
			Once()

		_, err := NewOwnershipUseCaseWithMetrics(next, m).Owner(ctx, domain.RegistryIssuer)
		assert.Error(t, err)
		m.AssertExpectations(t)
	})

	t.Run("RequireOwner is passed through", func(t *testing.T) {
		next := &mocks.MockOwnershipUseCase{}
		m := &mockBusinessMetrics{}

		next.On("RequireOwner", ctx, domain.RegistryIssuer, principal.Principal("admin")).Return(nil)

		assert.NoError(t, NewOwnershipUseCaseWithMetrics(next, m).RequireOwner(ctx, domain.RegistryIssuer, "admin"))
		m.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
