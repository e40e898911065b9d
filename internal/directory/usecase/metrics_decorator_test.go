package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/directory/domain"
	"github.com/allisson/trustregistry/internal/directory/usecase/mocks"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
)

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

func TestDirectoryUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	next := &mocks.MockDirectoryUseCase{}
	next.On("SetAddresses", ctx, addresses()).Return(nil, ownershipDomain.ErrNotOwner).Once()
	next.On("GetAddresses", ctx).Return(&domain.Addresses{}, nil).Once()

	m := &mockBusinessMetrics{}
	m.On("RecordOperation", ctx, "directory", "directory_set_addresses", "error").Once()
	m.On("RecordDuration", ctx, "directory", "directory_set_addresses", mock.AnythingOfType("time.Duration"), "error").
		Once()
	m.On("RecordOperation", ctx, "directory", "directory_get_addresses", "success").Once()
	m.On("RecordDuration", ctx, "directory", "directory_get_addresses", mock.AnythingOfType("time.Duration"), "success").
		Once()

	uc := NewDirectoryUseCaseWithMetrics(next, m)

	_, err := uc.SetAddresses(ctx, addresses())
	assert.ErrorIs(t, err, ownershipDomain.ErrNotOwner)
	_, err = uc.GetAddresses(ctx)
	assert.NoError(t, err)

	next.AssertExpectations(t)
	m.AssertExpectations(t)
}
