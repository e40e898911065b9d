// Package mocks provides mock implementations of the directory use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/directory/domain"
)

// MockDirectoryUseCase is a mock implementation of usecase.DirectoryUseCase.
type MockDirectoryUseCase struct {
	mock.Mock
}

// SetAddresses mocks the SetAddresses method.
func (m *MockDirectoryUseCase) SetAddresses(
	ctx context.Context,
	addresses domain.Addresses,
) (*domain.Addresses, error) {
	args := m.Called(ctx, addresses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Addresses), args.Error(1)
}

// GetAddresses mocks the GetAddresses method.
func (m *MockDirectoryUseCase) GetAddresses(ctx context.Context) (*domain.Addresses, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Addresses), args.Error(1)
}
