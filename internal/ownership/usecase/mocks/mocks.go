// Package mocks provides mock implementations of the ownership interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// MockOwnershipUseCase is a mock implementation of usecase.OwnershipUseCase.
type MockOwnershipUseCase struct {
	mock.Mock
}

// Bootstrap mocks the Bootstrap method.
func (m *MockOwnershipUseCase) Bootstrap(
	ctx context.Context,
	registry domain.Registry,
	owner principal.Principal,
) (*domain.Ownership, error) {
	args := m.Called(ctx, registry, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ownership), args.Error(1)
}

// Owner mocks the Owner method.
func (m *MockOwnershipUseCase) Owner(ctx context.Context, registry domain.Registry) (principal.Principal, error) {
	args := m.Called(ctx, registry)
	return args.Get(0).(principal.Principal), args.Error(1)
}

// RequireOwner mocks the RequireOwner method.
func (m *MockOwnershipUseCase) RequireOwner(
	ctx context.Context,
	registry domain.Registry,
	caller principal.Principal,
) error {
	args := m.Called(ctx, registry, caller)
	return args.Error(0)
}

// TransferOwnership mocks the TransferOwnership method.
func (m *MockOwnershipUseCase) TransferOwnership(
	ctx context.Context,
	registry domain.Registry,
	newOwner principal.Principal,
) (*domain.Ownership, error) {
	args := m.Called(ctx, registry, newOwner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ownership), args.Error(1)
}
