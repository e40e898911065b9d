// Package mocks provides mock implementations of the identifier use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// MockIdentifierUseCase is a mock implementation of usecase.IdentifierUseCase.
type MockIdentifierUseCase struct {
	mock.Mock
}

func recordResult(args mock.Arguments) (*domain.Record, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

// Register mocks the Register method.
func (m *MockIdentifierUseCase) Register(
	ctx context.Context,
	id, documentRef, publicKey string,
) (*domain.Record, error) {
	return recordResult(m.Called(ctx, id, documentRef, publicKey))
}

// Update mocks the Update method.
func (m *MockIdentifierUseCase) Update(
	ctx context.Context,
	id, documentRef, publicKey string,
) (*domain.Record, error) {
	return recordResult(m.Called(ctx, id, documentRef, publicKey))
}

// Resolve mocks the Resolve method.
func (m *MockIdentifierUseCase) Resolve(ctx context.Context, id string) (*domain.Record, error) {
	return recordResult(m.Called(ctx, id))
}

// ListByController mocks the ListByController method.
func (m *MockIdentifierUseCase) ListByController(
	ctx context.Context,
	controller principal.Principal,
	offset, limit int,
) ([]*domain.Record, error) {
	args := m.Called(ctx, controller, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Record), args.Error(1)
}

// RecoveryManager mocks the RecoveryManager method.
func (m *MockIdentifierUseCase) RecoveryManager(ctx context.Context) (principal.Principal, error) {
	args := m.Called(ctx)
	return args.Get(0).(principal.Principal), args.Error(1)
}

// SetRecoveryManager mocks the SetRecoveryManager method.
func (m *MockIdentifierUseCase) SetRecoveryManager(ctx context.Context, manager principal.Principal) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

// UpdateControllerByRecovery mocks the UpdateControllerByRecovery method.
func (m *MockIdentifierUseCase) UpdateControllerByRecovery(
	ctx context.Context,
	id string,
	newController principal.Principal,
) (*domain.Record, error) {
	return recordResult(m.Called(ctx, id, newController))
}
