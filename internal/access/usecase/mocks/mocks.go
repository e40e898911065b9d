// Package mocks provides mock implementations of the access control use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/access/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// MockAccessUseCase is a mock implementation of usecase.AccessUseCase.
type MockAccessUseCase struct {
	mock.Mock
}

// Grant mocks the Grant method.
func (m *MockAccessUseCase) Grant(ctx context.Context, grant domain.Grant) (*domain.Permission, error) {
	args := m.Called(ctx, grant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

// GrantBatch mocks the GrantBatch method.
func (m *MockAccessUseCase) GrantBatch(
	ctx context.Context,
	grantees []principal.Principal,
	attributes []string,
	expiries []int64,
	consentRefs []string,
) ([]*domain.Permission, error) {
	args := m.Called(ctx, grantees, attributes, expiries, consentRefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Permission), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockAccessUseCase) Revoke(ctx context.Context, revocation domain.Revocation) error {
	args := m.Called(ctx, revocation)
	return args.Error(0)
}

// RevokeBatch mocks the RevokeBatch method.
func (m *MockAccessUseCase) RevokeBatch(
	ctx context.Context,
	grantees []principal.Principal,
	attributes []string,
) error {
	args := m.Called(ctx, grantees, attributes)
	return args.Error(0)
}

// HasAccess mocks the HasAccess method.
func (m *MockAccessUseCase) HasAccess(ctx context.Context, key domain.Key) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// GetPermission mocks the GetPermission method.
func (m *MockAccessUseCase) GetPermission(ctx context.Context, key domain.Key) (*domain.Permission, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}
