// Package mocks provides mock implementations of the auth use cases for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/auth/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// MockTokenUseCase is a mock implementation of usecase.TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	subject principal.Principal,
	ttl time.Duration,
) (*domain.IssuedToken, error) {
	args := m.Called(ctx, subject, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuedToken), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockTokenUseCase) Authenticate(ctx context.Context, token string) (*domain.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claims), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockTokenUseCase) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockDenyList is a mock implementation of usecase.DenyList.
type MockDenyList struct {
	mock.Mock
}

// Deny mocks the Deny method.
func (m *MockDenyList) Deny(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

// IsDenied mocks the IsDenied method.
func (m *MockDenyList) IsDenied(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}
