// Package mocks provides mock implementations of the issuer use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/issuer/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// MockIssuerUseCase is a mock implementation of usecase.IssuerUseCase.
type MockIssuerUseCase struct {
	mock.Mock
}

// AddIssuer mocks the AddIssuer method.
func (m *MockIssuerUseCase) AddIssuer(
	ctx context.Context,
	issuer principal.Principal,
	metadataRef string,
) (*domain.Issuer, error) {
	args := m.Called(ctx, issuer, metadataRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issuer), args.Error(1)
}

// RemoveIssuer mocks the RemoveIssuer method.
func (m *MockIssuerUseCase) RemoveIssuer(ctx context.Context, issuer principal.Principal) error {
	args := m.Called(ctx, issuer)
	return args.Error(0)
}

// IsTrusted mocks the IsTrusted method.
func (m *MockIssuerUseCase) IsTrusted(ctx context.Context, issuer principal.Principal) (bool, error) {
	args := m.Called(ctx, issuer)
	return args.Bool(0), args.Error(1)
}

// GetMetadataRef mocks the GetMetadataRef method.
func (m *MockIssuerUseCase) GetMetadataRef(ctx context.Context, issuer principal.Principal) (string, error) {
	args := m.Called(ctx, issuer)
	return args.String(0), args.Error(1)
}

// Get mocks the Get method.
func (m *MockIssuerUseCase) Get(ctx context.Context, issuer principal.Principal) (*domain.Issuer, error) {
	args := m.Called(ctx, issuer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issuer), args.Error(1)
}
