// Package mocks provides mock implementations of the revocation use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/revocation/domain"
)

// MockRevocationUseCase is a mock implementation of usecase.RevocationUseCase.
type MockRevocationUseCase struct {
	mock.Mock
}

// AnchorCredential mocks the AnchorCredential method.
func (m *MockRevocationUseCase) AnchorCredential(
	ctx context.Context,
	h hash.Hash,
	contentRef string,
) (*domain.Anchor, error) {
	args := m.Called(ctx, h, contentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Anchor), args.Error(1)
}

// RevokeCredential mocks the RevokeCredential method.
func (m *MockRevocationUseCase) RevokeCredential(ctx context.Context, h hash.Hash, reason string) error {
	args := m.Called(ctx, h, reason)
	return args.Error(0)
}

// IsRevoked mocks the IsRevoked method.
func (m *MockRevocationUseCase) IsRevoked(ctx context.Context, h hash.Hash) (bool, error) {
	args := m.Called(ctx, h)
	return args.Bool(0), args.Error(1)
}

// GetAnchor mocks the GetAnchor method.
func (m *MockRevocationUseCase) GetAnchor(ctx context.Context, h hash.Hash) (*domain.Anchor, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Anchor), args.Error(1)
}

// MockAnchorRepository is a mock implementation of usecase.AnchorRepository.
type MockAnchorRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockAnchorRepository) Create(ctx context.Context, anchor *domain.Anchor) error {
	args := m.Called(ctx, anchor)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockAnchorRepository) Get(ctx context.Context, h hash.Hash) (*domain.Anchor, error) {
	args := m.Called(ctx, h)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Anchor), args.Error(1)
}

// MarkRevoked mocks the MarkRevoked method.
func (m *MockAnchorRepository) MarkRevoked(ctx context.Context, h hash.Hash) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
