// Package mocks provides mock implementations of the recovery use case for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	identifierDomain "github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
)

// MockRecoveryUseCase is a mock implementation of usecase.RecoveryUseCase.
type MockRecoveryUseCase struct {
	mock.Mock
}

// SetGuardians mocks the SetGuardians method.
func (m *MockRecoveryUseCase) SetGuardians(
	ctx context.Context,
	guardians []principal.Principal,
	threshold int,
) (*domain.GuardianSet, error) {
	args := m.Called(ctx, guardians, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuardianSet), args.Error(1)
}

// ApproveRecovery mocks the ApproveRecovery method.
func (m *MockRecoveryUseCase) ApproveRecovery(ctx context.Context, owner principal.Principal) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

// ExecuteRecovery mocks the ExecuteRecovery method.
func (m *MockRecoveryUseCase) ExecuteRecovery(
	ctx context.Context,
	owner, newController principal.Principal,
	id string,
) (*identifierDomain.Record, error) {
	args := m.Called(ctx, owner, newController, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identifierDomain.Record), args.Error(1)
}

// GetGuardians mocks the GetGuardians method.
func (m *MockRecoveryUseCase) GetGuardians(ctx context.Context, owner principal.Principal) (*domain.GuardianSet, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuardianSet), args.Error(1)
}

// ApprovalsCount mocks the ApprovalsCount method.
func (m *MockRecoveryUseCase) ApprovalsCount(ctx context.Context, owner principal.Principal) (int, error) {
	args := m.Called(ctx, owner)
	return args.Int(0), args.Error(1)
}

// HasApproved mocks the HasApproved method.
func (m *MockRecoveryUseCase) HasApproved(ctx context.Context, owner, guardian principal.Principal) (bool, error) {
	args := m.Called(ctx, owner, guardian)
	return args.Bool(0), args.Error(1)
}

// MockControllerTransferer is a mock implementation of usecase.ControllerTransferer.
type MockControllerTransferer struct {
	mock.Mock
}

// UpdateControllerByRecovery mocks the UpdateControllerByRecovery method.
func (m *MockControllerTransferer) UpdateControllerByRecovery(
	ctx context.Context,
	id string,
	newController principal.Principal,
) (*identifierDomain.Record, error) {
	args := m.Called(ctx, id, newController)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identifierDomain.Record), args.Error(1)
}
