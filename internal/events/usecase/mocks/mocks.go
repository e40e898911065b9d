// Package mocks provides mock implementations of the event use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/events/domain"
)

// MockEventRepository is a mock implementation of usecase.EventRepository.
type MockEventRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// GetPending mocks the GetPending method.
func (m *MockEventRepository) GetPending(ctx context.Context, limit int) ([]*domain.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

// List mocks the List method.
func (m *MockEventRepository) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

// Update mocks the Update method.
func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// Publish mocks the Publish method.
func (m *MockEventPublisher) Publish(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Close mocks the Close method.
func (m *MockEventPublisher) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventUseCase is a mock implementation of usecase.EventUseCase.
type MockEventUseCase struct {
	mock.Mock
}

// List mocks the List method.
func (m *MockEventUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockEventUseCase) Verify(ctx context.Context) (*domain.VerificationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationReport), args.Error(1)
}

// MockRecorder is a mock implementation of usecase.Recorder.
type MockRecorder struct {
	mock.Mock
}

// Record mocks the Record method.
func (m *MockRecorder) Record(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

// MockTxManager is a mock implementation of database.TxManager that runs fn.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method and executes fn unless an error is configured.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
