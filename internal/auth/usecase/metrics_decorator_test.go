package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/trustregistry/internal/auth/domain"
	"github.com/allisson/trustregistry/internal/auth/usecase/mocks"
	"github.com/allisson/trustregistry/internal/principal"
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

func TestTokenUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	subject := principal.Principal("did:example:alice")

	next := &mocks.MockTokenUseCase{}
	next.On("Issue", ctx, subject, time.Minute).Return(&domain.IssuedToken{Token: "t"}, nil).Once()
	next.On("Authenticate", ctx, "bad").Return(nil, domain.ErrInvalidToken).Once()
	next.On("Revoke", ctx, "t").Return(nil).Once()

	m := &mockBusinessMetrics{}
	m.On("RecordOperation", ctx, "auth", "auth_token_issue", "success").Once()
	m.On("RecordDuration", ctx, "auth", "auth_token_issue", mock.Anything, "success").Once()
	m.On("RecordOperation", ctx, "auth", "auth_token_authenticate", "error").Once()
	m.On("RecordDuration", ctx, "auth", "auth_token_authenticate", mock.Anything, "error").Once()
	m.On("RecordOperation", ctx, "auth", "auth_token_revoke", "success").Once()
	m.On("RecordDuration", ctx, "auth", "auth_token_revoke", mock.Anything, "success").Once()

	uc := NewTokenUseCaseWithMetrics(next, m)

	token, err := uc.Issue(ctx, subject, time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, "t", token.Token)

	_, err = uc.Authenticate(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	assert.NoError(t, uc.Revoke(ctx, "t"))

	next.AssertExpectations(t)
	m.AssertExpectations(t)
}
