package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	eventsDomain "github.com/allisson/trustregistry/internal/events/domain"
	eventsMocks "github.com/allisson/trustregistry/internal/events/usecase/mocks"
)

func TestRunVerifyEvents(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	report := &eventsDomain.VerificationReport{
		TotalChecked:  10,
		SignedCount:   8,
		UnsignedCount: 2,
		ValidCount:    8,
	}

	t.Run("success-text", func(t *testing.T) {
		mockUseCase := &eventsMocks.MockEventUseCase{}
		mockUseCase.On("Verify", ctx).Return(report, nil)

		var out bytes.Buffer
		err := RunVerifyEvents(ctx, mockUseCase, logger, &out, "text")
		require.NoError(t, err)
		require.Contains(t, out.String(), "Event Log Integrity Verification")
		require.Contains(t, out.String(), "Status: PASSED")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-json", func(t *testing.T) {
		mockUseCase := &eventsMocks.MockEventUseCase{}
		mockUseCase.On("Verify", ctx).Return(report, nil)

		var out bytes.Buffer
		err := RunVerifyEvents(ctx, mockUseCase, logger, &out, "json")
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Equal(t, float64(10), result["total_checked"])
		require.Equal(t, true, result["passed"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-log", func(t *testing.T) {
		mockUseCase := &eventsMocks.MockEventUseCase{}
		mockUseCase.On("Verify", ctx).Return(&eventsDomain.VerificationReport{}, nil)

		var out bytes.Buffer
		require.NoError(t, RunVerifyEvents(ctx, mockUseCase, logger, &out, "text"))
		require.Contains(t, out.String(), "Status: No events recorded")
	})

	t.Run("integrity-failure", func(t *testing.T) {
		mockUseCase := &eventsMocks.MockEventUseCase{}
		failureReport := &eventsDomain.VerificationReport{
			TotalChecked:  10,
			SignedCount:   10,
			ValidCount:    8,
			InvalidCount:  2,
			InvalidEvents: []uuid.UUID{uuid.New(), uuid.New()},
		}
		mockUseCase.On("Verify", ctx).Return(failureReport, nil)

		var out bytes.Buffer
		err := RunVerifyEvents(ctx, mockUseCase, logger, &out, "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "integrity check failed")
		require.Contains(t, out.String(), "WARNING: 2 event(s) failed integrity check!")
	})
}
