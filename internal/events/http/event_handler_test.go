package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/trustregistry/internal/events/domain"
	"github.com/allisson/trustregistry/internal/events/http/dto"
	"github.com/allisson/trustregistry/internal/events/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*EventHandler, *mocks.MockEventUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockEventUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewEventHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestEventHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		event := &domain.Event{
			ID:        uuid.Must(uuid.NewV7()),
			Sequence:  1,
			EventType: "issuer.added",
			Payload:   `{"issuer":"did:example:alice"}`,
			Signature: []byte{0xab, 0xcd},
			Status:    domain.StatusPending,
			CreatedAt: time.Now().UTC(),
		}
		mockUseCase.On("List", mock.Anything, 0, 50).Return([]*domain.Event{event}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/events")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, event.ID.String(), response.Data[0].ID)
		assert.Equal(t, "issuer.added", response.Data[0].EventType)
		assert.Equal(t, "abcd", response.Data[0].Signature)
		assert.JSONEq(t, event.Payload, string(response.Data[0].Payload))
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("List", mock.Anything, 20, 5).Return([]*domain.Event{}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/events?offset=20&limit=5")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/events?limit=abc")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UseCase", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("List", mock.Anything, 0, 50).Return(nil, errors.New("db down")).Once()

		c, w := createTestContext(http.MethodGet, "/v1/events")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
