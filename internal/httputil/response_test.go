package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/trustregistry/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "unknown identifier"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.Wrap(apperrors.ErrConflict, "already anchored"), http.StatusConflict, "conflict"},
		{"already done", apperrors.Wrap(apperrors.ErrAlreadyDone, "already approved"), http.StatusConflict, "already_done"},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "length mismatch"), http.StatusUnprocessableEntity, "invalid_input"},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", apperrors.Wrap(apperrors.ErrForbidden, "not controller"), http.StatusForbidden, "forbidden"},
		{"insufficient consensus", apperrors.Wrap(apperrors.ErrInsufficientConsensus, "not enough approvals"), http.StatusPreconditionFailed, "insufficient_consensus"},
		{"locked", apperrors.ErrLocked, http.StatusLocked, "locked"},
		{"too many requests", apperrors.ErrTooManyRequests, http.StatusTooManyRequests, "rate_limit_exceeded"},
		{"internal", errors.New("database exploded"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedCode, response.Error)
		})
	}
}

func TestHandleErrorGin_MasksInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleErrorGin(c, errors.New("pq: password authentication failed"), nil)

	assert.NotContains(t, w.Body.String(), "password")
}

func TestHandleErrorGin_NilError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleErrorGin(c, nil, nil)

	assert.Equal(t, 0, w.Body.Len())
}

func TestHandleBadRequestAndValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleValidationErrorGin(c, errors.New("threshold: must be no less than 1"), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}
