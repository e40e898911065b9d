package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/issuer/domain"
	"github.com/allisson/trustregistry/internal/issuer/http/dto"
	"github.com/allisson/trustregistry/internal/issuer/usecase/mocks"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

func setupTestHandler(t *testing.T) (*IssuerHandler, *mocks.MockIssuerUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockIssuerUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })

	return NewIssuerHandler(mockUseCase, slog.New(slog.NewTextHandler(io.Discard, nil))), mockUseCase
}

func createTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != "" {
		bodyReader = bytes.NewBufferString(body)
	}
	c.Request = httptest.NewRequest(method, path, bodyReader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

const issuer = principal.Principal("did:example:university")

func TestIssuerHandler_AddHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("AddIssuer", mock.Anything, issuer, "ipfs://meta").
			Return(&domain.Issuer{Issuer: issuer, Trusted: true, MetadataRef: "ipfs://meta", UpdatedAt: 5}, nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/issuers/"+issuer.String(), `{"metadata_ref":"ipfs://meta"}`)
		c.Params = gin.Params{{Key: "issuer", Value: issuer.String()}}
		handler.AddHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.IssuerResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Trusted)
		assert.Equal(t, "ipfs://meta", response.MetadataRef)
	})

	t.Run("Error_NotOwner", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("AddIssuer", mock.Anything, issuer, "").Return(nil, ownershipDomain.ErrNotOwner).Once()

		c, w := createTestContext(http.MethodPut, "/v1/issuers/"+issuer.String(), `{}`)
		c.Params = gin.Params{{Key: "issuer", Value: issuer.String()}}
		handler.AddHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_ReferenceTooLong", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		body, _ := json.Marshal(dto.AddIssuerRequest{MetadataRef: strings.Repeat("x", 5000)})
		c, w := createTestContext(http.MethodPut, "/v1/issuers/"+issuer.String(), string(body))
		c.Params = gin.Params{{Key: "issuer", Value: issuer.String()}}
		handler.AddHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestIssuerHandler_RemoveHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("RemoveIssuer", mock.Anything, issuer).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/issuers/"+issuer.String(), "")
		c.Params = gin.Params{{Key: "issuer", Value: issuer.String()}}
		handler.RemoveHandler(c)

		c.Writer.WriteHeaderNow()
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("RemoveIssuer", mock.Anything, issuer).Return(principal.ErrNoSender).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/issuers/"+issuer.String(), "")
		c.Params = gin.Params{{Key: "issuer", Value: issuer.String()}}
		handler.RemoveHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIssuerHandler_GetHandler(t *testing.T) {
	t.Run("Success_Unknown", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, issuer).Return(&domain.Issuer{Issuer: issuer}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/issuers/"+issuer.String(), "")
		c.Params = gin.Params{{Key: "issuer", Value: issuer.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"issuer":"did:example:university","trusted":false,"metadata_ref":"","updated_at":0}`,
			w.Body.String())
	})

	t.Run("Error_Internal", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, issuer).Return(nil, apperrors.New("db down")).Once()

		c, w := createTestContext(http.MethodGet, "/v1/issuers/"+issuer.String(), "")
		c.Params = gin.Params{{Key: "issuer", Value: issuer.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
