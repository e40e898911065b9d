package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/trustregistry/internal/identifier/domain"
	"github.com/allisson/trustregistry/internal/identifier/http/dto"
	"github.com/allisson/trustregistry/internal/identifier/usecase/mocks"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

func setupTestHandler(t *testing.T) (*IdentifierHandler, *mocks.MockIdentifierUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockIdentifierUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })

	return NewIdentifierHandler(mockUseCase, slog.New(slog.NewTextHandler(io.Discard, nil))), mockUseCase
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

const did = "did:example:123"

func sampleRecord() *domain.Record {
	return &domain.Record{
		IDHash:      domain.HashID(did),
		ID:          did,
		Controller:  "did:example:alice",
		Registrant:  "did:example:alice",
		DocumentRef: "ipfs://doc",
		PublicKey:   "z6Mk",
		UpdatedAt:   42,
	}
}

func TestIdentifierHandler_RegisterHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Register", mock.Anything, did, "ipfs://doc", "z6Mk").Return(sampleRecord(), nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/identifiers",
			`{"id":"did:example:123","document_ref":"ipfs://doc","public_key":"z6Mk"}`)
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.RecordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, domain.HashID(did), response.IDHash)
		assert.Equal(t, "did:example:alice", response.Controller)
	})

	t.Run("Error_MissingID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/identifiers", `{"document_ref":"ipfs://doc"}`)
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_AlreadyRegistered", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Register", mock.Anything, did, "", "").Return(nil, domain.ErrAlreadyRegistered).Once()

		c, w := createTestContext(http.MethodPost, "/v1/identifiers", `{"id":"did:example:123"}`)
		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestIdentifierHandler_UpdateHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "Success", expectedCode: http.StatusOK},
		{name: "Error_NotController", err: domain.ErrNotController, expectedCode: http.StatusForbidden},
		{name: "Error_UnknownIdentifier", err: domain.ErrUnknownIdentifier, expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockUseCase := setupTestHandler(t)
			if tt.err != nil {
				mockUseCase.On("Update", mock.Anything, did, "ipfs://doc-2", "").Return(nil, tt.err).Once()
			} else {
				mockUseCase.On("Update", mock.Anything, did, "ipfs://doc-2", "").Return(sampleRecord(), nil).Once()
			}

			c, w := createTestContext(http.MethodPut, "/v1/identifiers",
				`{"id":"did:example:123","document_ref":"ipfs://doc-2"}`)
			handler.UpdateHandler(c)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestIdentifierHandler_ResolveHandler(t *testing.T) {
	t.Run("Success_Unknown", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Resolve", mock.Anything, did).
			Return(&domain.Record{IDHash: domain.HashID(did), ID: did}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/identifiers/resolve?id=did:example:123", "")
		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.RecordResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Empty(t, response.Controller)
	})

	t.Run("Error_MissingID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/identifiers/resolve", "")
		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIdentifierHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("ListByController", mock.Anything, principal.Principal("did:example:alice"), 0, 20).
			Return([]*domain.Record{sampleRecord()}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/identifiers?controller=did:example:alice&limit=20", "")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.RecordListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/identifiers?controller=x&limit=1000", "")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIdentifierHandler_RecoveryManager(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("RecoveryManager", mock.Anything).Return(principal.Principal("urn:recovery"), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/identifiers/recovery-manager", "")
		handler.GetRecoveryManagerHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"recovery_manager":"urn:recovery"}`, w.Body.String())
	})

	t.Run("Set", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("SetRecoveryManager", mock.Anything, principal.Principal("urn:recovery")).Return(nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/identifiers/recovery-manager", `{"manager":"urn:recovery"}`)
		handler.SetRecoveryManagerHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Set_NotOwner", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("SetRecoveryManager", mock.Anything, principal.Principal("urn:recovery")).
			Return(ownershipDomain.ErrNotOwner).Once()

		c, w := createTestContext(http.MethodPut, "/v1/identifiers/recovery-manager", `{"manager":"urn:recovery"}`)
		handler.SetRecoveryManagerHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Set_Whitespace", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/identifiers/recovery-manager", `{"manager":" urn:recovery"}`)
		handler.SetRecoveryManagerHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestIdentifierHandler_ControllerTransferHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		record := sampleRecord()
		record.Controller = "did:example:bob"
		mockUseCase.On("UpdateControllerByRecovery", mock.Anything, did, principal.Principal("did:example:bob")).
			Return(record, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/identifiers/controller-transfers",
			`{"id":"did:example:123","new_controller":"did:example:bob"}`)
		handler.ControllerTransferHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotRecoveryManager", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("UpdateControllerByRecovery", mock.Anything, did, principal.Principal("did:example:bob")).
			Return(nil, domain.ErrNotRecoveryManager).Once()

		c, w := createTestContext(http.MethodPost, "/v1/identifiers/controller-transfers",
			`{"id":"did:example:123","new_controller":"did:example:bob"}`)
		handler.ControllerTransferHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_MissingController", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/identifiers/controller-transfers", `{"id":"did:example:123"}`)
		handler.ControllerTransferHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
