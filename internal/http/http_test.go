package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/trustregistry/internal/auth/domain"
	authMocks "github.com/allisson/trustregistry/internal/auth/usecase/mocks"
	"github.com/allisson/trustregistry/internal/config"
	directoryDomain "github.com/allisson/trustregistry/internal/directory/domain"
	directoryHTTP "github.com/allisson/trustregistry/internal/directory/http"
	directoryMocks "github.com/allisson/trustregistry/internal/directory/usecase/mocks"
	"github.com/allisson/trustregistry/internal/metrics"
	"github.com/allisson/trustregistry/internal/principal"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeHealthChecker struct {
	err error
}

func (f fakeHealthChecker) PingContext(context.Context) error {
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer(db HealthChecker) *Server {
	return NewServer(db, "localhost", 8080, discardLogger())
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name           string
		db             HealthChecker
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no database",
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"not_ready","components":{"database":"error"}}`,
		},
		{
			name:           "ping fails",
			db:             fakeHealthChecker{err: errors.New("connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"not_ready","components":{"database":"error"}}`,
		},
		{
			name:           "ready",
			db:             fakeHealthChecker{},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ready","components":{"database":"ok"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createTestServer(tt.db)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			server.readinessHandler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(principal.WithSender(c.Request.Context(), "did:example:alice"))
		c.Next()
	})
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?x=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "/test", line["path"])
	assert.Equal(t, "x=1", line["query"])
	assert.Equal(t, "did:example:alice", line["sender"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), line["request_id"])
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func setupRouter(t *testing.T) (*Server, *authMocks.MockTokenUseCase, *directoryMocks.MockDirectoryUseCase) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	tokenUseCase := &authMocks.MockTokenUseCase{}
	directoryUseCase := &directoryMocks.MockDirectoryUseCase{}

	cfg := &config.Config{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 1,
		RateLimitBurst:          1,
		MetricsNamespace:        "test",
	}

	server := createTestServer(fakeHealthChecker{})
	server.SetupRouter(ctx, cfg, Handlers{
		Directory: directoryHTTP.NewDirectoryHandler(directoryUseCase, discardLogger()),
	}, tokenUseCase, nil)

	return server, tokenUseCase, directoryUseCase
}

func TestRouter_ReadsArePublic(t *testing.T) {
	server, _, directoryUseCase := setupRouter(t)
	directoryUseCase.On("GetAddresses", mock.Anything).
		Return(&directoryDomain.Addresses{IdentifierRegistry: "urn:registry:identifiers"}, nil).
		Once()

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/directory", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	directoryUseCase.AssertExpectations(t)
}

func TestRouter_MutationsRequireToken(t *testing.T) {
	server, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/v1/directory", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_MutationsActAsTokenSubjectAndAreRateLimited(t *testing.T) {
	server, tokenUseCase, directoryUseCase := setupRouter(t)

	tokenUseCase.On("Authenticate", mock.Anything, "alice-token").
		Return(&authDomain.Claims{ID: "jti", Subject: "did:example:alice", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	directoryUseCase.On("SetAddresses", mock.MatchedBy(func(ctx context.Context) bool {
		sender, ok := principal.Sender(ctx)
		return ok && sender == "did:example:alice"
	}), mock.Anything).Return(&directoryDomain.Addresses{}, nil).Once()

	body := `{"identifier_registry":"a","access_control":"b","recovery":"c","revocation":"d","issuer_registry":"e"}`
	put := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/directory", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer alice-token")
		server.GetHandler().ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, put().Code)
	assert.Equal(t, http.StatusTooManyRequests, put().Code)
	directoryUseCase.AssertExpectations(t)
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server, _, _ := setupRouter(t)
	server.server.Addr = "127.0.0.1:0"

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	server, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
