package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/trustregistry/internal/principal"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("http_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			c.Request = c.Request.WithContext(principal.WithSender(c.Request.Context(), "did:example:alice"))
		}
		c.Next()
	})
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "http_test"))
	router.GET("/v1/recovery/:owner", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"owner": c.Param("owner")})
	})
	router.POST("/v1/recovery/:owner/approvals", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for _, owner := range []string{"did:example:alice", "did:example:bob"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/recovery/"+owner, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/recovery/did:example:alice/approvals", nil))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	output := scrape(t, provider)
	assertMetricLine(t, output, `http_test_http_requests_total`, `2`,
		`authenticated="false"`, `method="GET"`, `path="/v1/recovery/:owner"`, `status_code="200"`)
	assertMetricLine(t, output, `http_test_http_requests_total`, `1`,
		`authenticated="true"`, `method="POST"`, `path="/v1/recovery/:owner/approvals"`, `status_code="204"`)
	assertMetricLine(t, output, `http_test_http_requests_total`, `1`,
		`path="unknown"`, `status_code="404"`)
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "/v1/credentials/:hash", sanitizePath("/v1/credentials/:hash"))
	assert.Equal(t, "/", sanitizePath("/"))
	assert.Equal(t, "unknown", sanitizePath(""))
}
