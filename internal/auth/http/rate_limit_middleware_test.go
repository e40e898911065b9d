package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/allisson/trustregistry/internal/principal"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if sender := c.GetHeader("X-Test-Sender"); sender != "" {
			c.Request = c.Request.WithContext(principal.WithSender(c.Request.Context(), principal.Principal(sender)))
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(ctx, rps, burst, slog.Default()))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func send(router *gin.Engine, sender string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	if sender != "" {
		req.Header.Set("X-Test-Sender", sender)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, send(router, "did:example:alice").Code)
	}
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	router := newRateLimitedRouter(t, 0.5, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, send(router, "did:example:alice").Code)
	}

	w := send(router, "did:example:alice")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimitMiddleware_IndependentLimitsPerSender(t *testing.T) {
	router := newRateLimitedRouter(t, 1, 1)

	assert.Equal(t, http.StatusOK, send(router, "did:example:alice").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(router, "did:example:alice").Code)
	assert.Equal(t, http.StatusOK, send(router, "did:example:bob").Code)
}

func TestRateLimitMiddleware_RequiresAuthentication(t *testing.T) {
	router := newRateLimitedRouter(t, 10, 20)

	assert.Equal(t, http.StatusUnauthorized, send(router, "").Code)
}

func TestRateLimiterStore_EvictIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 10, burst: 20}

	store.getLimiter("did:example:alice")
	store.getLimiter("did:example:bob")

	val, ok := store.limiters.Load(principal.Principal("did:example:alice"))
	assert.True(t, ok)
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = time.Now().Add(-2 * time.Hour)
	entry.mu.Unlock()

	store.evictIdle(time.Now().Add(-limiterIdleTimeout))

	_, ok = store.limiters.Load(principal.Principal("did:example:alice"))
	assert.False(t, ok)
	_, ok = store.limiters.Load(principal.Principal("did:example:bob"))
	assert.True(t, ok)
}

func TestRateLimitMiddleware_StopsCleanupOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	RateLimitMiddleware(ctx, 1, 1, slog.Default())
	cancel()
}
