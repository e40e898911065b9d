// Package http provides the HTTP server that exposes the registries.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessHTTP "github.com/allisson/trustregistry/internal/access/http"
	authHTTP "github.com/allisson/trustregistry/internal/auth/http"
	authUseCase "github.com/allisson/trustregistry/internal/auth/usecase"
	"github.com/allisson/trustregistry/internal/config"
	directoryHTTP "github.com/allisson/trustregistry/internal/directory/http"
	eventsHTTP "github.com/allisson/trustregistry/internal/events/http"
	identifierHTTP "github.com/allisson/trustregistry/internal/identifier/http"
	issuerHTTP "github.com/allisson/trustregistry/internal/issuer/http"
	"github.com/allisson/trustregistry/internal/metrics"
	ownershipHTTP "github.com/allisson/trustregistry/internal/ownership/http"
	recoveryHTTP "github.com/allisson/trustregistry/internal/recovery/http"
	revocationHTTP "github.com/allisson/trustregistry/internal/revocation/http"
)

// HealthChecker reports whether the storage backend is reachable. *sql.DB satisfies it.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Handlers groups the HTTP handlers of every registry.
type Handlers struct {
	Identifier *identifierHTTP.IdentifierHandler
	Access     *accessHTTP.AccessHandler
	Issuer     *issuerHTTP.IssuerHandler
	Anchor     *revocationHTTP.AnchorHandler
	Recovery   *recoveryHTTP.RecoveryHandler
	Directory  *directoryHTTP.DirectoryHandler
	Ownership  *ownershipHTTP.OwnershipHandler
	Event      *eventsHTTP.EventHandler
}

// Server represents the HTTP server.
type Server struct {
	db     HealthChecker
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(db HealthChecker, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes.
//
// Reads are public. Every mutation goes through AuthenticationMiddleware, which
// puts the token subject in the request context as the sender, and through the
// per-sender rate limiter when it is enabled. ctx bounds background work started
// by the middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	tokenUseCase authUseCase.TokenUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	authenticated := []gin.HandlerFunc{authHTTP.AuthenticationMiddleware(tokenUseCase, s.logger)}
	if cfg.RateLimitEnabled {
		authenticated = append(authenticated,
			authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	mutations := v1.Group("", authenticated...)

	if h := handlers.Identifier; h != nil {
		v1.GET("/identifiers/resolve", h.ResolveHandler)
		v1.GET("/identifiers", h.ListHandler)
		v1.GET("/identifiers/recovery-manager", h.GetRecoveryManagerHandler)
		mutations.POST("/identifiers", h.RegisterHandler)
		mutations.PUT("/identifiers", h.UpdateHandler)
		mutations.PUT("/identifiers/recovery-manager", h.SetRecoveryManagerHandler)
		mutations.POST("/identifiers/controller-transfers", h.ControllerTransferHandler)
	}

	if h := handlers.Access; h != nil {
		v1.GET("/access/check", h.CheckHandler)
		v1.GET("/access/permissions", h.GetPermissionHandler)
		mutations.POST("/access/grants", h.GrantHandler)
		mutations.POST("/access/grants/batch", h.GrantBatchHandler)
		mutations.POST("/access/revocations", h.RevokeHandler)
		mutations.POST("/access/revocations/batch", h.RevokeBatchHandler)
	}

	if h := handlers.Issuer; h != nil {
		v1.GET("/issuers/:issuer", h.GetHandler)
		mutations.PUT("/issuers/:issuer", h.AddHandler)
		mutations.DELETE("/issuers/:issuer", h.RemoveHandler)
	}

	if h := handlers.Anchor; h != nil {
		v1.GET("/credentials/:hash", h.GetHandler)
		mutations.POST("/credentials", h.AnchorHandler)
		mutations.POST("/credentials/:hash/revoke", h.RevokeHandler)
	}

	if h := handlers.Recovery; h != nil {
		v1.GET("/recovery/:owner", h.GetHandler)
		v1.GET("/recovery/:owner/approvals/:guardian", h.GetApprovalHandler)
		mutations.PUT("/recovery/guardians", h.SetGuardiansHandler)
		mutations.POST("/recovery/:owner/approvals", h.ApproveHandler)
		mutations.POST("/recovery/:owner/execute", h.ExecuteHandler)
	}

	if h := handlers.Directory; h != nil {
		v1.GET("/directory", h.GetHandler)
		mutations.PUT("/directory", h.SetHandler)
	}

	if h := handlers.Ownership; h != nil {
		v1.GET("/owners/:registry", h.GetHandler)
		mutations.POST("/owners/:registry/transfer", h.TransferHandler)
	}

	if h := handlers.Event; h != nil {
		v1.GET("/events", h.ListHandler)
	}

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the storage backend answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
