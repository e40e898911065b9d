package app

import (
	"context"
	"fmt"

	"github.com/allisson/trustregistry/internal/http"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	"github.com/allisson/trustregistry/internal/principal"
)

// Handlers returns the HTTP handlers of every registry.
func (c *Container) Handlers() (http.Handlers, error) {
	var (
		handlers http.Handlers
		err      error
	)

	if handlers.Identifier, err = c.IdentifierHandler(); err != nil {
		return http.Handlers{}, err
	}
	if handlers.Access, err = c.AccessHandler(); err != nil {
		return http.Handlers{}, err
	}
	if handlers.Issuer, err = c.IssuerHandler(); err != nil {
		return http.Handlers{}, err
	}
	if handlers.Anchor, err = c.AnchorHandler(); err != nil {
		return http.Handlers{}, err
	}
	if handlers.Recovery, err = c.RecoveryHandler(); err != nil {
		return http.Handlers{}, err
	}
	if handlers.Directory, err = c.DirectoryHandler(); err != nil {
		return http.Handlers{}, err
	}
	if handlers.Ownership, err = c.OwnershipHandler(); err != nil {
		return http.Handlers{}, err
	}
	if handlers.Event, err = c.EventHandler(); err != nil {
		return http.Handlers{}, err
	}

	return handlers, nil
}

// HTTPServer returns the API server with every route registered. Background
// work started by the middleware stops on Shutdown.
func (c *Container) HTTPServer() (*http.Server, error) {
	return c.httpServer.get(func() (*http.Server, error) {
		healthChecker, err := c.HealthChecker()
		if err != nil {
			return nil, fmt.Errorf("failed to get health checker for http server: %w", err)
		}
		handlers, err := c.Handlers()
		if err != nil {
			return nil, err
		}
		tokenUseCase, err := c.TokenUseCase()
		if err != nil {
			return nil, err
		}
		metricsProvider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithCancel(context.Background())
		c.mu.Lock()
		c.serverCancel = cancel
		c.mu.Unlock()

		server := http.NewServer(healthChecker, c.config.ServerHost, c.config.ServerPort, c.Logger())
		server.SetupRouter(ctx, c.config, handlers, tokenUseCase, metricsProvider)
		return server, nil
	})
}

// MetricsServer returns the Prometheus scrape server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return c.metricsServer.get(func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return nil, nil
		}
		return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
	})
}

// Bootstrap records OWNER_PRINCIPAL as owner of every owner-gated registry that
// has none yet. It is a no-op when OWNER_PRINCIPAL is empty.
func (c *Container) Bootstrap(ctx context.Context) error {
	owner := principal.Principal(c.config.OwnerPrincipal)
	if owner.IsZero() {
		c.Logger().Warn("OWNER_PRINCIPAL is not set, owner-gated registries stay uninitialized")
		return nil
	}

	ownership, err := c.OwnershipUseCase()
	if err != nil {
		return err
	}

	for _, registry := range ownershipDomain.Registries {
		record, err := ownership.Bootstrap(ctx, registry, owner)
		if err != nil {
			return fmt.Errorf("failed to bootstrap %s ownership: %w", registry, err)
		}
		c.Logger().Info("registry ownership",
			"registry", string(registry),
			"owner", record.Owner.String(),
		)
	}
	return nil
}
