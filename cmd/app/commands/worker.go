package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/trustregistry/internal/app"
	"github.com/allisson/trustregistry/internal/config"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/http"
)

// RunWorker starts the event dispatcher that forwards committed events to
// EVENT_PUBLISHER, next to the metrics server when metrics are enabled.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()
	if cfg.DBDriver == config.DriverMemory {
		return fmt.Errorf("the worker needs a shared database, the memory driver dispatches inside the server")
	}

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting worker", slog.String("version", version))

	defer closeContainer(container, logger)

	dispatcher, err := container.EventDispatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize event dispatcher: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runDispatcher(ctx, dispatcher, metricsServer, cfg, logger)
}

func runDispatcher(
	ctx context.Context,
	dispatcher eventsUseCase.Dispatcher,
	metricsServer *http.MetricsServer,
	cfg *config.Config,
	logger *slog.Logger,
) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := dispatcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("event dispatcher error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		group.Go(func() error {
			if err := metricsServer.Start(ctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
			defer shutdownCancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("metrics server shutdown: %w", err)
			}
			return nil
		})
	}

	err := group.Wait()
	logger.Info("worker stopped")
	return err
}
