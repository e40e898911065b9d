package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/trustregistry/internal/config"
)

type fakeDispatcher struct {
	started atomic.Bool
	err     error
}

func (d *fakeDispatcher) Start(ctx context.Context) error {
	d.started.Store(true)
	if d.err != nil {
		return d.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func (d *fakeDispatcher) ProcessEvents(context.Context) error {
	return nil
}

func TestRunDispatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := &config.Config{DBConnMaxLifetime: time.Second}
	logger := slog.Default()

	t.Run("stops-on-cancel", func(t *testing.T) {
		dispatcher := &fakeDispatcher{}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- runDispatcher(ctx, dispatcher, nil, cfg, logger) }()

		require.Eventually(t, dispatcher.started.Load, time.Second, 10*time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop")
		}
	})

	t.Run("dispatcher-failure", func(t *testing.T) {
		dispatcher := &fakeDispatcher{err: errors.New("publisher unavailable")}

		err := runDispatcher(context.Background(), dispatcher, nil, cfg, logger)
		require.Error(t, err)
		require.Contains(t, err.Error(), "publisher unavailable")
	})
}
