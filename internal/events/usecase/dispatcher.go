package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/events/domain"
	"github.com/allisson/trustregistry/internal/events/service"
	"github.com/allisson/trustregistry/internal/metrics"
)

// DispatcherConfig holds dispatcher configuration.
type DispatcherConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	// PublishTimeout bounds each publication; zero means no deadline.
	PublishTimeout time.Duration
	// Unlocked publishes between two short transactions instead of inside the
	// one holding the batch. Only valid when a single dispatcher runs, as with
	// the in-memory backend whose transactions block every reader.
	Unlocked bool
}

// EventDispatcher polls the event log and forwards pending events in sequence order.
type EventDispatcher struct {
	config    DispatcherConfig
	txManager database.TxManager
	repo      EventRepository
	publisher service.EventPublisher
	metrics   metrics.BusinessMetrics
	logger    *slog.Logger
}

// NewEventDispatcher creates a new EventDispatcher.
func NewEventDispatcher(
	config DispatcherConfig,
	txManager database.TxManager,
	repo EventRepository,
	publisher service.EventPublisher,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *EventDispatcher {
	return &EventDispatcher{
		config:    config,
		txManager: txManager,
		repo:      repo,
		publisher: publisher,
		metrics:   businessMetrics,
		logger:    logger,
	}
}

// Start runs the dispatch loop until ctx is cancelled.
func (d *EventDispatcher) Start(ctx context.Context) error {
	d.logger.Info("starting event dispatcher",
		slog.Duration("interval", d.config.Interval),
		slog.Int("batch_size", d.config.BatchSize),
	)

	ticker := time.NewTicker(d.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("stopping event dispatcher")
			return ctx.Err()
		case <-ticker.C:
			if err := d.ProcessEvents(ctx); err != nil {
				d.logger.Error("failed to process events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents publishes one batch of pending events. The batch stops at the
// first publication failure so later events are never delivered ahead of an
// earlier one.
func (d *EventDispatcher) ProcessEvents(ctx context.Context) error {
	if !d.config.Unlocked {
		return d.txManager.WithTx(ctx, func(ctx context.Context) error {
			events, err := d.repo.GetPending(ctx, d.config.BatchSize)
			if err != nil {
				return err
			}
			return d.save(ctx, d.publish(ctx, events))
		})
	}

	var events []*domain.Event
	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		events, err = d.repo.GetPending(ctx, d.config.BatchSize)
		return err
	})
	if err != nil {
		return err
	}

	settled := d.publish(ctx, events)
	if len(settled) == 0 {
		return nil
	}

	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		return d.save(ctx, settled)
	})
}

// publish delivers events in order and returns those whose state changed.
func (d *EventDispatcher) publish(ctx context.Context, events []*domain.Event) []*domain.Event {
	if len(events) == 0 {
		return nil
	}

	d.logger.Debug("dispatching events", slog.Int("count", len(events)))

	settled := make([]*domain.Event, 0, len(events))
	for _, event := range events {
		start := time.Now()
		if err := d.publishOne(ctx, event); err != nil {
			d.logger.Error("failed to publish event",
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.EventType),
				slog.Any("error", err),
			)
			d.record(ctx, start, "error")

			event.Retries++
			errorMsg := err.Error()
			event.LastError = &errorMsg
			if event.Retries >= d.config.MaxRetries {
				event.Status = domain.StatusFailed
			}

			settled = append(settled, event)
			if event.Status == domain.StatusPending {
				break
			}
			continue
		}
		d.record(ctx, start, "success")

		now := time.Now().UTC()
		event.Status = domain.StatusProcessed
		event.ProcessedAt = &now
		event.LastError = nil
		settled = append(settled, event)
	}

	return settled
}

func (d *EventDispatcher) publishOne(ctx context.Context, event *domain.Event) error {
	if d.config.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.PublishTimeout)
		defer cancel()
	}
	return d.publisher.Publish(ctx, event)
}

func (d *EventDispatcher) save(ctx context.Context, events []*domain.Event) error {
	for _, event := range events {
		if err := d.repo.Update(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (d *EventDispatcher) record(ctx context.Context, start time.Time, status string) {
	d.metrics.RecordOperation(ctx, "events", "event_publish", status)
	d.metrics.RecordDuration(ctx, "events", "event_publish", time.Since(start), status)
}
