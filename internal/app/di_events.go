package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/allisson/trustregistry/internal/config"
	"github.com/allisson/trustregistry/internal/database"
	eventsHTTP "github.com/allisson/trustregistry/internal/events/http"
	eventsRepository "github.com/allisson/trustregistry/internal/events/repository"
	eventsService "github.com/allisson/trustregistry/internal/events/service"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
)

type eventComponents struct {
	eventRepository lazy[eventsUseCase.EventRepository]
	eventSigner     lazy[eventsService.EventSigner]
	eventRecorder   lazy[eventsUseCase.Recorder]
	eventUseCase    lazy[eventsUseCase.EventUseCase]
	eventPublisher  lazy[eventsService.EventPublisher]
	eventDispatcher lazy[eventsUseCase.Dispatcher]
	eventHandler    lazy[*eventsHTTP.EventHandler]
}

// EventRepository returns the event log repository of the configured backend.
func (c *Container) EventRepository() (eventsUseCase.EventRepository, error) {
	return c.eventRepository.get(func() (eventsUseCase.EventRepository, error) {
		return selectRepository[eventsUseCase.EventRepository](c,
			func(store *database.MemoryTxManager) eventsUseCase.EventRepository {
				return eventsRepository.NewMemoryEventRepository(store)
			},
			func(db *sql.DB) eventsUseCase.EventRepository {
				return eventsRepository.NewPostgreSQLEventRepository(db)
			},
			func(db *sql.DB) eventsUseCase.EventRepository {
				return eventsRepository.NewMySQLEventRepository(db)
			},
		)
	})
}

// EventSigner returns the HMAC signer built from EVENT_SIGNING_KEY. Without a key
// events are recorded unsigned and a warning is logged once.
func (c *Container) EventSigner() (eventsService.EventSigner, error) {
	return c.eventSigner.get(func() (eventsService.EventSigner, error) {
		key, err := eventsService.LoadSigningKey(
			context.Background(),
			c.config.EventSigningKey,
			c.config.KMSKeyURI,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load event signing key: %w", err)
		}
		if key == nil {
			c.Logger().Warn("EVENT_SIGNING_KEY is not set, events will be recorded unsigned")
			return eventsService.NewNoopSigner(), nil
		}
		return eventsService.NewEventSigner(key)
	})
}

// EventRecorder returns the recorder every registry appends its events through.
func (c *Container) EventRecorder() (eventsUseCase.Recorder, error) {
	return c.eventRecorder.get(func() (eventsUseCase.Recorder, error) {
		repo, err := c.EventRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get event repository for recorder: %w", err)
		}
		signer, err := c.EventSigner()
		if err != nil {
			return nil, err
		}
		return eventsUseCase.NewRecorder(repo, signer), nil
	})
}

// EventUseCase returns the event log query and verification use case.
func (c *Container) EventUseCase() (eventsUseCase.EventUseCase, error) {
	return c.eventUseCase.get(func() (eventsUseCase.EventUseCase, error) {
		repo, err := c.EventRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get event repository for event use case: %w", err)
		}
		signer, err := c.EventSigner()
		if err != nil {
			return nil, err
		}
		return eventsUseCase.NewEventUseCase(repo, signer), nil
	})
}

// EventPublisher returns the sink selected by EVENT_PUBLISHER.
func (c *Container) EventPublisher() (eventsService.EventPublisher, error) {
	return c.eventPublisher.get(func() (eventsService.EventPublisher, error) {
		switch c.config.EventPublisher {
		case config.PublisherLog:
			return eventsService.NewLogPublisher(c.Logger()), nil
		case config.PublisherPubSub:
			publisher, err := eventsService.OpenPubSubPublisher(context.Background(), c.config.EventPubSubTopicURL)
			if err != nil {
				return nil, fmt.Errorf("failed to open pubsub topic: %w", err)
			}
			return publisher, nil
		case config.PublisherKafka:
			publisher, err := eventsService.NewKafkaPublisher(c.config.KafkaBrokers(), c.config.EventKafkaTopic)
			if err != nil {
				return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
			}
			return publisher, nil
		default:
			return nil, fmt.Errorf("unsupported event publisher: %s", c.config.EventPublisher)
		}
	})
}

// EventDispatcher returns the worker that forwards committed events to the publisher.
func (c *Container) EventDispatcher() (eventsUseCase.Dispatcher, error) {
	return c.eventDispatcher.get(func() (eventsUseCase.Dispatcher, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for event dispatcher: %w", err)
		}
		repo, err := c.EventRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get event repository for event dispatcher: %w", err)
		}
		publisher, err := c.EventPublisher()
		if err != nil {
			return nil, err
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		return eventsUseCase.NewEventDispatcher(
			eventsUseCase.DispatcherConfig{
				Interval:   c.config.EventWorkerInterval,
				BatchSize:  c.config.EventWorkerBatchSize,
				MaxRetries: c.config.EventMaxRetries,
				// The memory store is locked for a whole transaction, so publications
				// must not run inside one. Its dispatcher is the only one running.
				PublishTimeout: c.config.EventPublishTimeout,
				Unlocked:       c.config.DBDriver == config.DriverMemory,
			},
			txManager,
			repo,
			publisher,
			businessMetrics,
			c.Logger(),
		), nil
	})
}

// EventHandler returns the HTTP handler of the event log.
func (c *Container) EventHandler() (*eventsHTTP.EventHandler, error) {
	return c.eventHandler.get(func() (*eventsHTTP.EventHandler, error) {
		useCase, err := c.EventUseCase()
		if err != nil {
			return nil, err
		}
		return eventsHTTP.NewEventHandler(useCase, c.Logger()), nil
	})
}
