package service

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/allisson/trustregistry/internal/events/domain"
)

// KafkaPublisher produces events to a Kafka topic, keyed by event id.
type KafkaPublisher struct {
	client *kgo.Client
}

// NewKafkaPublisher creates a franz-go client producing to topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &KafkaPublisher{client: client}, nil
}

// Publish produces the event synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, event *domain.Event) error {
	body, err := MarshalEnvelope(event)
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Key:   []byte(event.ID.String()),
		Value: body,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	return p.client.ProduceSync(ctx, record).FirstErr()
}

// Close flushes buffered records and closes the client.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	err := p.client.Flush(ctx)
	p.client.Close()
	return err
}
