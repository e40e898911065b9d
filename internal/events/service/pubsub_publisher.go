package service

import (
	"context"
	"fmt"
	"strconv"

	"gocloud.dev/pubsub"

	// Register pubsub drivers
	_ "gocloud.dev/pubsub/mempubsub"

	"github.com/allisson/trustregistry/internal/events/domain"
)

// PubSubPublisher sends events to a gocloud.dev pubsub topic.
type PubSubPublisher struct {
	topic *pubsub.Topic
}

// OpenPubSubPublisher opens the topic at topicURL (e.g. "mem://registry-events").
func OpenPubSubPublisher(ctx context.Context, topicURL string) (*PubSubPublisher, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open pubsub topic: %w", err)
	}
	return NewPubSubPublisher(topic), nil
}

// NewPubSubPublisher wraps an already opened topic.
func NewPubSubPublisher(topic *pubsub.Topic) *PubSubPublisher {
	return &PubSubPublisher{topic: topic}
}

// Publish sends the event envelope with its type and sequence as metadata.
func (p *PubSubPublisher) Publish(ctx context.Context, event *domain.Event) error {
	body, err := MarshalEnvelope(event)
	if err != nil {
		return err
	}

	return p.topic.Send(ctx, &pubsub.Message{
		Body: body,
		Metadata: map[string]string{
			"event_id":   event.ID.String(),
			"event_type": event.EventType,
			"sequence":   strconv.FormatInt(event.Sequence, 10),
		},
	})
}

// Close flushes and shuts the topic down.
func (p *PubSubPublisher) Close(ctx context.Context) error {
	return p.topic.Shutdown(ctx)
}
