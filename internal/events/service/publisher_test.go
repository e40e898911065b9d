package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/pubsub/mempubsub"
)

func TestMarshalEnvelope(t *testing.T) {
	event := newTestEvent()
	event.Sequence = 7
	event.Signature = []byte{0xde, 0xad}

	body, err := MarshalEnvelope(event)
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, event.ID.String(), envelope.ID)
	assert.Equal(t, int64(7), envelope.Sequence)
	assert.Equal(t, "issuer.added", envelope.EventType)
	assert.JSONEq(t, event.Payload, string(envelope.Payload))
	assert.Equal(t, "dead", envelope.Signature)
	assert.True(t, event.CreatedAt.Equal(envelope.CreatedAt))
}

func TestMarshalEnvelope_NonJSONPayload(t *testing.T) {
	event := newTestEvent()
	event.Payload = "plain text"

	body, err := MarshalEnvelope(event)
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, `"plain text"`, string(envelope.Payload))
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	publisher := NewLogPublisher(logger)

	event := newTestEvent()
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close(context.Background()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "registry event", entry["msg"])
	assert.Equal(t, "issuer.added", entry["event_type"])
	assert.Equal(t, event.ID.String(), entry["event_id"])
}

func TestLogPublisher_InvalidPayload(t *testing.T) {
	publisher := NewLogPublisher(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	event := newTestEvent()
	event.Payload = "{"

	assert.Error(t, publisher.Publish(context.Background(), event))
}

func TestPubSubPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	topic := mempubsub.NewTopic()
	sub := mempubsub.NewSubscription(topic, time.Minute)
	defer sub.Shutdown(ctx) //nolint:errcheck

	publisher := NewPubSubPublisher(topic)

	event := newTestEvent()
	event.Sequence = 3
	require.NoError(t, publisher.Publish(ctx, event))

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	assert.Equal(t, event.ID.String(), msg.Metadata["event_id"])
	assert.Equal(t, "issuer.added", msg.Metadata["event_type"])
	assert.Equal(t, "3", msg.Metadata["sequence"])

	var envelope Envelope
	require.NoError(t, json.Unmarshal(msg.Body, &envelope))
	assert.Equal(t, int64(3), envelope.Sequence)

	require.NoError(t, publisher.Close(ctx))
}

func TestOpenPubSubPublisher(t *testing.T) {
	ctx := context.Background()

	publisher, err := OpenPubSubPublisher(ctx, "mem://registry-events-test")
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, newTestEvent()))
	assert.NoError(t, publisher.Close(ctx))
}

func TestOpenPubSubPublisher_InvalidURL(t *testing.T) {
	_, err := OpenPubSubPublisher(context.Background(), "unknown://topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open pubsub topic")
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	publisher, err := NewKafkaPublisher(nil, "events")
	assert.Nil(t, publisher)
	assert.Error(t, err)
}
