package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (p *recordingPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	p.exchange = exchange
	p.key = key
	p.msg = msg
	return p.err
}

func TestSendImmediateMessage(t *testing.T) {
	pub := &recordingPublisher{}
	seededAt := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)

	err := SendImmediateMessage(context.Background(), pub, CatalogSeededImmediateQueue,
		CatalogSeededMessage{Movies: 40, Forced: true, SeededAt: seededAt})
	require.NoError(t, err)

	assert.Empty(t, pub.exchange)
	assert.Equal(t, CatalogSeededImmediateQueue, pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)

	var got CatalogSeededMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, 40, got.Movies)
	assert.True(t, got.Forced)
	assert.True(t, seededAt.Equal(got.SeededAt))
}

func TestSendImmediateMessagePublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("channel closed")}
	err := SendImmediateMessage(context.Background(), pub, "q", CatalogSeededMessage{})
	assert.ErrorContains(t, err, "failed to publish message to queue q")
}

func TestNewPublishingMarshalError(t *testing.T) {
	_, err := NewPublishing(make(chan int))
	assert.ErrorContains(t, err, "failed to marshal message")
}
