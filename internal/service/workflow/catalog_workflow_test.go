package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/qs-lzh/movie-catalog/internal/mq"
)

type ackRecorder struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error {
	a.acked++
	return nil
}

func (a *ackRecorder) Nack(tag uint64, multiple bool, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

type fakeInvalidator struct {
	calls   int
	removed int
	err     error
}

func (f *fakeInvalidator) InvalidateSidebar(ctx context.Context) (int, error) {
	f.calls++
	return f.removed, f.err
}

func delivery(t *testing.T, ack amqp.Acknowledger, body any) amqp.Delivery {
	t.Helper()
	var data []byte
	switch b := body.(type) {
	case []byte:
		data = b
	default:
		var err error
		data, err = json.Marshal(b)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: data}
}

func TestHandleCatalogSeededInvalidatesSidebar(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	inv := &fakeInvalidator{removed: 6}
	w := NewCatalogWorkflow(inv, zap.New(core))
	ack := &ackRecorder{}

	err := w.handleCatalogSeeded(delivery(t, ack, mq.CatalogSeededMessage{Movies: 40}))
	require.NoError(t, err)

	assert.Equal(t, 1, inv.calls)
	assert.Equal(t, 1, ack.acked)
	assert.Zero(t, ack.nacked)

	entries := logs.FilterMessage("sidebar cache invalidated").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 6, entries[0].ContextMap()["keys"])
	assert.EqualValues(t, 40, entries[0].ContextMap()["movies"])
}

func TestHandleCatalogSeededBadBodyIsDropped(t *testing.T) {
	inv := &fakeInvalidator{}
	w := NewCatalogWorkflow(inv, nil)
	ack := &ackRecorder{}

	err := w.handleCatalogSeeded(delivery(t, ack, []byte("{not json")))
	require.Error(t, err)

	assert.Zero(t, inv.calls)
	assert.Equal(t, 1, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestHandleCatalogSeededCacheErrorRequeues(t *testing.T) {
	inv := &fakeInvalidator{err: errors.New("redis down")}
	w := NewCatalogWorkflow(inv, nil)
	ack := &ackRecorder{}

	err := w.handleCatalogSeeded(delivery(t, ack, mq.CatalogSeededMessage{}))
	require.Error(t, err)

	assert.Equal(t, 1, ack.nacked)
	assert.True(t, ack.requeue)
	assert.Zero(t, ack.acked)
}

func TestHandleCatalogSeededWithoutCacheAcks(t *testing.T) {
	w := NewCatalogWorkflow(nil, nil)
	ack := &ackRecorder{}

	require.NoError(t, w.handleCatalogSeeded(delivery(t, ack, mq.CatalogSeededMessage{})))
	assert.Equal(t, 1, ack.acked)
}
