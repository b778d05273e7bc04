package workflow

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/qs-lzh/movie-catalog/internal/mq"
)

const invalidateTimeout = 5 * time.Second

// SidebarInvalidator drops cached sidebar snippets.
type SidebarInvalidator interface {
	InvalidateSidebar(ctx context.Context) (int, error)
}

type CatalogWorkflow struct {
	cache  SidebarInvalidator
	logger *zap.Logger
}

func NewCatalogWorkflow(cache SidebarInvalidator, logger *zap.Logger) *CatalogWorkflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogWorkflow{
		cache:  cache,
		logger: logger,
	}
}

func (w *CatalogWorkflow) Start(mqConn *amqp.Connection) error {
	if err := w.ConsumeCatalogSeeded(mqConn); err != nil {
		return err
	}
	return nil
}

func (w *CatalogWorkflow) ConsumeCatalogSeeded(conn *amqp.Connection) error {
	ch, err := mq.NewChannel(conn)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(mq.CatalogSeededImmediateQueue, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return err
	}

	go func() {
		for msg := range msgs {
			if err := w.handleCatalogSeeded(msg); err != nil {
				w.logger.Error("failed to handle catalog seeded event", zap.Error(err))
			}
		}
	}()

	return nil
}

func (w *CatalogWorkflow) handleCatalogSeeded(msg amqp.Delivery) error {
	var message mq.CatalogSeededMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	if w.cache == nil {
		msg.Ack(false)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	removed, err := w.cache.InvalidateSidebar(ctx)
	if err != nil {
		msg.Nack(false, true)
		return err
	}

	msg.Ack(false)
	w.logger.Info("sidebar cache invalidated",
		zap.Int("keys", removed),
		zap.Int("movies", message.Movies),
		zap.Bool("forced", message.Forced),
	)

	return nil
}
