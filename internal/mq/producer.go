package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the subset of *amqp.Channel used to send messages.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

func NewPublishing(message any) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal message: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Timestamp:    time.Now(),
	}, nil
}

func SendImmediateMessage(ctx context.Context, ch Publisher, queueName string, message any) error {
	publishing, err := NewPublishing(message)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, publishing); err != nil {
		return fmt.Errorf("failed to publish message to queue %s: %w", queueName, err)
	}

	return nil
}

// PublishCatalogSeeded declares the catalog queue on conn and sends msg to
// it.
func PublishCatalogSeeded(ctx context.Context, conn *amqp.Connection, msg CatalogSeededMessage) error {
	ch, err := NewChannel(conn)
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := SetupImmediateQueue(ch, CatalogSeededImmediateQueue); err != nil {
		return err
	}
	return SendImmediateMessage(ctx, ch, CatalogSeededImmediateQueue, msg)
}
