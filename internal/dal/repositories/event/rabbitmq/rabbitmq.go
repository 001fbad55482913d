package rabbitmqrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/ioutboxrepo"
	"github.com/TaoufikZa/watami-mvp/internal/dal/rabbitmq"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/event"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/outbox"
)

const (
	queueName  = "watami.orders.events"
	maxRetries = 5
)

// EventRabbitMQRepository publishes order lifecycle events to RabbitMQ.
// Publish failures are parked in the outbox table and retried by the outbox
// worker, so a broker hiccup never loses an event.
type EventRabbitMQRepository struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	queue      amqp.Queue
}

// NewEventRabbitMQRepository creates a new event publisher.
func NewEventRabbitMQRepository(
	client *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *EventRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &EventRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		queue:      queue,
	}
}

// PublishOrderEvent publishes a single order event.
func (r *EventRabbitMQRepository) PublishOrderEvent(ctx context.Context, ev event.OrderEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = r.client.Channel().Publish(
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err == nil {
		return nil
	}

	slog.Warn("Failed to publish order event, parking in outbox",
		"order_id", ev.OrderID,
		"status", ev.Status,
		"error", err,
	)

	now := time.Now()
	outboxErr := r.outboxRepo.Insert(ctx, outbox.OutboxMessage{
		QueueName:   r.queue.Name,
		RoutingKey:  r.queue.Name,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		LastError:   err.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
	if outboxErr != nil {
		return fmt.Errorf("failed to park order event in outbox: %w", outboxErr)
	}

	return nil
}
