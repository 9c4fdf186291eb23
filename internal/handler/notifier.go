package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const NotificationQueue = "notification_queue"

// Notifier publishes workflow notifications for the notify worker. Delivery
// is best-effort; a failed publish never fails the operation that triggered
// it.
type Notifier interface {
	Publish(ctx context.Context, msg domain.NotificationMessage) error
}

type AMQPNotifier struct {
	channel        *amqp.Channel
	publishTimeout time.Duration
}

func NewAMQPNotifier(channel *amqp.Channel, publishTimeout time.Duration) *AMQPNotifier {
	return &AMQPNotifier{
		channel:        channel,
		publishTimeout: publishTimeout,
	}
}

func (n *AMQPNotifier) Publish(ctx context.Context, msg domain.NotificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.publishTimeout)
	defer cancel()

	return n.channel.PublishWithContext(
		ctx,
		"",
		NotificationQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
