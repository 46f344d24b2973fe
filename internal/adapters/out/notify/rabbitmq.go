package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeType = "topic"
	// CompletedRoutingKey is the routing key of order-completed messages.
	CompletedRoutingKey = "order.completed"
)

// Channel is the part of *amqp.Channel the notifier publishes through.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ ports.OrderNotifier = (*RabbitNotifier)(nil)

type RabbitNotifier struct {
	ch       Channel
	exchange string
	clock    kernel.Clock
	logger   *slog.Logger
}

func NewRabbitNotifier(ch Channel, exchange string, clock kernel.Clock, logger *slog.Logger) *RabbitNotifier {
	return &RabbitNotifier{
		ch:       ch,
		exchange: exchange,
		clock:    clock,
		logger:   logger.With("component", "rabbitmq_notifier"),
	}
}

func (n *RabbitNotifier) NotifyCompleted(ctx context.Context, o *order.Order) error {
	body, err := json.Marshal(completedNotification(o))
	if err != nil {
		return fmt.Errorf("could not marshal notification: %w", err)
	}

	err = n.ch.PublishWithContext(ctx,
		n.exchange,          // exchange
		CompletedRoutingKey, // routing key
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    o.ID().String(),
			Timestamp:    n.clock.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("could not publish notification for order %s: %w", o.ID(), err)
	}

	n.logger.DebugContext(ctx, "completion notification published", "order_id", o.ID().String())
	return nil
}

// Dial connects to RabbitMQ and declares the durable topic exchange notifications
// are published to. The caller closes the connection.
func Dial(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,     // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	return conn, ch, nil
}
