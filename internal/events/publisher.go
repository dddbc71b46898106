// Package events fans persisted notifications out to a RabbitMQ topic
// exchange so external workers (mailers, push gateways) can deliver them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rabbitmq/amqp091-go"

	"github.com/rpggio/gigboard/internal/domain/notification"
)

// DefaultExchange is the topic exchange notifications are published to.
const DefaultExchange = "gigboard.events"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher publishes notifications as persistent JSON messages.
type Publisher struct {
	conn     *amqp091.Connection
	ch       channel
	exchange string
	mu       sync.Mutex
}

// Dial connects to url and declares exchange as a durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends n with routing key "notification.<type>".
func (p *Publisher) Publish(ctx context.Context, n *notification.Notification) error {
	msg, err := message(n)
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(n.Type), false, false, msg); err != nil {
		return fmt.Errorf("publishing notification %s: %w", n.ID, err)
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RoutingKey returns the routing key used for notifications of typ.
func RoutingKey(typ notification.Type) string {
	return "notification." + string(typ)
}

func message(n *notification.Notification) (amqp091.Publishing, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("encoding notification: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    n.ID,
		Timestamp:    n.CreatedAt,
		Type:         string(n.Type),
		Body:         body,
	}, nil
}
