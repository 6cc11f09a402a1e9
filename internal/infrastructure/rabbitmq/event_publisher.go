// Package rabbitmq publishes account domain events to a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"account-service/internal/domain/event"
)

// envelope is the wire format on the exchange: the event type doubles as
// the routing key.
type envelope struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   event.Event `json:"payload"`
}

// EventPublisher publishes domain events best-effort. When the broker is
// unreachable at construction time the publisher stays disabled for its
// whole lifetime and every Publish is a no-op returning false. Publishing
// must never fail the mutation that triggered it.
type EventPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	enabled  bool
	logger   *logrus.Logger
}

// NewEventPublisher connects to RabbitMQ and declares the durable topic
// exchange. Connection failures are logged and downgraded: the returned
// publisher is disabled, never nil, and no error escapes to the caller.
func NewEventPublisher(url, exchange string, logger *logrus.Logger) *EventPublisher {
	p := &EventPublisher{exchange: exchange, logger: logger}
	if url == "" {
		logger.Warn("rabbitmq url not configured, events disabled")
		return p
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.WithError(err).Warn("rabbitmq not available, continuing without events")
		return p
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		logger.WithError(err).Warn("rabbitmq channel failed, continuing without events")
		return p
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		logger.WithError(err).Warn("rabbitmq exchange declare failed, continuing without events")
		return p
	}
	p.conn = conn
	p.ch = ch
	p.enabled = true
	logger.WithField("exchange", exchange).Info("event publisher initialized")
	return p
}

// Enabled reports whether the publisher holds a live broker connection.
func (p *EventPublisher) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Publish sends one event with routing key equal to its type. It returns
// whether the event was handed to the broker; any failure is logged and
// swallowed. The mutex serializes sends on the shared channel.
func (p *EventPublisher) Publish(ctx context.Context, e event.Event) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return false
	}
	body, err := json.Marshal(envelope{
		Type:      e.EventType(),
		Timestamp: time.Now().UTC(),
		Payload:   e,
	})
	if err != nil {
		p.logger.WithError(err).WithField("type", e.EventType()).Error("event marshal failed")
		return false
	}
	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		e.EventType(), // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.WithError(err).WithField("type", e.EventType()).Warn("event publish failed")
		return false
	}
	p.logger.WithField("type", e.EventType()).Debug("event published")
	return true
}

// Close releases the broker connection. Safe to call multiple times.
func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.logger.WithError(err).Debug("rabbitmq channel close")
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.WithError(err).Debug("rabbitmq connection close")
		}
		p.conn = nil
	}
	p.enabled = false
}
