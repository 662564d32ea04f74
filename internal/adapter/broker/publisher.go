package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// Publisher announces order status changes to other services.
type Publisher interface {
	PublishOrderStatus(ctx context.Context, order model.Order) error
	Close() error
}

// OrderEvent is the JSON body of an order status message.
type OrderEvent struct {
	OrderID    int64             `json:"order_id"`
	Status     model.OrderStatus `json:"status"`
	Total      int64             `json:"total"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// RoutingKey returns the topic routing key for status.
func RoutingKey(status model.OrderStatus) string {
	return "order." + string(status)
}

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       channel
	conn     io.Closer
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

// Dial connects to the broker at url and declares exchange.
func Dial(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open broker channel: %w", err)
	}
	p, err := newAMQPPublisher(ch, conn, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	logger.Info("broker connected", slog.String("exchange", exchange))
	return p, nil
}

func newAMQPPublisher(ch channel, conn io.Closer, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{
		ch:       ch,
		conn:     conn,
		exchange: exchange,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// PublishOrderStatus sends the current status of order. The trace context of
// ctx travels in the message headers.
func (p *AMQPPublisher) PublishOrderStatus(ctx context.Context, order model.Order) error {
	body, err := json.Marshal(OrderEvent{
		OrderID:    order.ID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: p.now(),
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(headers))

	msg := amqp.Publishing{
		Headers:      headers,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Publish(p.exchange, RoutingKey(order.Status), false, false, msg); err != nil {
		return fmt.Errorf("publish order %d event: %w", order.ID, err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			return err
		}
		p.ch = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

// headerCarrier adapts AMQP headers to the otel text map carrier.
type headerCarrier amqp.Table

func (c headerCarrier) Get(key string) string {
	v, _ := c[key].(string)
	return v
}

func (c headerCarrier) Set(key, value string) { c[key] = value }

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishOrderStatus(_ context.Context, order model.Order) error {
	p.logger.Info("order status changed",
		slog.Int64("order_id", order.ID),
		slog.String("status", string(order.Status)),
		slog.String("routing_key", RoutingKey(order.Status)),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
