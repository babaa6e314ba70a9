package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher publishes order events to durable RabbitMQ queues on the
// default exchange.
type RabbitPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher dials the broker and declares the queues so publishing
// never fails due to missing infrastructure.
func NewRabbitPublisher(url string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, queue := range []string{OrderCreatedQueue, OrderStatusChangedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
		}
	}

	return &RabbitPublisher{conn: conn, ch: ch}, nil
}

// PublishOrderCreated emits an OrderCreated event
func (p *RabbitPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	ev := OrderCreated{
		EventType:   "OrderCreated",
		OrderID:     order.ID.String(),
		UserID:      order.UserID.String(),
		TotalAmount: order.TotalAmount.String(),
		Timestamp:   time.Now().UTC(),
	}

	for _, item := range order.Items {
		ev.Items = append(ev.Items, OrderLineItem{
			ProductID: item.ProductID.String(),
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			Price:     item.Price.String(),
		})
	}

	return p.publishJSON(ctx, OrderCreatedQueue, ev)
}

// PublishOrderStatusChanged emits an OrderStatusChanged event
func (p *RabbitPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error {
	ev := OrderStatusChanged{
		EventType: "OrderStatusChanged",
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		Status:    string(order.Status),
		Timestamp: time.Now().UTC(),
	}

	return p.publishJSON(ctx, OrderStatusChangedQueue, ev)
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, queue string, ev interface{}) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",    // default exchange
		queue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Close releases the channel and connection
func (p *RabbitPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
