package events

import (
	"context"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
)

// Queue names for order lifecycle events
const (
	OrderCreatedQueue       = "order.created"
	OrderStatusChangedQueue = "order.status_changed"
)

// OrderCreated is emitted once an order has been committed
type OrderCreated struct {
	EventType   string          `json:"event_type"`
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	TotalAmount string          `json:"total_amount"`
	Items       []OrderLineItem `json:"items"`
	Timestamp   time.Time       `json:"timestamp"`
}

// OrderLineItem mirrors the order snapshot line for consumers
type OrderLineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// OrderStatusChanged is emitted when staff move an order through its lifecycle
type OrderStatusChanged struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits order lifecycle events. Publishing is best effort: order
// placement never fails because the broker is down.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error
	Close() error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return nil
}

func (NopPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
