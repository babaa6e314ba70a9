package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. Orders start as pending and
// only move forward through confirmed to delivered, or sideways to cancelled.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Delivered and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}

// OrderItem is an immutable snapshot of a cart line taken at checkout.
type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Total       decimal.Decimal `json:"total" db:"total"`
}

// Order represents a placed order. Once created the only mutable field is the
// status (and delivery date, set when the order is delivered).
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	Items           []OrderItem     `json:"items" db:"-"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	DeliveryAddress string          `json:"delivery_address" db:"delivery_address"`
	PhoneNumber     string          `json:"phone_number,omitempty" db:"phone_number"`
	PaymentMethod   string          `json:"payment_method,omitempty" db:"payment_method"`
	OrderDate       time.Time       `json:"order_date" db:"order_date"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty" db:"delivery_date"`

	// UserName is joined for admin listings and absent elsewhere.
	UserName string `json:"user_name,omitempty" db:"-"`
}
