package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/events"
	"github.com/Gokul0616/JOSHI-BROTHERS/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrEmptyDeliveryAddress    = errors.New("delivery address is required")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// PlaceOrderInput carries the checkout form fields
type PlaceOrderInput struct {
	DeliveryAddress string
	PhoneNumber     string
	PaymentMethod   string
}

// OrderService converts carts into orders and manages the order lifecycle.
// Totals are always computed here from current catalog prices; a client
// supplied total is never trusted.
type OrderService interface {
	Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Place creates an order from the user's current cart. The order snapshot is
// priced from the catalog at placement time; the cart and product stock are
// updated in the same transaction, so a failed placement changes nothing.
func (s *orderService) Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*domain.Order, error) {
	address := strings.TrimSpace(input.DeliveryAddress)
	if address == "" {
		return nil, ErrEmptyDeliveryAddress
	}

	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	total := decimal.Zero
	orderItems := []domain.OrderItem{}
	for _, item := range cartItems {
		// Lines whose product vanished from the catalog are dropped rather
		// than aborting checkout.
		if item.Product == nil {
			continue
		}
		lineTotal := item.LineTotal()
		total = total.Add(lineTotal)
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
			Total:       lineTotal,
		})
	}

	if len(orderItems) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           orderItems,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		DeliveryAddress: address,
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		PaymentMethod:   input.PaymentMethod,
		OrderDate:       time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
		s.logger.Warn("Failed to publish order created event",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	return order, nil
}

// ListByUser retrieves the user's order history, newest first
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// List retrieves all orders for the admin panel
func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order through its lifecycle. Moving to delivered
// records the delivery date.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, status)
	}

	var deliveryDate *time.Time
	if status == domain.OrderStatusDelivered {
		now := time.Now()
		deliveryDate = &now
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, deliveryDate); err != nil {
		return nil, err
	}

	order.Status = status
	order.DeliveryDate = deliveryDate

	if err := s.publisher.PublishOrderStatusChanged(ctx, order); err != nil {
		s.logger.Warn("Failed to publish order status event",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	return order, nil
}
