package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock for product")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create writes the order and its line items, decrements product stock,
	// and clears the user's cart in a single transaction. It returns
	// ErrInsufficientStock when any line exceeds the available stock.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, deliveryDate *time.Time) error
	Count(ctx context.Context) (int, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order atomically. Order placement must leave no partial
// state behind: either the order exists, stock is reserved, and the cart is
// empty, or nothing changed.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, user_id, total_amount, status, delivery_address, phone_number, payment_method, order_date, delivery_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.ExecContext(
		ctx,
		orderQuery,
		order.ID,
		order.UserID,
		order.TotalAmount,
		order.Status,
		order.DeliveryAddress,
		order.PhoneNumber,
		order.PaymentMethod,
		order.OrderDate,
		order.DeliveryDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	stockQuery := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, itemQuery, order.ID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.Total)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}

		result, err := tx.ExecContext(ctx, stockQuery, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductName)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

const orderColumns = "o.id, o.user_id, o.total_amount, o.status, o.delivery_address, o.phone_number, o.payment_method, o.order_date, o.delivery_date"

func (r *orderRepository) scanOrder(rows *sql.Rows, withUserName bool) (*domain.Order, error) {
	order := &domain.Order{}
	dest := []interface{}{
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.Status,
		&order.DeliveryAddress,
		&order.PhoneNumber,
		&order.PaymentMethod,
		&order.OrderDate,
		&order.DeliveryDate,
	}
	if withUserName {
		dest = append(dest, &order.UserName)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT product_id, product_name, quantity, price, total
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.OrderItem{}
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.Total); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	return rows.Err()
}

// FindByID retrieves a single order with its line items
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders o WHERE o.id = $1`, orderColumns)

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.Status,
		&order.DeliveryAddress,
		&order.PhoneNumber,
		&order.PaymentMethod,
		&order.OrderDate,
		&order.DeliveryDate,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, withUserName bool, args ...interface{}) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows, withUserName)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// ListByUser retrieves the user's orders, newest first
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.order_date DESC
	`, orderColumns)

	return r.queryOrders(ctx, query, false, userID)
}

// List retrieves all orders with customer names, newest first
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(u.name, '')
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.order_date DESC
	`, orderColumns)

	return r.queryOrders(ctx, query, true)
}

// ListRecent retrieves the most recent orders with customer names
func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(u.name, '')
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.order_date DESC
		LIMIT $1
	`, orderColumns)

	return r.queryOrders(ctx, query, true, limit)
}

// UpdateStatus changes an order's status and optionally records the delivery date
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, deliveryDate *time.Time) error {
	query := `
		UPDATE orders
		SET status = $2, delivery_date = COALESCE($3, delivery_date)
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, deliveryDate)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Count returns the total number of orders
func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
