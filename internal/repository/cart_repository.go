package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Gokul0616/JOSHI-BROTHERS/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for cart data access. The cart table
// holds at most one row per (user_id, product_id), enforced by a unique
// constraint; Add relies on it for merge-on-conflict semantics.
type CartRepository interface {
	Add(ctx context.Context, item *domain.CartItem) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Delete(ctx context.Context, userID, productID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)
	ClearByUser(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

// Add upserts a cart line. Repeated adds for the same product sum quantities,
// matching the storefront's add-to-cart merge behavior.
func (r *cartRepository) Add(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	_, err := r.db.ExecContext(ctx, query, item.UserID, item.ProductID, item.Quantity, item.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// SetQuantity replaces the quantity of an existing cart line. It is idempotent:
// setting the same quantity twice leaves the cart unchanged.
func (r *cartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE user_id = $1 AND product_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to set cart item quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// Delete removes a cart line
func (r *cartRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// ListByUser retrieves the user's cart lines with a product snapshot joined
// from the catalog. Lines whose product has been removed keep a nil snapshot.
func (r *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	query := `
		SELECT c.user_id, c.product_id, c.quantity, c.added_at,
		       p.id, p.name, p.description, p.price, p.category, p.brand,
		       p.image_url, p.stock, p.unit, p.created_at, p.updated_at
		FROM cart_items c
		LEFT JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.added_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []*domain.CartItem{}
	for rows.Next() {
		item := &domain.CartItem{}
		var (
			productID   uuid.NullUUID
			name        sql.NullString
			description sql.NullString
			price       decimal.NullDecimal
			category    sql.NullString
			brand       sql.NullString
			imageURL    sql.NullString
			stock       sql.NullInt64
			unit        sql.NullString
			createdAt   sql.NullTime
			updatedAt   sql.NullTime
		)

		err := rows.Scan(
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.AddedAt,
			&productID,
			&name,
			&description,
			&price,
			&category,
			&brand,
			&imageURL,
			&stock,
			&unit,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		if productID.Valid {
			item.Product = &domain.Product{
				ID:          productID.UUID,
				Name:        name.String,
				Description: description.String,
				Price:       price.Decimal,
				Category:    category.String,
				Brand:       brand.String,
				ImageURL:    imageURL.String,
				Stock:       int(stock.Int64),
				Unit:        unit.String,
				CreatedAt:   createdAt.Time,
				UpdatedAt:   updatedAt.Time,
			}
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// ClearByUser removes every cart line belonging to the user
func (r *cartRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
