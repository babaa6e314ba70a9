package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a single line in a user's cart. At most one item exists per
// (user_id, product_id) pair; a quantity of zero means the line is absent.
type CartItem struct {
	UserID    uuid.UUID `json:"-" db:"user_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`

	// Product is a read-time snapshot joined from the catalog. It is nil when
	// the referenced product has been removed since the item was added.
	Product *Product `json:"product,omitempty" db:"-"`
}

// LineTotal returns price * quantity for this line. Lines whose product
// snapshot is missing contribute zero rather than failing.
func (c *CartItem) LineTotal() decimal.Decimal {
	if c.Product == nil {
		return decimal.Zero
	}
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartTotal sums the line totals of the given items.
func CartTotal(items []*CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CartItemCount sums the quantities of the given items.
func CartItemCount(items []*CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
