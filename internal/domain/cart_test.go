package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartItem_LineTotal_MissingProductContributesZero(t *testing.T) {
	item := &CartItem{
		ProductID: uuid.New(),
		Quantity:  3,
		Product:   nil,
	}

	assert.True(t, item.LineTotal().IsZero())
}

// Cart totals equal the sum of price times quantity over every line
func TestProperty_CartTotalSumsLineTotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals sum of price*quantity", prop.ForAll(
		func(prices []int, quantities []int) bool {
			n := len(prices)
			if len(quantities) < n {
				n = len(quantities)
			}

			items := make([]*CartItem, 0, n)
			expected := decimal.Zero
			expectedCount := 0
			for i := 0; i < n; i++ {
				price := decimal.NewFromInt(int64(prices[i])).Div(decimal.NewFromInt(100))
				qty := quantities[i]
				items = append(items, &CartItem{
					ProductID: uuid.New(),
					Quantity:  qty,
					Product:   &Product{ID: uuid.New(), Price: price},
				})
				expected = expected.Add(price.Mul(decimal.NewFromInt(int64(qty))))
				expectedCount += qty
			}

			return CartTotal(items).Equal(expected) && CartItemCount(items) == expectedCount
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Lines whose product snapshot is missing never affect the total
func TestProperty_MissingSnapshotsNeverAffectTotal(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("nil-product lines contribute zero", prop.ForAll(
		func(price int, qty int, ghostQty int) bool {
			p := decimal.NewFromInt(int64(price)).Div(decimal.NewFromInt(100))
			items := []*CartItem{
				{ProductID: uuid.New(), Quantity: qty, Product: &Product{Price: p}},
				{ProductID: uuid.New(), Quantity: ghostQty, Product: nil},
			}

			return CartTotal(items).Equal(p.Mul(decimal.NewFromInt(int64(qty))))
		},
		gen.IntRange(1, 100000),
		gen.IntRange(1, 50),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
