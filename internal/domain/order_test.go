package domain

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_SnapshotTotalEqualsSumOfLines(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals sum of price times quantity", prop.ForAll(
		func(prices []int64, quantities []int) bool {
			n := len(prices)
			if len(quantities) < n {
				n = len(quantities)
			}

			lines := make([]*CartLine, 0, n)
			for i := 0; i < n; i++ {
				lines = append(lines, &CartLine{
					CartItem: CartItem{ID: int64(i + 1), ProductID: int64(i + 1), Quantity: quantities[i], Size: "M", Color: "Black"},
					Product:  Product{ID: int64(i + 1), Name: "p", Price: prices[i]},
				})
			}

			items, total, err := SnapshotLines(lines)
			if err != nil || len(items) != n {
				return false
			}

			var sum int64
			for _, item := range items {
				sum += item.Price * int64(item.Quantity)
			}
			return sum == total
		},
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
		gen.SliceOf(gen.IntRange(1, 100)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSnapshotLines_CopiesVariantAndPrice(t *testing.T) {
	line := &CartLine{
		CartItem: CartItem{ID: 7, SessionID: "s1", ProductID: 1, Quantity: 2, Size: "M", Color: "Black"},
		Product:  Product{ID: 1, Name: "T-Shirt 'CHAOS'", Price: 3500},
	}

	items, total, err := SnapshotLines([]*CartLine{line})
	require.NoError(t, err)

	assert.Equal(t, int64(7000), total)
	assert.Equal(t, []OrderItem{{ProductID: 1, Name: "T-Shirt 'CHAOS'", Quantity: 2, Price: 3500, Size: "M", Color: "Black"}}, items)

	// Later catalog edits must not leak into the snapshot
	line.Product.Price = 9999
	assert.Equal(t, int64(3500), items[0].Price)
}

func TestSnapshotLines_LineOverflowIsRejected(t *testing.T) {
	line := &CartLine{
		CartItem: CartItem{ID: 1, ProductID: 1, Quantity: 2, Size: "M", Color: "Black"},
		Product:  Product{ID: 1, Name: "Gold", Price: 5_000_000_000_000_000_000},
	}

	items, total, err := SnapshotLines([]*CartLine{line})

	assert.ErrorIs(t, err, ErrTotalOverflow)
	assert.Nil(t, items)
	assert.Zero(t, total)
}

func TestSnapshotLines_SumOverflowIsRejected(t *testing.T) {
	lines := []*CartLine{
		{CartItem: CartItem{ID: 1, ProductID: 1, Quantity: 1}, Product: Product{ID: 1, Price: math.MaxInt64 - 10}},
		{CartItem: CartItem{ID: 2, ProductID: 2, Quantity: 1}, Product: Product{ID: 2, Price: 11}},
	}

	_, _, err := SnapshotLines(lines)
	assert.ErrorIs(t, err, ErrTotalOverflow)
}

func TestProperty_BoundedCartsNeverOverflow(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("lines within price and quantity caps always total", prop.ForAll(
		func(price int64, quantity int) bool {
			line := &CartLine{
				CartItem: CartItem{ID: 1, ProductID: 1, Quantity: quantity},
				Product:  Product{ID: 1, Price: price},
			}
			_, total, err := SnapshotLines([]*CartLine{line})
			return err == nil && total == price*int64(quantity)
		},
		gen.Int64Range(0, MaxPrice),
		gen.IntRange(1, MaxQuantity),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusConfirmed.IsValid())
	assert.True(t, OrderStatusShipped.IsValid())
	assert.False(t, OrderStatus("delivered").IsValid())
}

func TestProduct_VariantMembership(t *testing.T) {
	p := &Product{Sizes: []string{"S", "M"}, Colors: []string{"Black"}}

	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XL"))
	assert.True(t, p.HasColor("Black"))
	assert.False(t, p.HasColor("black"))
}
