package domain

import (
	"errors"
	"math"
)

// MaxQuantity caps the quantity of a single cart line
const MaxQuantity = 1000

// ErrTotalOverflow is returned when a line or order total does not fit in int64
var ErrTotalOverflow = errors.New("order total out of range")

// CartItem is one line in a session's cart. Rows are never updated in place.
type CartItem struct {
	ID        int64  `json:"id" db:"id"`
	SessionID string `json:"sessionId" db:"session_id"`
	ProductID int64  `json:"productId" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
	Size      string `json:"size" db:"size"`
	Color     string `json:"color" db:"color"`
}

// CartLine is a cart item joined with the product it references
type CartLine struct {
	CartItem
	Product Product `json:"product"`
}

// Subtotal is the line price at the product's current price
func (l *CartLine) Subtotal() (int64, error) {
	price, qty := l.Product.Price, int64(l.Quantity)
	if price < 0 || qty < 0 {
		return 0, ErrTotalOverflow
	}
	if qty != 0 && price > math.MaxInt64/qty {
		return 0, ErrTotalOverflow
	}
	return price * qty, nil
}

// AddCartItemInput is the add-to-cart payload
type AddCartItemInput struct {
	SessionID string `json:"sessionId" validate:"required,max=255"`
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=1000"`
	Size      string `json:"size" validate:"required,max=50"`
	Color     string `json:"color" validate:"required,max=50"`
}
