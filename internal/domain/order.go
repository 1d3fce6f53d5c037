package domain

import (
	"math"
	"time"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
)

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped:
		return true
	}
	return false
}

// OrderItem is the frozen copy of a cart line taken at checkout
type OrderItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Order is a persisted checkout. Total and Items never change after creation.
type Order struct {
	ID            int64       `json:"id" db:"id"`
	SessionID     string      `json:"sessionId" db:"session_id"`
	CustomerName  string      `json:"customerName" db:"customer_name"`
	CustomerEmail string      `json:"customerEmail" db:"customer_email"`
	CustomerPhone string      `json:"customerPhone" db:"customer_phone"`
	Address       string      `json:"address" db:"address"`
	Total         int64       `json:"total" db:"total"`
	Items         []OrderItem `json:"items" db:"items"`
	Status        OrderStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}

// CustomerInfo is the shipping and contact data supplied at checkout
type CustomerInfo struct {
	CustomerName  string `json:"customerName" validate:"required,min=2,max=255"`
	CustomerEmail string `json:"customerEmail" validate:"required,email,max=255"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=10,max=50"`
	Address       string `json:"address" validate:"required,min=10"`
}

// CreateOrderInput is the order-creation payload
type CreateOrderInput struct {
	SessionID string `json:"sessionId" validate:"required,max=255"`
	CustomerInfo
}

// SnapshotLines freezes cart lines into order items and sums the total.
// It fails with ErrTotalOverflow rather than wrap.
func SnapshotLines(lines []*CartLine) ([]OrderItem, int64, error) {
	items := make([]OrderItem, 0, len(lines))
	var total int64

	for _, line := range lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
			Size:      line.Size,
			Color:     line.Color,
		})
		subtotal, err := line.Subtotal()
		if err != nil {
			return nil, 0, err
		}
		if total > math.MaxInt64-subtotal {
			return nil, 0, ErrTotalOverflow
		}
		total += subtotal
	}

	return items, total, nil
}
