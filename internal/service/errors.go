package service

import "errors"

var (
	// ErrEmptyCart is returned when checkout is attempted on a cart with no items
	ErrEmptyCart = errors.New("cart is empty")
)
