package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrOutOfStock   = errors.New("product is out of stock")
	// ErrStockLimitReached means the cart already holds all available
	// stock of a product. The existing cart line is kept as is.
	ErrStockLimitReached = errors.New("no more stock available")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// InsufficientStockError aborts a checkout whose cart asks for more of
// a product than is in stock.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
