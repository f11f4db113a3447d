package model

import "errors"

// Expected, recoverable outcomes surfaced to the caller. Anything else coming
// out of the store is treated as an internal error.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAlreadyExists     = errors.New("already exists")
	ErrProductInUse      = errors.New("product is referenced by existing orders")
)
