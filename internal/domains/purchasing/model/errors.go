package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when a purchase order does not exist
	ErrOrderNotFound = errors.New("purchase order not found")

	// ErrEmptyOrder is returned when an order has no lines
	ErrEmptyOrder = errors.New("purchase order must contain at least one line")

	// ErrDuplicateOrder is returned when an order with the same
	// idempotency key already exists
	ErrDuplicateOrder = errors.New("purchase order already created for this execution")

	// ErrInvalidStatusTransition is returned for a status change the order
	// lifecycle does not allow
	ErrInvalidStatusTransition = errors.New("invalid purchase order status transition")
)

// NewOrderNotFoundError creates a detailed not found error
func NewOrderNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrOrderNotFound, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}
