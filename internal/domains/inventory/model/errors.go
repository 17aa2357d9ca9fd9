package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrItemNotFound is returned when an inventory item does not exist
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrSKUAlreadyExists is returned when creating a duplicate SKU for a tenant
	ErrSKUAlreadyExists = errors.New("an item with this SKU already exists")

	// ErrSnapshotUnavailable is returned when a fetch fails and no previous
	// snapshot exists to fall back on
	ErrSnapshotUnavailable = errors.New("inventory snapshot unavailable")

	// ErrSnapshotStale is returned alongside a stale snapshot when a refresh
	// failed; callers may treat it as a non-fatal notice
	ErrSnapshotStale = errors.New("serving stale inventory snapshot: refresh failed")

	// ErrInvalidMovement is returned for malformed movement input
	ErrInvalidMovement = errors.New("invalid stock movement")

	// ErrInvalidQuantity is returned when a quantity is negative
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
)

// NewItemNotFoundError creates a detailed not found error
func NewItemNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrItemNotFound, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}

// IsStaleError reports whether err only signals a stale (but usable) snapshot.
func IsStaleError(err error) bool {
	return errors.Is(err, ErrSnapshotStale)
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMovement) ||
		errors.Is(err, ErrInvalidQuantity)
}
