package model

import "errors"

var (
	// ErrRuleNotFound is returned when no rule exists for the item
	ErrRuleNotFound = errors.New("reorder rule not found")

	// ErrItemNotFound is returned when a rule references a missing item
	ErrItemNotFound = errors.New("inventory item not found for rule")

	// ErrDuplicateExecution is returned when a sweep with the same
	// idempotency key already ran
	ErrDuplicateExecution = errors.New("auto-reorder execution already performed")

	// ErrExecutionInProgress is returned when another execution currently
	// holds the tenant's reorder lock
	ErrExecutionInProgress = errors.New("auto-reorder execution already in progress")
)

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRuleNotFound) || errors.Is(err, ErrItemNotFound)
}

// IsConflictError reports whether err signals an idempotency or lock conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateExecution) || errors.Is(err, ErrExecutionInProgress)
}
