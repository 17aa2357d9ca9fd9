package model

import "errors"

var (
	// ErrInvalidAlertID is returned when a dismissal references a malformed alert id
	ErrInvalidAlertID = errors.New("invalid alert id")
)
