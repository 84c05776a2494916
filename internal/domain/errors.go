// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidMobileNumber is returned when a mobile number is not exactly 10 digits.
	ErrInvalidMobileNumber = errors.New("mobile number must be 10 digits long")

	// ErrInvalidCardNumber is returned when a card number is not exactly 12 digits.
	ErrInvalidCardNumber = errors.New("card number must be 12 digits long")

	// ErrEmptyCardType is returned when a card has no type.
	ErrEmptyCardType = errors.New("card type can not be empty")

	// ErrInvalidTotalLimit is returned when a card limit is not positive.
	ErrInvalidTotalLimit = errors.New("total card limit should be greater than 0")

	// ErrNegativeAmountUsed is returned when the used amount is negative.
	ErrNegativeAmountUsed = errors.New("amount used should be equal or greater than 0")

	// ErrNegativeAvailableAmount is returned when the available amount is negative.
	ErrNegativeAvailableAmount = errors.New("available amount should be equal or greater than 0")
)

// ValidationError describes a single invalid field or dependency.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError. A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
