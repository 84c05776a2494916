package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the card service. Callers match them with errors.Is;
// the typed errors below carry the details and unwrap to these sentinels.
//
// The API layer maps ErrNotFound to 404 and ErrCardAlreadyExists to 409. Anything
// else is treated as an internal failure.
var (
	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrCardAlreadyExists indicates that a card is already issued for the mobile number.
	ErrCardAlreadyExists = errors.New("card already exists")

	// ErrCardNumberExhausted indicates that no unused card number was found within
	// the configured number of attempts.
	ErrCardNumberExhausted = errors.New("no unused card number found")
)

// NotFoundError reports a lookup that matched nothing.
type NotFoundError struct {
	Resource string
	Field    string
	Value    string
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, field, value string) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with the given input data %s : '%s'", e.Resource, e.Field, e.Value)
}

// Unwrap returns ErrNotFound so errors.Is matches the sentinel.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// CardAlreadyExistsError reports an attempt to issue a second card for a mobile number.
type CardAlreadyExistsError struct {
	MobileNumber string
}

// Error implements the error interface.
func (e *CardAlreadyExistsError) Error() string {
	return fmt.Sprintf("Card already registered with given mobileNumber %s", e.MobileNumber)
}

// Unwrap returns ErrCardAlreadyExists so errors.Is matches the sentinel.
func (e *CardAlreadyExistsError) Unwrap() error {
	return ErrCardAlreadyExists
}

// CardServiceError wraps unexpected failures with the operation that hit them.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
