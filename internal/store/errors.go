package store

import (
	"errors"
	"fmt"
)

// Sentinels returned by every CardStore backend. Callers match them with errors.Is.
var (
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate wraps both unique-key violations below.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity wraps the domain validation error that rejected a write.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCardNotFound indicates that the requested card does not exist in the store.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrDuplicateMobileNumber indicates that a card already exists for the mobile number.
	ErrDuplicateMobileNumber = fmt.Errorf("%w: mobile number", ErrDuplicate)

	// ErrDuplicateCardNumber indicates that the card number is already issued.
	ErrDuplicateCardNumber = fmt.Errorf("%w: card number", ErrDuplicate)
)

// IsNotFoundError reports whether err matches ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err matches either duplicate sentinel.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which backend operation failed, e.g. Entity "card",
// Operation "insert".
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError returns a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
