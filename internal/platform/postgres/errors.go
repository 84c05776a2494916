package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/phrazzld/cards-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// Constraint names from migrations/00001_create_cards.sql.
const (
	mobileNumberConstraint = "cards_mobile_number_key"
	cardNumberConstraint   = "cards_card_number_key"
)

// driverError is the driver-neutral view of a PostgreSQL error.
type driverError struct {
	code       string
	constraint string
	column     string
}

// asDriverError extracts code and constraint details from a pgx or lib/pq error.
func asDriverError(err error) (driverError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return driverError{code: pgErr.Code, constraint: pgErr.ConstraintName, column: pgErr.ColumnName}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return driverError{code: string(pqErr.Code), constraint: pqErr.Constraint, column: pqErr.Column}, true
	}
	return driverError{}, false
}

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context and provide better debugging information.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrCardNotFound, err)
	}

	dErr, ok := asDriverError(err)
	if !ok {
		return err
	}

	switch dErr.code {
	case uniqueViolationCode:
		switch dErr.constraint {
		case mobileNumberConstraint:
			return fmt.Errorf("%w: %v", store.ErrDuplicateMobileNumber, err)
		case cardNumberConstraint:
			return fmt.Errorf("%w: %v", store.ErrDuplicateCardNumber, err)
		default:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		}
	case checkViolationCode:
		return fmt.Errorf(
			"%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity,
			dErr.constraint,
			err,
		)
	case notNullViolationCode:
		return fmt.Errorf(
			"%w: not null violation (%s): %v",
			store.ErrInvalidEntity,
			dErr.column,
			err,
		)
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation
// raised through either supported driver.
func IsUniqueViolation(err error) bool {
	dErr, ok := asDriverError(err)
	return ok && dErr.code == uniqueViolationCode
}

// CheckRowsAffected examines the number of rows affected by a database operation.
// If no rows were affected, it returns store.ErrCardNotFound.
func CheckRowsAffected(result sql.Result) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrCardNotFound
	}

	return nil
}
