package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrCardAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErr),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to clients.
// NotFound and CardAlreadyExists messages only echo the caller's own input;
// everything else collapses to MessageInternalError.
func GetSafeErrorMessage(err error) string {
	var notFound *service.NotFoundError
	var exists *service.CardAlreadyExistsError
	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return MessageInternalError
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.As(err, &exists):
		return exists.Error()
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	default:
		return MessageInternalError
	}
}

// SanitizeValidationError turns validator errors into a field-specific message
// without echoing the rejected values.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, fieldMessage(jsonFieldName(fe.Field()), fe))
	}
	return strings.Join(messages, "; ")
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch field {
	case "mobileNumber":
		return "Mobile Number must be 10 digits long"
	case "cardNumber":
		return "Card Number must be 12 digits long"
	case "cardType":
		return "Card Type can not be empty"
	case "totalLimit":
		return "Total card limit should be greater than zero"
	case "amountUsed":
		return "Total amount used should be equal or greater than zero"
	case "availableAmount":
		return "Total available amount should be equal or greater than zero"
	}
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
}

// jsonFieldName lower-cases the first letter of a struct field name, which
// matches the JSON names used by domain.CardDTO.
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "number", "numeric":
		return "must contain only digits"
	case "len":
		return "wrong length"
	case "gt", "gte":
		return "too small"
	default:
		return "validation failed"
	}
}
