package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/cards-api/internal/api/shared"
	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.NewNotFoundError("Card", "mobileNumber", "1234567890"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("outer: %w", service.ErrNotFound), http.StatusNotFound},
		{"already exists", &service.CardAlreadyExistsError{MobileNumber: "1234567890"}, http.StatusConflict},
		{"domain validation", domain.NewValidationError("mobileNumber", "must be 10 digits", nil), http.StatusBadRequest},
		{"exhausted", service.NewCardServiceError("create_card", "x", service.ErrCardNumberExhausted), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, MessageInternalError, GetSafeErrorMessage(nil))
	assert.Equal(t, MessageInternalError,
		GetSafeErrorMessage(service.NewCardServiceError("fetch_card", "failed", errors.New("pq: password authentication failed"))))
	assert.Equal(t, "Card already registered with given mobileNumber 1234567890",
		GetSafeErrorMessage(fmt.Errorf("wrapped: %w", &service.CardAlreadyExistsError{MobileNumber: "1234567890"})))
	assert.Equal(t, "Invalid cardStore: cannot be nil",
		GetSafeErrorMessage(domain.NewValidationError("cardStore", "cannot be nil", nil)))
}

func TestSanitizeValidationError(t *testing.T) {
	dto := domain.CardDTO{
		MobileNumber: "12",
		CardNumber:   "567890123456",
		CardType:     "",
		TotalLimit:   0,
	}
	err := shared.ValidateRequest(dto)
	require.Error(t, err)

	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Mobile Number must be 10 digits long")
	assert.Contains(t, msg, "Card Type can not be empty")
	assert.Contains(t, msg, "Total card limit should be greater than zero")
	assert.NotContains(t, msg, "Card Number")
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("plain")))
}
