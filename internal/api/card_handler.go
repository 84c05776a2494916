package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/cards-api/internal/api/shared"
	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/platform/logger"
	"github.com/phrazzld/cards-api/internal/redact"
	"github.com/phrazzld/cards-api/internal/service"
)

// MobileNumberParam is the query parameter naming the card holder's mobile number.
const MobileNumberParam = "mobileNumber"

// mobileNumberRule is the validator tag applied to the mobileNumber query parameter.
const mobileNumberRule = "required,number,len=10"

// CardHandler handles the card lifecycle endpoints.
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	// ALLOW-PANIC: Constructor enforcing required dependency
	if cardService == nil {
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// mobileNumberFromQuery reads and validates the mobileNumber query parameter.
// It writes a 400 response and returns false when the parameter is invalid.
func (h *CardHandler) mobileNumberFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	mobileNumber := r.URL.Query().Get(MobileNumberParam)
	if err := shared.ValidateVar(mobileNumber, mobileNumberRule); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Mobile Number must be 10 digits long", err)
		return "", false
	}
	return mobileNumber, true
}

func (h *CardHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// CreateCard handles POST /api/cards/create?mobileNumber=
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	mobileNumber, ok := h.mobileNumberFromQuery(w, r)
	if !ok {
		return
	}

	if err := h.cardService.CreateCard(r.Context(), mobileNumber); err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("card created",
		slog.String("mobile_number", redact.MobileNumber(mobileNumber)))
	shared.RespondWithJSON(w, r, http.StatusCreated, ResponseDto{
		StatusCode: StatusCreated,
		StatusMsg:  MessageCreated,
	})
}

// FetchCard handles GET /api/cards/fetch?mobileNumber=
func (h *CardHandler) FetchCard(w http.ResponseWriter, r *http.Request) {
	mobileNumber, ok := h.mobileNumberFromQuery(w, r)
	if !ok {
		return
	}

	card, err := h.cardService.FetchCard(r.Context(), mobileNumber)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// UpdateCard handles PUT /api/cards/update with a CardDTO body.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var dto domain.CardDTO
	if err := shared.DecodeJSON(w, r, &dto); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(dto); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	updated, err := h.cardService.UpdateCard(r.Context(), dto)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	if !updated {
		shared.RespondWithJSON(w, r, http.StatusExpectationFailed, ResponseDto{
			StatusCode: StatusExpectationFailed,
			StatusMsg:  MessageUpdateFailed,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResponseDto{StatusCode: StatusOK, StatusMsg: MessageOK})
}

// DeleteCard handles DELETE /api/cards/delete?mobileNumber=
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	mobileNumber, ok := h.mobileNumberFromQuery(w, r)
	if !ok {
		return
	}

	deleted, err := h.cardService.DeleteCard(r.Context(), mobileNumber)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}
	if !deleted {
		shared.RespondWithJSON(w, r, http.StatusExpectationFailed, ResponseDto{
			StatusCode: StatusExpectationFailed,
			StatusMsg:  MessageDeleteFailed,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResponseDto{StatusCode: StatusOK, StatusMsg: MessageOK})
}
