package api

// ResponseDto is the body returned by the mutating card endpoints.
type ResponseDto struct {
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMsg"`
}

// Status codes and messages carried in ResponseDto.
const (
	StatusCreated = "201"
	// MessageCreated is returned after a card is issued.
	MessageCreated = "Card created successfully"

	StatusOK  = "200"
	MessageOK = "Request processed successfully"

	StatusExpectationFailed = "417"
	MessageUpdateFailed     = "Update operation failed. Please try again or contact Dev team"
	MessageDeleteFailed     = "Delete operation failed. Please try again or contact Dev team"

	StatusInternalError  = "500"
	MessageInternalError = "An error occurred. Please try again or contact Dev team"
)
