package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when the random source cannot produce a number.
	ErrGenerationFailed = errors.New("failed to generate card number")

	// ErrSequenceExhausted is returned by SequenceGenerator once every number was handed out.
	ErrSequenceExhausted = errors.New("card number sequence exhausted")
)
