package domain

import "time"

// Defaults applied to every newly issued card.
const (
	// DefaultCardType is the type given to a card at creation.
	DefaultCardType = "Credit Card"

	// DefaultTotalLimit is the credit line of a new card.
	DefaultTotalLimit = 100000

	// CardNumberLowerBound is the smallest card number; all card numbers are
	// CardNumberLowerBound plus a non-negative offset and have CardNumberLength digits.
	CardNumberLowerBound int64 = 100000000000

	// CardNumberLength is the number of digits in a card number.
	CardNumberLength = 12

	// MobileNumberLength is the number of digits in a mobile number.
	MobileNumberLength = 10
)

// Audit holds creation and modification metadata. It is maintained by the
// card stores on every write and is never exposed through CardDTO.
type Audit struct {
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
}

// Card is the persisted card record.
//
// ID is assigned by the store on first insert and is zero for a card that
// has not been saved yet.
type Card struct {
	ID              int64
	MobileNumber    string
	CardNumber      string
	CardType        string
	TotalLimit      int
	AmountUsed      int
	AvailableAmount int
	Audit           Audit
}

// NewCard builds an unsaved card for mobileNumber with the default type and
// financial state. The card number is supplied by the caller.
func NewCard(mobileNumber, cardNumber string) *Card {
	return &Card{
		MobileNumber:    mobileNumber,
		CardNumber:      cardNumber,
		CardType:        DefaultCardType,
		TotalLimit:      DefaultTotalLimit,
		AmountUsed:      0,
		AvailableAmount: DefaultTotalLimit,
	}
}

// IsNew reports whether the card has not been persisted yet.
func (c *Card) IsNew() bool {
	return c.ID == 0
}

// Validate checks the field-level invariants of the card. It does not check
// that AvailableAmount equals TotalLimit minus AmountUsed.
func (c *Card) Validate() error {
	if !IsDigits(c.MobileNumber, MobileNumberLength) {
		return ErrInvalidMobileNumber
	}
	if !IsDigits(c.CardNumber, CardNumberLength) {
		return ErrInvalidCardNumber
	}
	if c.CardType == "" {
		return ErrEmptyCardType
	}
	if c.TotalLimit <= 0 {
		return ErrInvalidTotalLimit
	}
	if c.AmountUsed < 0 {
		return ErrNegativeAmountUsed
	}
	if c.AvailableAmount < 0 {
		return ErrNegativeAvailableAmount
	}
	return nil
}

// IsDigits reports whether s consists of exactly n ASCII digits.
func IsDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
