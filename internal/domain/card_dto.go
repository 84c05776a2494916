package domain

// CardDTO is the external representation of a card. It omits the internal
// identifier and audit metadata.
//
// The validate tags describe the syntactic checks applied by the transport layer.
type CardDTO struct {
	MobileNumber    string `json:"mobileNumber"    validate:"required,number,len=10"`
	CardNumber      string `json:"cardNumber"      validate:"required,number,len=12"`
	CardType        string `json:"cardType"        validate:"required"`
	TotalLimit      int    `json:"totalLimit"      validate:"gt=0"`
	AmountUsed      int    `json:"amountUsed"      validate:"gte=0"`
	AvailableAmount int    `json:"availableAmount" validate:"gte=0"`
}
