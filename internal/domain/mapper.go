package domain

// ToExternal copies the externally visible fields of card into a CardDTO.
func ToExternal(card *Card) CardDTO {
	return CardDTO{
		MobileNumber:    card.MobileNumber,
		CardNumber:      card.CardNumber,
		CardType:        card.CardType,
		TotalLimit:      card.TotalLimit,
		AmountUsed:      card.AmountUsed,
		AvailableAmount: card.AvailableAmount,
	}
}

// ToEntity copies the fields of dto onto target and returns target.
// ID and Audit on target are left untouched.
func ToEntity(dto CardDTO, target *Card) *Card {
	target.MobileNumber = dto.MobileNumber
	target.CardNumber = dto.CardNumber
	target.CardType = dto.CardType
	target.TotalLimit = dto.TotalLimit
	target.AmountUsed = dto.AmountUsed
	target.AvailableAmount = dto.AvailableAmount
	return target
}
