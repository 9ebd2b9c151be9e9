package domain

// IsLegalPlay reports whether a card is admissible given the trick context.
//
// leadingSuit is NoSuit when the acting seat is leading the trick.
// lacksLeadingSuit must be computed by the caller as "no card in the acting
// hand matches the leading suit"; the validator never inspects the hand.
func IsLegalPlay(card Card, leadingSuit Suit, trumpBroken, lacksLeadingSuit bool) bool {
	switch {
	case leadingSuit == NoSuit:
		// Leading: anything goes except an unbroken spade.
		return card.Suit != Spades || trumpBroken
	case card.Suit == leadingSuit:
		// Following suit is always permitted.
		return true
	case lacksLeadingSuit:
		// Void in the leading suit: any discard or cut is fine, spades
		// included, broken or not.
		return true
	default:
		// Holding the leading suit but playing off-suit is a renege.
		return false
	}
}
