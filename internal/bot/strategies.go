package bot

import "spades/internal/domain"

// BaselineBot conserves strength: it follows with its lowest card of the
// leading suit when it can, and otherwise throws its lowest legal card.
type BaselineBot struct{}

func (b *BaselineBot) ChooseCard(seat domain.Seat, legal []domain.Card, trick *domain.Trick) (domain.Card, error) {
	if lead := trick.LeadingSuit(); lead != domain.NoSuit {
		if c, ok := lowestOfSuit(legal, lead); ok {
			return c, nil
		}
	}
	return lowestCard(legal), nil
}

// lowestCard returns the weakest card in a non-empty set. Earlier cards win
// rank ties so the choice is deterministic.
func lowestCard(cards []domain.Card) domain.Card {
	low := cards[0]
	for _, c := range cards[1:] {
		if low.Outranks(c) {
			low = c
		}
	}
	return low
}

// highestCard returns the strongest card in a non-empty set.
func highestCard(cards []domain.Card) domain.Card {
	high := cards[0]
	for _, c := range cards[1:] {
		if c.Outranks(high) {
			high = c
		}
	}
	return high
}

func lowestOfSuit(cards []domain.Card, suit domain.Suit) (domain.Card, bool) {
	var low domain.Card
	found := false
	for _, c := range cards {
		if c.Suit != suit {
			continue
		}
		if !found || low.Outranks(c) {
			low = c
			found = true
		}
	}
	return low, found
}

func highestOfSuit(cards []domain.Card, suit domain.Suit) (domain.Card, bool) {
	var high domain.Card
	found := false
	for _, c := range cards {
		if c.Suit != suit {
			continue
		}
		if !found || c.Outranks(high) {
			high = c
			found = true
		}
	}
	return high, found
}
