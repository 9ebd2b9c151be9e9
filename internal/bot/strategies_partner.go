package bot

import "spades/internal/domain"

// PartnerBot plays around its partner's position in the partial trick: it
// ducks with its lowest legal card when the partner already holds the trick
// (the current highest card, a spade cut on a non-spade lead, or an
// outright joker), presses with its highest card of the leading suit when
// it can follow, and otherwise throws low like BaselineBot.
type PartnerBot struct{}

func (b *PartnerBot) ChooseCard(seat domain.Seat, legal []domain.Card, trick *domain.Trick) (domain.Card, error) {
	if partnerHoldsTrick(seat, trick) {
		return lowestCard(legal), nil
	}
	if lead := trick.LeadingSuit(); lead != domain.NoSuit {
		if c, ok := highestOfSuit(legal, lead); ok {
			return c, nil
		}
	}
	return lowestCard(legal), nil
}

// partnerHoldsTrick reports whether the seat's partner is currently winning
// the trick. Later seats can still overtake; this is a heuristic, not a
// guarantee.
func partnerHoldsTrick(seat domain.Seat, trick *domain.Trick) bool {
	if trick.Size() == 0 {
		return false
	}
	return trick.Winner().Seat == seat.Partner()
}
