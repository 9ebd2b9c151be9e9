package domain

import "sort"

// Hand is the ordered set of cards held by one seat. It is mutated only by
// the deal and by removal of played cards.
type Hand struct {
	cards []Card
}

// SetCards replaces the hand's contents. Used once at deal time.
func (h *Hand) SetCards(cards []Card) {
	h.cards = append(h.cards[:0:0], cards...)
}

// Cards returns a copy of the hand in its current order.
func (h *Hand) Cards() []Card { return append([]Card(nil), h.cards...) }

// Len reports how many cards remain in the hand.
func (h *Hand) Len() int { return len(h.cards) }

// Sort orders the hand for display: spades, hearts, diamonds, clubs, each
// suit strongest card first. Sorting never affects legality.
func (h *Hand) Sort() {
	sort.SliceStable(h.cards, func(i, j int) bool {
		if h.cards[i].Suit != h.cards[j].Suit {
			return h.cards[i].Suit < h.cards[j].Suit
		}
		return h.cards[i].Rank < h.cards[j].Rank
	})
}

// HasSuit reports whether any card in the hand matches the given suit.
func (h *Hand) HasSuit(suit Suit) bool {
	for _, c := range h.cards {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// Contains reports whether the hand holds a structurally equal card.
func (h *Hand) Contains(card Card) bool {
	for _, c := range h.cards {
		if c == card {
			return true
		}
	}
	return false
}

// LegalPlays returns the admissible subset of the hand for the given trick
// context, preserving hand order. The result may be empty: a leader holding
// nothing but spades before trump is broken has no legal play under the
// strict rule.
func (h *Hand) LegalPlays(leadingSuit Suit, trumpBroken bool) []Card {
	lacks := leadingSuit != NoSuit && !h.HasSuit(leadingSuit)
	var legal []Card
	for _, c := range h.cards {
		if IsLegalPlay(c, leadingSuit, trumpBroken, lacks) {
			legal = append(legal, c)
		}
	}
	return legal
}

// Remove deletes the first card structurally equal to the given one.
// Removing an absent card is a no-op, not an error.
func (h *Hand) Remove(card Card) {
	for i, c := range h.cards {
		if c == card {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return
		}
	}
}
