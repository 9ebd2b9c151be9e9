package domain

// TrickSize is the number of plays in a complete trick.
const TrickSize = 4

// Play records one card placed into a trick and the seat that played it.
type Play struct {
	Seat Seat
	Card Card
}

// Trick is the ordered sequence of plays in the current round. The first
// play establishes the leading suit for the rest of the trick.
type Trick struct {
	plays []Play
}

// Add appends a play to the trick.
func (t *Trick) Add(seat Seat, card Card) {
	t.plays = append(t.plays, Play{Seat: seat, Card: card})
}

// Size reports how many cards have been played into the trick.
func (t *Trick) Size() int { return len(t.plays) }

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool { return len(t.plays) == TrickSize }

// Plays returns a copy of the plays in play order.
func (t *Trick) Plays() []Play { return append([]Play(nil), t.plays...) }

// LeadingCard returns the first card played, if any.
func (t *Trick) LeadingCard() (Card, bool) {
	if len(t.plays) == 0 {
		return Card{}, false
	}
	return t.plays[0].Card, true
}

// LeadingSuit returns the suit of the first play, or NoSuit for an empty
// trick.
func (t *Trick) LeadingSuit() Suit {
	if len(t.plays) == 0 {
		return NoSuit
	}
	return t.plays[0].Card.Suit
}

// PlayBy returns the play made by the given seat, if it has played yet.
func (t *Trick) PlayBy(seat Seat) (Play, bool) {
	for _, p := range t.plays {
		if p.Seat == seat {
			return p, true
		}
	}
	return Play{}, false
}

// Reset clears the trick for the next round.
func (t *Trick) Reset() { t.plays = t.plays[:0] }

// Winner returns the play currently holding the trick: the highest joker
// outright, else the highest spade, else the highest card of the leading
// suit. Off-suit, non-spade cards never win. Callable on a partial trick;
// panics on an empty one, which is a caller bug.
func (t *Trick) Winner() Play {
	if len(t.plays) == 0 {
		panic("domain: winner of empty trick")
	}
	best := t.plays[0]
	lead := t.plays[0].Card.Suit
	for _, p := range t.plays[1:] {
		if beats(p.Card, best.Card, lead) {
			best = p
		}
	}
	return best
}

// beats reports whether the candidate takes the trick from the current best
// card under the joker > spade > leading-suit precedence.
func beats(c, best Card, leadingSuit Suit) bool {
	switch {
	case c.IsJoker() || best.IsJoker():
		if !c.IsJoker() {
			return false
		}
		if !best.IsJoker() {
			return true
		}
		return c.Outranks(best)
	case c.Suit == Spades || best.Suit == Spades:
		if c.Suit != Spades {
			return false
		}
		if best.Suit != Spades {
			return true
		}
		return c.Outranks(best)
	case c.Suit != leadingSuit:
		return false
	case best.Suit != leadingSuit:
		return true
	default:
		return c.Outranks(best)
	}
}
