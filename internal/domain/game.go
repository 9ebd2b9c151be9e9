package domain

// Phase represents the lifecycle stage of a hand.
type Phase string

const (
	// PhaseLobby is the pre-deal state where seats are still filling.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active state where tricks are played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after the thirteenth trick resolves.
	PhaseEnded Phase = "ended"
)

// TricksPerHand is the number of tricks in a fully played hand.
const TricksPerHand = 13

// Game holds the authoritative state for one hand of play: the four hands,
// the single in-flight trick, whose turn it is, whether spades have been
// broken, and the book tally per team. TrumpBroken persists across tricks
// within the hand and resets only when a new hand is dealt.
type Game struct {
	Phase Phase

	Hands [NumSeats]Hand
	Trick Trick

	CurrentSeat Seat
	TrumpBroken bool

	Books        [NumTeams]int
	TricksPlayed int
}

// LegalPlays returns the admissible cards for the given seat under the
// current trick state.
//
// A leader whose entire hand is spades before trump is broken has no legal
// play under the strict rule; the engine grants the full hand in that case
// and the forced spade lead breaks trump on acceptance.
func (g *Game) LegalPlays(seat Seat) []Card {
	hand := &g.Hands[seat]
	legal := hand.LegalPlays(g.Trick.LeadingSuit(), g.TrumpBroken)
	if len(legal) == 0 && g.Trick.Size() == 0 && hand.Len() > 0 {
		return hand.Cards()
	}
	return legal
}

// CardsHeld counts the cards remaining across all four hands. Together with
// the plays in the in-flight trick this partitions the dealt deck.
func (g *Game) CardsHeld() int {
	n := 0
	for i := range g.Hands {
		n += g.Hands[i].Len()
	}
	return n
}
