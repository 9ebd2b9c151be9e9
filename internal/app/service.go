package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"spades/internal/domain"
)

// Service drives the turn state machine for a hand of spades. All state
// transitions are synchronous; any visual pacing belongs to the transport
// layer reacting to the emitted events.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying  = errors.New("hand not in playing phase")
	ErrOutOfTurn   = errors.New("not this seat's turn")
	ErrNoLegalPlay = errors.New("no legal play available")

	// ErrIllegalPlay is the base rule-violation error; the specific causes
	// below wrap it so callers can match either.
	ErrIllegalPlay     = errors.New("illegal play")
	ErrCardNotHeld     = fmt.Errorf("%w: card not in hand", ErrIllegalPlay)
	ErrSpadesNotBroken = fmt.Errorf("%w: cannot lead spades before they are broken", ErrIllegalPlay)
	ErrMustFollowSuit  = fmt.Errorf("%w: must follow the leading suit", ErrIllegalPlay)
)

// StartHand deals a fresh hand: a new shuffled deck fully consumed into
// four sorted hands of thirteen, South to lead, trump unbroken.
func (s *Service) StartHand() (*domain.Game, []Event, error) {
	deck := domain.NewDeck()
	deck.Shuffle(s.rng)

	game := &domain.Game{
		Phase:       domain.PhasePlaying,
		CurrentSeat: domain.SeatSouth,
	}

	events := make([]Event, 0, domain.NumSeats+1)
	for seat := domain.SeatSouth; seat < domain.NumSeats; seat++ {
		cards, err := deck.Deal(domain.HandSize)
		if err != nil {
			return nil, nil, err
		}
		game.Hands[seat].SetCards(cards)
		game.Hands[seat].Sort()
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: seat, Hand: game.Hands[seat].Cards()},
			Recipients: []domain.Seat{seat},
		})
	}

	events = append(events, Event{
		Kind:    EventHandStarted,
		Payload: HandStartedPayload{Leader: game.CurrentSeat},
	})
	return game, events, nil
}

// LegalPlays returns the admissible cards for the given seat. ErrNoLegalPlay
// is surfaced only for an empty hand, which cannot occur mid-hand.
func (s *Service) LegalPlays(g *domain.Game, seat domain.Seat) ([]domain.Card, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	legal := g.LegalPlays(seat)
	if len(legal) == 0 {
		return nil, ErrNoLegalPlay
	}
	return legal, nil
}

// SubmitPlay applies one play for the given seat: the "on a play"
// transition. Illegal plays are rejected synchronously without advancing
// any state. On the fourth card the trick resolves, the winning team's book
// count grows by one and the winner leads the next trick.
func (s *Service) SubmitPlay(g *domain.Game, seat domain.Seat, card domain.Card) ([]Event, error) {
	if g.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	if seat != g.CurrentSeat {
		return nil, ErrOutOfTurn
	}

	hand := &g.Hands[seat]
	if !hand.Contains(card) {
		return nil, ErrCardNotHeld
	}
	if !containsCard(g.LegalPlays(seat), card) {
		return nil, rejectionFor(g, hand, card)
	}

	hand.Remove(card)
	g.Trick.Add(seat, card)

	brokeTrump := card.Suit == domain.Spades && !g.TrumpBroken
	if brokeTrump {
		g.TrumpBroken = true
	}

	g.CurrentSeat = seat.Next()

	var resolved []Event
	if g.Trick.Complete() {
		resolved = resolveTrick(g)
	}

	events := []Event{{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: card, NextSeat: g.CurrentSeat},
	}}
	if brokeTrump {
		events = append(events, Event{
			Kind:    EventTrumpBroken,
			Payload: TrumpBrokenPayload{Seat: seat, Card: card},
		})
	}
	return append(events, resolved...), nil
}

// resolveTrick closes out a complete trick: award the book, hand the lead
// to the winner and clear the trick. After the thirteenth trick the hand
// ends; trump stays broken for as long as the hand lasts.
func resolveTrick(g *domain.Game) []Event {
	winner := g.Trick.Winner()
	g.Books[winner.Seat.Team()]++
	g.TricksPlayed++

	events := []Event{
		{
			Kind: EventTrickResolved,
			Payload: TrickResolvedPayload{
				WinningSeat: winner.Seat,
				WinningCard: winner.Card,
				Plays:       g.Trick.Plays(),
			},
		},
		{
			Kind:    EventBooksUpdated,
			Payload: BooksUpdatedPayload{Books: g.Books},
		},
	}

	g.Trick.Reset()
	g.CurrentSeat = winner.Seat

	if g.TricksPlayed == domain.TricksPerHand {
		g.Phase = domain.PhaseEnded
		events = append(events, Event{
			Kind:    EventHandEnded,
			Payload: HandEndedPayload{Books: g.Books},
		})
	}
	return events
}

// rejectionFor classifies why a held card is not admissible right now.
func rejectionFor(g *domain.Game, hand *domain.Hand, card domain.Card) error {
	lead := g.Trick.LeadingSuit()
	if lead == domain.NoSuit {
		if card.Suit == domain.Spades && !g.TrumpBroken {
			return ErrSpadesNotBroken
		}
		return ErrIllegalPlay
	}
	if card.Suit != lead && hand.HasSuit(lead) {
		return ErrMustFollowSuit
	}
	return ErrIllegalPlay
}

func containsCard(cards []domain.Card, card domain.Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}
