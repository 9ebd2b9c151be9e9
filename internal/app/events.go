package app

import "spades/internal/domain"

// EventKind identifies emitted engine events for transport dispatch.
type EventKind string

const (
	EventHandStarted   EventKind = "hand_started"
	EventHandDealt     EventKind = "hand_dealt"
	EventCardPlayed    EventKind = "card_played"
	EventTrumpBroken   EventKind = "trump_broken"
	EventTrickResolved EventKind = "trick_resolved"
	EventBooksUpdated  EventKind = "books_updated"
	EventHandEnded     EventKind = "hand_ended"
)

// Event is an engine event with optional targeted recipients. The engine
// raises events for the presentation layer to react to; it never waits on
// that reaction.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Seat // empty means broadcast
}

type HandStartedPayload struct {
	Leader domain.Seat
}

type HandDealtPayload struct {
	Seat domain.Seat
	Hand []domain.Card
}

type CardPlayedPayload struct {
	Seat     domain.Seat
	Card     domain.Card
	NextSeat domain.Seat
}

type TrumpBrokenPayload struct {
	Seat domain.Seat
	Card domain.Card
}

type TrickResolvedPayload struct {
	WinningSeat domain.Seat
	WinningCard domain.Card
	Plays       []domain.Play
}

type BooksUpdatedPayload struct {
	Books [domain.NumTeams]int
}

type HandEndedPayload struct {
	Books [domain.NumTeams]int
}
