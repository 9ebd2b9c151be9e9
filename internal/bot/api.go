package bot

import "spades/internal/domain"

// Brain is the decision policy an automated seat uses to pick a card. It is
// called only with a non-empty legal set and must return a member of that
// set. Brains never mutate the hand; the turn controller removes the chosen
// card once the play is accepted.
type Brain interface {
	ChooseCard(seat domain.Seat, legal []domain.Card, trick *domain.Trick) (domain.Card, error)
}
