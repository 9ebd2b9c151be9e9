package app

import (
	"fmt"

	"spades/internal/domain"
)

// CardChooser selects a card from a non-empty legal set. The bot strategies
// implement it; the chooser never mutates the hand, the controller removes
// the chosen card on acceptance.
type CardChooser interface {
	ChooseCard(seat domain.Seat, legal []domain.Card, trick *domain.Trick) (domain.Card, error)
}

// StepAutomated obtains one play from the chooser for the seat currently to
// act and applies it. A chooser that returns a card outside the legal set
// it was offered is a defect in the chooser, not a game condition, and
// panics rather than being papered over.
func (s *Service) StepAutomated(g *domain.Game, chooser CardChooser) ([]Event, error) {
	seat := g.CurrentSeat
	legal, err := s.LegalPlays(g, seat)
	if err != nil {
		return nil, err
	}

	card, err := chooser.ChooseCard(seat, legal, &g.Trick)
	if err != nil {
		return nil, err
	}
	if !containsCard(legal, card) {
		panic(fmt.Sprintf("app: chooser for %v returned %v outside its legal set", seat, card))
	}
	return s.SubmitPlay(g, seat, card)
}

// RunAutomated applies chooser plays back-to-back until stopAt is to act,
// the hand ends, or a seat has no chooser. Pass the human seat as stopAt;
// pass an invalid seat to play the hand out entirely.
func (s *Service) RunAutomated(g *domain.Game, choosers map[domain.Seat]CardChooser, stopAt domain.Seat) ([]Event, error) {
	var events []Event
	for g.Phase == domain.PhasePlaying && g.CurrentSeat != stopAt {
		chooser, ok := choosers[g.CurrentSeat]
		if !ok {
			break
		}
		evs, err := s.StepAutomated(g, chooser)
		if err != nil {
			return events, err
		}
		events = append(events, evs...)
	}
	return events, nil
}
