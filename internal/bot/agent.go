package bot

import "spades/internal/domain"

// Agent is an automated seat: a named decision policy bound to a position.
type Agent struct {
	Seat  domain.Seat
	Name  string
	Brain Brain
}

// NewAgent builds an agent for the seat using the given level.
func NewAgent(seat domain.Seat, name string, level BotLevel) (*Agent, error) {
	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{Seat: seat, Name: name, Brain: brain}, nil
}
