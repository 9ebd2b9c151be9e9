package bot

import "fmt"

// BotLevel selects a decision policy variant.
type BotLevel int

const (
	BotLevelBaseline BotLevel = iota
	BotLevelPartner
)

// NewBrain creates a decision policy for the given level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelBaseline:
		return &BaselineBot{}, nil
	case BotLevelPartner:
		return &PartnerBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// ParseLevel maps a configured strategy name to its level.
func ParseLevel(name string) (BotLevel, error) {
	switch name {
	case "baseline":
		return BotLevelBaseline, nil
	case "partner":
		return BotLevelPartner, nil
	default:
		return 0, fmt.Errorf("unknown strategy name: %q", name)
	}
}
