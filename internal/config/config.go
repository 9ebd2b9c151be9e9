package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// SeatConfig names an automated seat and picks its decision policy.
type SeatConfig struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"` // "baseline" or "partner"
}

// GameConfig tunes the match handler's pacing and bot lineup. Pacing values
// only delay when a bot's play becomes visible; they never affect rule
// evaluation.
type GameConfig struct {
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// DefaultStrategy is used for seats without an explicit entry.
	DefaultStrategy string `json:"default_strategy"`
	// Seats is indexed by seat number (South, West, North, East).
	Seats []SeatConfig `json:"seats"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// StrategyForSeat returns the configured strategy name for a seat index,
// falling back to the default strategy.
func StrategyForSeat(seat int) string {
	if cfg != nil && seat >= 0 && seat < len(cfg.Seats) && cfg.Seats[seat].Strategy != "" {
		return cfg.Seats[seat].Strategy
	}
	if cfg != nil && cfg.DefaultStrategy != "" {
		return cfg.DefaultStrategy
	}
	return "partner"
}

// SeatName returns the configured display name for a seat index, or an
// empty string when unset.
func SeatName(seat int) string {
	if cfg != nil && seat >= 0 && seat < len(cfg.Seats) {
		return cfg.Seats[seat].Name
	}
	return ""
}

// BotDelayBounds returns the configured min/max bot act delay in seconds,
// with safe defaults when unset.
func BotDelayBounds() (min, max int) {
	min, max = 1, 3
	if cfg == nil {
		return min, max
	}
	if cfg.BotMinDelaySeconds > 0 {
		min = cfg.BotMinDelaySeconds
	}
	if cfg.BotMaxDelaySeconds >= min {
		max = cfg.BotMaxDelaySeconds
	} else {
		max = min
	}
	return min, max
}
