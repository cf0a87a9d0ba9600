package room

import (
	"fmt"
	"time"

	"stackandsteal-server/pkg/playable/stacksteal"
)

const (
	minCapacity = 2
	maxCapacity = 8
)

// Config configures the rooms a PitBoss creates
type Config struct {
	Capacity int
	Options  stacksteal.Options
	// TurnDuration is how long a human seat has to act
	TurnDuration time.Duration
	// BotThinkTime is how long a bot (or away) seat waits before acting
	BotThinkTime        time.Duration
	FinishedGracePeriod time.Duration
	LobbyTTL            time.Duration
}

// DefaultConfig returns the default room configuration
func DefaultConfig() Config {
	return Config{
		Capacity:            4,
		Options:             stacksteal.DefaultOptions(),
		TurnDuration:        time.Second * 10,
		BotThinkTime:        time.Millisecond * 1500,
		FinishedGracePeriod: time.Minute,
		LobbyTTL:            time.Minute * 30,
	}
}

// RoomOptions are the settings a room is created with
// Zero values keep the server defaults
type RoomOptions struct {
	Capacity     int `json:"capacity"`
	HandSize     int `json:"handSize"`
	WinningScore int `json:"winningScore"`
}

func (c Config) withOptions(opts RoomOptions) (Config, error) {
	cfg := c
	cfg.Options.PowerCardRanks = append(cfg.Options.PowerCardRanks[:0:0], c.Options.PowerCardRanks...)

	if opts.Capacity != 0 {
		cfg.Capacity = opts.Capacity
	}

	if opts.HandSize != 0 {
		cfg.Options.HandSize = opts.HandSize
	}

	if opts.WinningScore != 0 {
		cfg.Options.WinningScore = opts.WinningScore
	}

	if cfg.Capacity < minCapacity || cfg.Capacity > maxCapacity {
		return Config{}, stacksteal.PlayerCountError{
			Min: minCapacity,
			Max: maxCapacity,
			Got: cfg.Capacity,
		}
	}

	if cfg.Options.HandSize < 0 || cfg.Options.WinningScore < 0 {
		return Config{}, stacksteal.ValidationError("hand size and winning score must be positive")
	}

	if need := cfg.Capacity * cfg.Options.HandSize; cfg.Options.Deck.Size() < need {
		msg := fmt.Sprintf("a deck of %d cards cannot deal %d cards to %d seats", cfg.Options.Deck.Size(), cfg.Options.HandSize, cfg.Capacity)
		return Config{}, stacksteal.ValidationError(msg)
	}

	return cfg, nil
}
