package stacksteal

import (
	"errors"
	"fmt"

	"stackandsteal-server/internal/rng"
	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/scoring"
)

const (
	minSeats = 2
	maxSeats = 8
)

// Options are options for creating a new match
type Options struct {
	HandSize     int              `yaml:"handSize" json:"handSize"`
	WinningScore int              `yaml:"winningScore" json:"winningScore"`
	Deck         deck.Composition `yaml:"deck" json:"deck"`
	// PowerCardRanks are the ranks a power card is drawn from
	PowerCardRanks []deck.Rank `yaml:"powerCardRanks" json:"powerCardRanks"`
}

// DefaultOptions returns the default options: 4 cards, first to 33, power cards 2 through 10
func DefaultOptions() Options {
	return Options{
		HandSize:       4,
		WinningScore:   scoring.DefaultWinningScore,
		Deck:           deck.DefaultComposition(),
		PowerCardRanks: []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine, deck.Ten},
	}
}

func (o Options) validate(seats int) error {
	if seats < minSeats || seats > maxSeats {
		return PlayerCountError{
			Min: minSeats,
			Max: maxSeats,
			Got: seats,
		}
	}

	if o.HandSize <= 0 {
		return errors.New("hand size must be greater than 0")
	}

	if o.WinningScore <= 0 {
		return errors.New("winning score must be greater than 0")
	}

	if len(o.PowerCardRanks) == 0 {
		return errors.New("at least one power card rank is required")
	}

	for _, rank := range o.PowerCardRanks {
		if !rank.IsValid() || rank.IsSpecial() {
			return fmt.Errorf("%s cannot be a power card", rank)
		}
	}

	if err := o.Deck.Validate(); err != nil {
		return err
	}

	if need := seats * o.HandSize; o.Deck.Size() < need {
		return fmt.Errorf("a deck of %d cards cannot deal %d cards to %d seats", o.Deck.Size(), o.HandSize, seats)
	}

	return nil
}

func (o Options) drawPowerCard(gen rng.Generator) deck.Rank {
	return o.PowerCardRanks[gen.Intn(len(o.PowerCardRanks))]
}
