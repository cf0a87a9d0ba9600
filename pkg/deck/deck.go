package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"

	"stackandsteal-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Composition describes how many of each card a deck is built from
type Composition struct {
	// NumberMultiplicity is the number of copies of each rank 2-9
	NumberMultiplicity int `yaml:"numberMultiplicity" json:"numberMultiplicity"`
	// FaceMultiplicity is the number of copies of ten, jack, queen and king
	FaceMultiplicity int `yaml:"faceMultiplicity" json:"faceMultiplicity"`
	AceCount         int `yaml:"aceCount" json:"aceCount"`
	ShieldCount      int `yaml:"shieldCount" json:"shieldCount"`
	RogueCount       int `yaml:"rogueCount" json:"rogueCount"`
}

// DefaultComposition returns the standard 64 card Stack & Steal deck
func DefaultComposition() Composition {
	return Composition{
		NumberMultiplicity: 4,
		FaceMultiplicity:   4,
		AceCount:           4,
		ShieldCount:        6,
		RogueCount:         6,
	}
}

// Size returns the number of cards the composition builds
func (c Composition) Size() int {
	return 8*c.NumberMultiplicity + 4*c.FaceMultiplicity + c.AceCount + c.ShieldCount + c.RogueCount
}

// Validate returns an error if the composition cannot build a deck
func (c Composition) Validate() error {
	for name, count := range map[string]int{
		"numberMultiplicity": c.NumberMultiplicity,
		"faceMultiplicity":   c.FaceMultiplicity,
		"aceCount":           c.AceCount,
		"shieldCount":        c.ShieldCount,
		"rogueCount":         c.RogueCount,
	} {
		if count < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if c.Size() == 0 {
		return errors.New("deck composition is empty")
	}

	return nil
}

// Deck represents a playing deck
// Cards are drawn from the end of the slice
type Deck struct {
	Cards []*Card `json:"cards"`
	size  int
}

// New returns a new deck of cards built from the composition.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New(comp Composition) *Deck {
	cards := make([]*Card, 0, comp.Size())
	add := func(rank Rank, count int) {
		for i := 0; i < count; i++ {
			var suit Suit
			if !rank.IsSpecial() {
				suit = suits[i%len(suits)]
			}

			cards = append(cards, &Card{
				ID:   len(cards) + 1,
				Rank: rank,
				Suit: suit,
			})
		}
	}

	for rank := Two; rank <= Nine; rank++ {
		add(rank, comp.NumberMultiplicity)
	}

	for rank := Ten; rank <= King; rank++ {
		add(rank, comp.FaceMultiplicity)
	}

	add(Ace, comp.AceCount)
	add(Shield, comp.ShieldCount)
	add(Rogue, comp.RogueCount)

	return &Deck{
		Cards: cards,
		size:  len(cards),
	}
}

// NewFromCards returns a deck that will draw the given cards from last to first
func NewFromCards(cards []*Card) *Deck {
	cp := make([]*Card, len(cards))
	copy(cp, cards)

	return &Deck{
		Cards: cp,
		size:  len(cp),
	}
}

// Shuffle will shuffle the remaining cards in place (Fisher-Yates)
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = fmt.Fprintf(hash, "%d:%s,", card.ID, CardToString(card))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[n-1]
	d.Cards[n-1] = nil
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// Size returns the number of cards the deck was built with
func (d *Deck) Size() int {
	return d.size
}

// Clone returns a copy of the deck that can be drawn from independently
// The cards themselves are shared, they are immutable
func (d *Deck) Clone() *Deck {
	cards := make([]*Card, len(d.Cards))
	copy(cards, d.Cards)

	return &Deck{
		Cards: cards,
		size:  d.size,
	}
}
