package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
// Suits are cosmetic and have no effect on scoring
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

var suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank is the rank of a card
type Rank int

// rank constants
const (
	Ace   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13

	// Shield protects the last stacked card from being stolen
	Shield Rank = 20
	// Rogue steals without discarding a cost card
	Rogue Rank = 21
)

// IsSpecial returns true for SHIELD and ROGUE
func (r Rank) IsSpecial() bool {
	return r == Shield || r == Rogue
}

// IsNumber returns true for the number ranks 2-9
func (r Rank) IsNumber() bool {
	return r >= Two && r <= Nine
}

// IsFace returns true for ten, jack, queen and king
func (r Rank) IsFace() bool {
	return r >= Ten && r <= King
}

// IsValid returns true if the rank is a known rank
func (r Rank) IsValid() bool {
	return (r >= Ace && r <= King) || r.IsSpecial()
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Shield:
		return "SHIELD"
	case Rogue:
		return "ROGUE"
	default:
		return strconv.Itoa(int(r))
	}
}

// Card is an individual playing card
// Cards are created once when a deck is built and never change afterwards
type Card struct {
	ID   int  `json:"id"`
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit,omitempty"`
}

func (c *Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	}

	return c.Rank.String() + suit
}

// IsSpecial returns true if the card is a SHIELD or a ROGUE
func (c *Card) IsSpecial() bool {
	return c.Rank.IsSpecial()
}

var cardRx = regexp.MustCompile(`(?i)^(1[0-3]|[1-9]|[ajqk]|shield|rogue)([cdhs])?\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank>[suit] where rank is 1-13, a, j, q, k, shield or rogue,
// and the optional suit is in [cdhs]. The returned card has an ID of zero.
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	var rank Rank
	switch strings.ToLower(match[1]) {
	case "a":
		rank = Ace
	case "j":
		rank = Jack
	case "q":
		rank = Queen
	case "k":
		rank = King
	case "shield":
		rank = Shield
	case "rogue":
		rank = Rogue
	default:
		n, err := strconv.Atoi(match[1])
		if err != nil {
			panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
		}

		rank = Rank(n)
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString will return a slice of cards
// Cards are numbered from 1 in the order they appear in the string
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
		cards[i].ID = i + 1
	}

	return cards
}

// CardToString converts a card (7 of Hearts) to a string (7h)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	switch card.Rank {
	case Shield:
		return "shield"
	case Rogue:
		return "rogue"
	}

	var suit string
	switch card.Suit {
	case Clubs:
		suit = "c"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", card.Rank, suit)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,shield,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
