package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, Rank(1), Ace)
	assert.Equal(t, Rank(10), Ten)
	assert.Equal(t, Rank(11), Jack)
	assert.Equal(t, Rank(12), Queen)
	assert.Equal(t, Rank(13), King)
}

func TestRank_Predicates(t *testing.T) {
	a := assert.New(t)

	a.True(Two.IsNumber())
	a.True(Nine.IsNumber())
	a.False(Ten.IsNumber())
	a.False(Ace.IsNumber())

	a.True(Ten.IsFace())
	a.True(King.IsFace())
	a.False(Ace.IsFace())

	a.True(Shield.IsSpecial())
	a.True(Rogue.IsSpecial())
	a.False(King.IsSpecial())

	a.True(Ace.IsValid())
	a.True(Rogue.IsValid())
	a.False(Rank(0).IsValid())
	a.False(Rank(14).IsValid())
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("2♡", (&Card{Rank: Two, Suit: Hearts}).String())
	a.Equal("J♣", (&Card{Rank: Jack, Suit: Clubs}).String())
	a.Equal("Q♢", (&Card{Rank: Queen, Suit: Diamonds}).String())
	a.Equal("K♠", (&Card{Rank: King, Suit: Spades}).String())
	a.Equal("A♠", (&Card{Rank: Ace, Suit: Spades}).String())
	a.Equal("10♡", (&Card{Rank: Ten, Suit: Hearts}).String())
	a.Equal("SHIELD", (&Card{Rank: Shield}).String())
	a.Equal("ROGUE", (&Card{Rank: Rogue}).String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	a.Nil(CardFromString(""))
	a.Equal(&Card{Rank: Seven, Suit: Hearts}, CardFromString("7h"))
	a.Equal(&Card{Rank: Ten, Suit: Spades}, CardFromString("10s"))
	a.Equal(&Card{Rank: Ace, Suit: Clubs}, CardFromString("ac"))
	a.Equal(&Card{Rank: Ace, Suit: Clubs}, CardFromString("1c"))
	a.Equal(&Card{Rank: King, Suit: Diamonds}, CardFromString("Kd"))
	a.Equal(&Card{Rank: Queen}, CardFromString("q"))
	a.Equal(&Card{Rank: Shield}, CardFromString("SHIELD"))
	a.Equal(&Card{Rank: Rogue}, CardFromString("rogue"))

	a.Panics(func() {
		CardFromString("14s")
	})
	a.Panics(func() {
		CardFromString("0h")
	})
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("5h,shield,13s")
	a.Len(cards, 3)
	a.Equal(1, cards[0].ID)
	a.Equal(2, cards[1].ID)
	a.Equal(3, cards[2].ID)
	a.Equal("5h,shield,13s", CardsToString(cards))

	a.Equal([]*Card{}, CardsFromString(""))
	a.Equal("", CardToString(nil))
}
