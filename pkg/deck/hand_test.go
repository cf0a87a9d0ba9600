package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_HasCard(t *testing.T) {
	hand := Hand(CardsFromString("2c,3c,4d"))
	assert.True(t, hand.HasCard(2))
	assert.False(t, hand.HasCard(4))
	assert.Equal(t, "4d", CardToString(hand.Find(3)))
	assert.Nil(t, hand.Find(99))
}

func TestHand_Remove(t *testing.T) {
	a := assert.New(t)
	hand := Hand(CardsFromString("2c,3c,3c,4d"))
	original := hand

	card := hand.Remove(2)
	a.Equal(2, card.ID)
	a.Equal("2c,3c,4d", hand.String())
	a.Equal(4, original.Len(), "the previous backing slice is not modified")

	a.Nil(hand.Remove(2))
	a.Equal(3, hand.Len())
}

func TestHand_AddCard(t *testing.T) {
	h := make(Hand, 0)
	h.AddCard(CardFromString("1s"))
	h.AddCard(CardFromString("3c"))
	assert.Equal(t, "1s,3c", CardsToString(h))
}

func TestHand_FirstOfRank(t *testing.T) {
	h := Hand(CardsFromString("2c,shield,rogue,shield"))
	assert.Equal(t, 2, h.FirstOfRank(Shield).ID)
	assert.Equal(t, 3, h.FirstOfRank(Rogue).ID)
	assert.Nil(t, h.FirstOfRank(King))
}

func TestHand_Clone(t *testing.T) {
	h := Hand(CardsFromString("2c,3c"))
	h2 := h.Clone()
	h2.AddCard(CardFromString("4c"))

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 3, h2.Len())
}
