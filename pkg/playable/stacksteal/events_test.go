package stacksteal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"stackandsteal-server/pkg/deck"
)

func TestEvent_LogMessage(t *testing.T) {
	a := assert.New(t)

	card := stackedCard(1, "7h")

	msg := Event{Type: EventCardStacked, SeatID: "a", Card: card, Value: 12, Stack: 20, Bonus: true}.LogMessage()
	a.Equal([]string{"a"}, msg.SeatIDs)
	a.Equal([]*deck.Card{card}, msg.Cards)
	a.Contains(msg.Message, "with the power card bonus, stack is 20")

	msg = Event{Type: EventCardStolen, SeatID: "a", TargetSeatID: "b", Card: card, Stack: 7}.LogMessage()
	a.Equal([]string{"a", "b"}, msg.SeatIDs)
	a.Contains(msg.Message, "from {}, stack is 7")

	msg = Event{Type: EventBusted, SeatID: "a", Card: card, Deliberate: true, Automatic: true}.LogMessage()
	a.Contains(msg.Message, "{} had no move")
	a.Contains(msg.Message, "(auto)")

	a.Equal("{} passed", Event{Type: EventPassed, SeatID: "a"}.LogMessage().Message)
	a.Equal("{} won with a stack of 33", Event{Type: EventMatchFinished, SeatID: "a", Stack: 33}.LogMessage().Message)

	msg = Event{Type: EventMatchFinished}.LogMessage()
	a.Empty(msg.SeatIDs)
	a.Contains(msg.Message, "nobody reached the winning score")
	a.Nil(Event{Type: EventTurnStarted, SeatID: "a"}.LogMessage())
	a.Nil(Event{Type: EventShieldExpired, SeatID: "a"}.LogMessage())
}

func TestLogMessages(t *testing.T) {
	msgs := LogMessages([]Event{
		{Type: EventPassed, SeatID: "a"},
		{Type: EventTurnStarted, SeatID: "b"},
		{Type: EventShieldPlayed, SeatID: "b"},
	})

	assert.Len(t, msgs, 2)
	assert.Equal(t, "{} raised a shield", msgs[1].Message)
}
