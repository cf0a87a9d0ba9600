package stacksteal

import (
	"fmt"

	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/playable"
)

// EventType is the type of something that happened in a match
type EventType string

// event types
const (
	EventMatchStarted     EventType = "MATCH_STARTED"
	EventCardStacked      EventType = "CARD_STACKED"
	EventBusted           EventType = "BUSTED"
	EventShieldPlayed     EventType = "SHIELD_PLAYED"
	EventShieldExpired    EventType = "SHIELD_EXPIRED"
	EventCardStolen       EventType = "CARD_STOLEN"
	EventPassed           EventType = "PASSED"
	EventPowerCardChanged EventType = "POWER_CARD_CHANGED"
	EventTurnStarted      EventType = "TURN_STARTED"
	EventMatchFinished    EventType = "MATCH_FINISHED"
)

// Event is something that happened while resolving or advancing a turn
type Event struct {
	Type         EventType  `json:"type"`
	SeatID       string     `json:"seatId,omitempty"`
	TargetSeatID string     `json:"targetSeatId,omitempty"`
	Card         *deck.Card `json:"card,omitempty"`
	// Cost is the card spent on a steal
	Cost      *deck.Card `json:"cost,omitempty"`
	Value     int        `json:"value,omitempty"`
	Stack     int        `json:"stack"`
	Turn      int        `json:"turn,omitempty"`
	PowerCard deck.Rank  `json:"powerCard,omitempty"`
	Bonus     bool       `json:"bonus,omitempty"`
	// Deliberate is set when a seat without a legal move busted on purpose
	Deliberate bool `json:"deliberate,omitempty"`
	// Automatic is set when the bot policy played a human seat's turn
	Automatic bool `json:"automatic,omitempty"`
}

// LogMessage narrates the event
// Returns nil for events that are not worth a line in the log.
func (e Event) LogMessage() *playable.LogMessage {
	var msg *playable.LogMessage
	switch e.Type {
	case EventMatchStarted:
		msg = playable.SimpleLogMessage("", "New match of Stack & Steal, first to %d", e.Stack)
	case EventCardStacked:
		format := "{} stacked %s for %d, stack is %d"
		if e.Bonus {
			format = "{} stacked %s for %d with the power card bonus, stack is %d"
		}

		msg = playable.NewLogMessage([]string{e.SeatID}, []*deck.Card{e.Card}, format, e.Card, e.Value, e.Stack)
	case EventBusted:
		if e.Deliberate {
			msg = playable.NewLogMessage([]string{e.SeatID}, []*deck.Card{e.Card}, "{} had no move, discarded %s and busted", e.Card)
		} else {
			msg = playable.NewLogMessage([]string{e.SeatID}, []*deck.Card{e.Card}, "{} stacked %s and busted", e.Card)
		}
	case EventShieldPlayed:
		msg = playable.SimpleLogMessage(e.SeatID, "{} raised a shield")
	case EventCardStolen:
		msg = playable.NewLogMessage([]string{e.SeatID, e.TargetSeatID}, []*deck.Card{e.Card}, "{} stole %s from {}, stack is %d", e.Card, e.Stack)
	case EventPassed:
		msg = playable.SimpleLogMessage(e.SeatID, "{} passed")
	case EventPowerCardChanged:
		msg = playable.SimpleLogMessage("", "The power card is now %s", e.PowerCard)
	case EventMatchFinished:
		if e.SeatID == "" {
			msg = playable.SimpleLogMessage("", "The cards ran out, nobody reached the winning score")
		} else {
			msg = playable.SimpleLogMessage(e.SeatID, "{} won with a stack of %d", e.Stack)
		}
	default:
		return nil
	}

	if e.Automatic {
		msg.Message = fmt.Sprintf("%s (auto)", msg.Message)
	}

	return msg
}

// LogMessages narrates every event
func LogMessages(events []Event) []*playable.LogMessage {
	msgs := make([]*playable.LogMessage, 0, len(events))
	for _, e := range events {
		if msg := e.LogMessage(); msg != nil {
			msgs = append(msgs, msg)
		}
	}

	return msgs
}
