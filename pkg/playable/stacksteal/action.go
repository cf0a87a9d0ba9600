package stacksteal

import (
	"stackandsteal-server/pkg/playable"
)

// ActionKind is the kind of action a seat takes
type ActionKind string

// action constants
const (
	ActionStack   ActionKind = "stack"
	ActionShield  ActionKind = "shield"
	ActionSteal   ActionKind = "steal"
	ActionPass    ActionKind = "pass"
	ActionTimeout ActionKind = "timeout"
	// ActionBust is the bot policy's deliberate bust, it is never accepted from a client
	ActionBust ActionKind = "bust"
)

// Action is a single move by a seat
type Action struct {
	Kind   ActionKind
	SeatID string
	// CardID is the card stacked, the shield played, the steal cost or the discarded card
	CardID       int
	TargetSeatID string
	// Turn, when not zero, must match the turn in progress
	Turn int
}

// ActionFromPayload builds an action from a client message
func ActionFromPayload(seatID string, msg *playable.PayloadIn) (Action, error) {
	a := Action{
		Kind:   ActionKind(msg.Action),
		SeatID: seatID,
	}

	switch a.Kind {
	case ActionStack, ActionShield, ActionSteal:
		cardID, ok := msg.AdditionalData.GetInt("cardId")
		if !ok {
			return Action{}, ValidationError("missing cardId")
		}

		a.CardID = cardID
	case ActionPass:
	default:
		return Action{}, ErrUnknownAction
	}

	if a.Kind == ActionSteal {
		target, ok := msg.AdditionalData.GetString("targetSeatId")
		if !ok || target == "" {
			return Action{}, ValidationError("missing targetSeatId")
		}

		a.TargetSeatID = target
	}

	if turn, ok := msg.AdditionalData.GetInt("turn"); ok {
		a.Turn = turn
	}

	return a, nil
}
