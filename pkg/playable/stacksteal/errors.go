package stacksteal

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected action
// The message is safe to send back to the client, the state is never changed by a rejected action
type ValidationError string

func (v ValidationError) Error() string {
	return string(v)
}

// ErrNotYourTurn is returned when a seat acts out of turn
var ErrNotYourTurn = ValidationError("it is not your turn")

// ErrStaleAction is returned when an action arrives for a turn that was already resolved
var ErrStaleAction = ValidationError("the turn has already been resolved")

// ErrMatchFinished is returned for any action after the match ended
var ErrMatchFinished = ValidationError("the match is over")

// ErrSeatNotFound is returned when the acting or target seat is not in the match
var ErrSeatNotFound = ValidationError("seat not found")

// ErrCardNotInHand is returned when the card is not in the acting seat's hand
var ErrCardNotInHand = ValidationError("that card is not in your hand")

// ErrCardNotStackable is returned when stacking a SHIELD, a ROGUE or a card without value
var ErrCardNotStackable = ValidationError("that card cannot be stacked")

// ErrNotAShield is returned when playing a shield with any other card
var ErrNotAShield = ValidationError("that card is not a shield")

// ErrInvalidStealCost is returned when a SHIELD is offered to pay for a steal
var ErrInvalidStealCost = ValidationError("that card cannot pay for a steal")

// ErrStealFromSelf is returned when the target of a steal is the acting seat
var ErrStealFromSelf = ValidationError("you cannot steal from yourself")

// ErrNothingToSteal is returned when the target has no stacked card
var ErrNothingToSteal = ValidationError("there is nothing to steal from that seat")

// ErrTargetShielded is returned when the target is protected by a shield
var ErrTargetShielded = ValidationError("that seat is shielded")

// ErrStealWouldBust is returned when the stolen value would push the stack over the winning score
var ErrStealWouldBust = ValidationError("stealing that card would make you bust")

// ErrUnknownAction is returned for actions the game does not understand
var ErrUnknownAction = ValidationError("unknown action")

// ErrNotResolved is returned when advancing a turn that has not been resolved
var ErrNotResolved = errors.New("the current turn has not been resolved")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d–%d players, got %d", p.Min, p.Max, p.Got)
}

// IsValidationError returns true if the error is a rejected action
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
