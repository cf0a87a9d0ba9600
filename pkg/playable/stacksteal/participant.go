package stacksteal

import "stackandsteal-server/pkg/deck"

// SeatInfo is what a match needs to know about a seat when it starts
type SeatInfo struct {
	ID          string
	DisplayName string
	IsBot       bool
}

// Seat is an individual in the match
type Seat struct {
	ID          string
	DisplayName string
	Hand        deck.Hand
	// Stack is always between 0 and the winning score
	Stack int
	// Shielded is set by a SHIELD and cleared when the seat's next turn starts
	Shielded bool
	// LastStackedCard is the only card that can be stolen from the seat
	LastStackedCard *deck.Card
	IsBot           bool
	// Away is set when a human left mid-match, the seat is then played by the bot policy
	Away bool
}

// Automatic returns true if the server plays this seat
func (s *Seat) Automatic() bool {
	return s.IsBot || s.Away
}

func (s *Seat) clone() *Seat {
	cp := *s
	cp.Hand = s.Hand.Clone()
	return &cp
}
