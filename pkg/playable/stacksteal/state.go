package stacksteal

import (
	"stackandsteal-server/pkg/bot"
	"stackandsteal-server/pkg/deck"
)

// Phase is the phase of a match
type Phase string

// phase constants
const (
	PhaseAwaitingAction Phase = "AWAITING_ACTION"
	PhaseResolved       Phase = "RESOLVED"
	PhaseFinished       Phase = "FINISHED"
)

// State is the complete state of a match
// A State is never modified once it is handed out, Apply and Advance return a new one
type State struct {
	Options Options
	// Seats are in turn order
	Seats []*Seat
	Deck  *deck.Deck
	// Played holds every card that left play: busted, stolen, spent on a steal,
	// shields, rogues and stacked cards that were covered by a later card
	Played           []*deck.Card
	CurrentTurnIndex int
	// Turn starts at 1 and increases every time the turn advances
	Turn int
	// Cycle increases every time the turn wraps back to the first seat
	Cycle        int
	PowerCard    deck.Rank
	Phase        Phase
	WinnerSeatID string
}

// Clone returns a deep copy of the state
// Cards are shared, they are never modified
func (s *State) Clone() *State {
	cp := *s
	cp.Options.PowerCardRanks = append([]deck.Rank(nil), s.Options.PowerCardRanks...)
	cp.Seats = make([]*Seat, len(s.Seats))
	for i, seat := range s.Seats {
		cp.Seats[i] = seat.clone()
	}

	cp.Deck = s.Deck.Clone()
	cp.Played = append([]*deck.Card(nil), s.Played...)

	return &cp
}

// CurrentSeat returns the seat whose turn it is
func (s *State) CurrentSeat() *Seat {
	return s.Seats[s.CurrentTurnIndex]
}

// Seat returns the seat with the ID or nil
func (s *State) Seat(id string) *Seat {
	for _, seat := range s.Seats {
		if seat.ID == id {
			return seat
		}
	}

	return nil
}

// CardCount counts every card the match is tracking
// It always equals the size of the deck the match was dealt from
func (s *State) CardCount() int {
	n := s.Deck.CardsLeft() + len(s.Played)
	for _, seat := range s.Seats {
		n += len(seat.Hand)
		if seat.LastStackedCard != nil {
			n++
		}
	}

	return n
}

// BotView returns what the seat can see, in the shape the bot policy expects
func (s *State) BotView(seatID string) bot.View {
	v := bot.View{
		SeatID:       seatID,
		WinningScore: s.Options.WinningScore,
		PowerCard:    s.PowerCard,
	}

	idx := -1
	for i, seat := range s.Seats {
		if seat.ID == seatID {
			idx = i
			v.Hand = seat.Hand.Clone()
			v.Stack = seat.Stack
			break
		}
	}

	if idx < 0 {
		return v
	}

	for i := 1; i < len(s.Seats); i++ {
		opp := s.Seats[(idx+i)%len(s.Seats)]
		v.Opponents = append(v.Opponents, bot.Opponent{
			SeatID:          opp.ID,
			LastStackedCard: opp.LastStackedCard,
			Shielded:        opp.Shielded,
		})
	}

	return v
}

func (s *State) winner() *Seat {
	for _, seat := range s.Seats {
		if seat.Stack == s.Options.WinningScore {
			return seat
		}
	}

	return nil
}

// exhausted returns true when no card is left to play anywhere
func (s *State) exhausted() bool {
	if s.Deck.CardsLeft() > 0 {
		return false
	}

	for _, seat := range s.Seats {
		if len(seat.Hand) > 0 {
			return false
		}
	}

	return true
}

// draw tops up the hand by one card, an empty deck is not an error
func (s *State) draw(seat *Seat) {
	if len(seat.Hand) >= s.Options.HandSize {
		return
	}

	if card, err := s.Deck.Draw(); err == nil {
		seat.Hand.AddCard(card)
	}
}

func (s *State) topUp(seat *Seat) {
	for len(seat.Hand) < s.Options.HandSize && s.Deck.CanDraw(1) {
		s.draw(seat)
	}
}
