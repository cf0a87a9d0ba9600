package stacksteal

import "stackandsteal-server/pkg/deck"

// SeatView is what everybody can see about a seat
type SeatView struct {
	ID              string     `json:"id"`
	DisplayName     string     `json:"displayName"`
	Stack           int        `json:"stack"`
	Shielded        bool       `json:"shielded"`
	LastStackedCard *deck.Card `json:"lastStackedCard"`
	HandCount       int        `json:"handCount"`
	IsBot           bool       `json:"isBot"`
	Away            bool       `json:"away"`
	IsCurrent       bool       `json:"isCurrent"`
}

// PlayerView is the state of the match from one seat's point of view
// Only the viewer's own hand is included, other seats expose a card count.
type PlayerView struct {
	Phase         Phase        `json:"phase"`
	Turn          int          `json:"turn"`
	Cycle         int          `json:"cycle"`
	CurrentSeatID string       `json:"currentSeatId"`
	PowerCard     deck.Rank    `json:"powerCard"`
	WinningScore  int          `json:"winningScore"`
	DeckCount     int          `json:"deckCount"`
	PlayedCount   int          `json:"playedCount"`
	Seats         []*SeatView  `json:"seats"`
	Hand          []*deck.Card `json:"hand"`
	CanAct        bool         `json:"canAct"`
	WinnerSeatID  string       `json:"winnerSeatId,omitempty"`
}

// NewPlayerView projects the state for the seat
// An empty or unknown seat ID gets the public view.
func NewPlayerView(s *State, seatID string) *PlayerView {
	current := s.CurrentSeat()
	v := &PlayerView{
		Phase:         s.Phase,
		Turn:          s.Turn,
		Cycle:         s.Cycle,
		CurrentSeatID: current.ID,
		PowerCard:     s.PowerCard,
		WinningScore:  s.Options.WinningScore,
		DeckCount:     s.Deck.CardsLeft(),
		PlayedCount:   len(s.Played),
		Seats:         make([]*SeatView, len(s.Seats)),
		Hand:          []*deck.Card{},
		WinnerSeatID:  s.WinnerSeatID,
	}

	for i, seat := range s.Seats {
		v.Seats[i] = &SeatView{
			ID:              seat.ID,
			DisplayName:     seat.DisplayName,
			Stack:           seat.Stack,
			Shielded:        seat.Shielded,
			LastStackedCard: seat.LastStackedCard,
			HandCount:       len(seat.Hand),
			IsBot:           seat.IsBot,
			Away:            seat.Away,
			IsCurrent:       seat == current,
		}

		if seat.ID == seatID {
			v.Hand = seat.Hand.Clone()
		}
	}

	v.CanAct = seatID != "" && s.Phase == PhaseAwaitingAction && current.ID == seatID

	return v
}
