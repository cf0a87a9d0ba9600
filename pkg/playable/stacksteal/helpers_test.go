package stacksteal

import (
	"github.com/sirupsen/logrus"
	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/playable"
)

// fixedGen always picks the same index
type fixedGen int

func (f fixedGen) Intn(n int) int {
	return int(f) % n
}

// newTestState seats "a", "b", "c"... with the given hands, seat "a" is current
// deckCards are drawn from the end. Every card gets a unique ID, hands first then the deck.
// There is no power card so no bonus applies unless a test sets one.
func newTestState(deckCards string, hands ...string) *State {
	id := 0
	renumber := func(cards []*deck.Card) []*deck.Card {
		for _, card := range cards {
			id++
			card.ID = id
		}

		return cards
	}

	s := &State{
		Options: DefaultOptions(),
		Turn:    1,
		Cycle:   1,
		Phase:   PhaseAwaitingAction,
	}

	for i, hand := range hands {
		seatID := string(rune('a' + i))
		s.Seats = append(s.Seats, &Seat{
			ID:          seatID,
			DisplayName: "Seat " + seatID,
			Hand:        renumber(deck.CardsFromString(hand)),
		})
	}

	s.Deck = deck.NewFromCards(renumber(deck.CardsFromString(deckCards)))

	return s
}

func newTestGame(s *State, gen fixedGen) *Game {
	return &Game{
		state:   s,
		rng:     gen,
		logger:  logrus.StandardLogger(),
		logChan: make(chan []*playable.LogMessage, 256),
	}
}

// stackedCard returns a card that is not tracked anywhere else in the state
func stackedCard(id int, s string) *deck.Card {
	card := deck.CardFromString(s)
	card.ID = id

	return card
}
