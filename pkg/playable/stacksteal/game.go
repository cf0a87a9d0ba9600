package stacksteal

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"stackandsteal-server/internal/rng"
	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/playable"
)

// Name is the name of the game
const Name = "stack-and-steal"

// Game is a match of Stack & Steal
// A Game is not safe for concurrent use, the room's dealer serializes every call
type Game struct {
	state   *State
	rng     rng.Generator
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

var _ playable.Playable = (*Game)(nil)
var _ playable.Timed = (*Game)(nil)

// NewGame shuffles, deals a hand to every seat and draws the first power card
func NewGame(logger logrus.FieldLogger, seats []SeatInfo, opts Options, gen rng.Generator) (*Game, error) {
	if err := opts.validate(len(seats)); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(seats))
	for _, info := range seats {
		if info.ID == "" || seen[info.ID] {
			return nil, fmt.Errorf("seat IDs must be unique and not empty, got %q", info.ID)
		}

		seen[info.ID] = true
	}

	d := deck.New(opts.Deck)
	d.Shuffle(gen)

	state := &State{
		Options: opts,
		Seats:   make([]*Seat, len(seats)),
		Deck:    d,
		Turn:    1,
		Cycle:   1,
		Phase:   PhaseAwaitingAction,
	}

	for i, info := range seats {
		state.Seats[i] = &Seat{
			ID:          info.ID,
			DisplayName: info.DisplayName,
			Hand:        make(deck.Hand, 0, opts.HandSize),
			IsBot:       info.IsBot,
		}
	}

	for i := 0; i < opts.HandSize; i++ {
		for _, seat := range state.Seats {
			state.draw(seat)
		}
	}

	state.PowerCard = opts.drawPowerCard(gen)

	g := &Game{
		state:   state,
		rng:     gen,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
	}

	g.sendLogMessages([]Event{
		{Type: EventMatchStarted, Stack: opts.WinningScore},
		{Type: EventPowerCardChanged, PowerCard: state.PowerCard, Turn: state.Turn},
		{Type: EventTurnStarted, SeatID: state.CurrentSeat().ID, Turn: state.Turn},
	})

	return g, nil
}

// State returns the current state, it must not be modified
func (g *Game) State() *State {
	return g.state
}

// Submit applies an action and advances the turn
// A rejected action leaves the match exactly as it was.
func (g *Game) Submit(a Action) ([]Event, error) {
	next, events, err := Apply(g.state, a)
	if err != nil {
		return nil, err
	}

	if next.Phase == PhaseResolved {
		advanced, more, err := Advance(next, g.rng)
		if err != nil {
			return nil, err
		}

		next = advanced
		events = append(events, more...)
	}

	g.state = next
	g.logger.WithFields(logrus.Fields{
		"seatID": a.SeatID,
		"action": a.Kind,
		"turn":   next.Turn,
	}).Debug("action applied")

	g.sendLogMessages(events)

	return events, nil
}

// SetAway marks a seat as away (or back), an away seat is played by the bot policy
func (g *Game) SetAway(seatID string, away bool) error {
	if g.state.Seat(seatID) == nil {
		return ErrSeatNotFound
	}

	next := g.state.Clone()
	next.Seat(seatID).Away = away
	g.state = next

	return nil
}

// Name returns "stack-and-steal"
func (g *Game) Name() string {
	return Name
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an action from a client
func (g *Game) Action(seatID string, message *playable.PayloadIn) (*playable.Response, bool, error) {
	a, err := ActionFromPayload(seatID, message)
	if err != nil {
		return nil, false, err
	}

	if _, err := g.Submit(a); err != nil {
		return nil, false, err
	}

	return playable.OK(), true, nil
}

// GetPlayerState returns the view of the match for the seat
func (g *Game) GetPlayerState(seatID string) (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: Name,
		Data:  NewPlayerView(g.state, seatID),
	}, nil
}

// GetEndOfGameDetails returns the winner and the final stacks
func (g *Game) GetEndOfGameDetails() (*playable.GameOverDetails, bool) {
	if g.state.Phase != PhaseFinished {
		return nil, false
	}

	stacks := make(map[string]int, len(g.state.Seats))
	for _, seat := range g.state.Seats {
		stacks[seat.ID] = seat.Stack
	}

	return &playable.GameOverDetails{
		WinnerSeatID: g.state.WinnerSeatID,
		FinalStacks:  stacks,
		Log:          NewPlayerView(g.state, ""),
	}, true
}

// CurrentTurn returns the turn awaiting an action and whether the server plays it
func (g *Game) CurrentTurn() (int, string, bool, bool) {
	if g.state.Phase != PhaseAwaitingAction {
		return 0, "", false, false
	}

	seat := g.state.CurrentSeat()
	return g.state.Turn, seat.ID, seat.Automatic(), true
}

// Timeout resolves the turn with the bot policy
// A timeout for a turn that is no longer in progress is ignored.
func (g *Game) Timeout(turn int) (bool, error) {
	if g.state.Phase != PhaseAwaitingAction || g.state.Turn != turn {
		return false, nil
	}

	_, err := g.Submit(Action{
		Kind:   ActionTimeout,
		SeatID: g.state.CurrentSeat().ID,
		Turn:   turn,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (g *Game) sendLogMessages(events []Event) {
	msgs := LogMessages(events)
	if len(msgs) == 0 || g.logChan == nil {
		return
	}

	select {
	case g.logChan <- msgs:
	default:
		g.logger.WithField("messages", len(msgs)).Warn("log channel is full, dropping messages")
	}
}
