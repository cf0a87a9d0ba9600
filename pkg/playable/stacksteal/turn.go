package stacksteal

import (
	"stackandsteal-server/internal/rng"
	"stackandsteal-server/pkg/bot"
	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/scoring"
)

// Apply validates and applies an action against an awaiting state
// On success a new state in the RESOLVED (or FINISHED) phase is returned. On failure the
// original state is returned untouched along with a ValidationError.
func Apply(s *State, a Action) (*State, []Event, error) {
	switch s.Phase {
	case PhaseFinished:
		return s, nil, ErrMatchFinished
	case PhaseResolved:
		return s, nil, ErrStaleAction
	}

	if a.Turn != 0 && a.Turn != s.Turn {
		return s, nil, ErrStaleAction
	}

	if s.Seat(a.SeatID) == nil {
		return s, nil, ErrSeatNotFound
	}

	if s.CurrentSeat().ID != a.SeatID {
		return s, nil, ErrNotYourTurn
	}

	next := s.Clone()
	events, err := next.apply(next.CurrentSeat(), a)
	if err != nil {
		return s, nil, err
	}

	next.Phase = PhaseResolved
	if winner := next.winner(); winner != nil {
		events = append(events, next.finish(winner))
	}

	return next, events, nil
}

// Advance moves a resolved state to the next seat
// The outgoing seat's hand is topped up and a new power card is drawn when the turn order wraps.
// A shield lasts through every opponent's turn: it expires when the seat that raised it is up
// again, so it is the incoming seat's shield that is cleared here.
// Once the deck and every hand are empty nobody can move again, and the match finishes
// without a winner.
func Advance(s *State, gen rng.Generator) (*State, []Event, error) {
	if s.Phase != PhaseResolved {
		return s, nil, ErrNotResolved
	}

	next := s.Clone()
	next.topUp(next.CurrentSeat())

	next.CurrentTurnIndex = (next.CurrentTurnIndex + 1) % len(next.Seats)
	next.Turn++

	var events []Event
	if next.CurrentTurnIndex == 0 {
		next.Cycle++
		next.PowerCard = next.Options.drawPowerCard(gen)
		events = append(events, Event{
			Type:      EventPowerCardChanged,
			PowerCard: next.PowerCard,
			Turn:      next.Turn,
		})
	}

	seat := next.CurrentSeat()
	if seat.Shielded {
		seat.Shielded = false
		events = append(events, Event{Type: EventShieldExpired, SeatID: seat.ID, Stack: seat.Stack})
	}

	if winner := next.winner(); winner != nil {
		events = append(events, next.finish(winner))
		return next, events, nil
	}

	if next.exhausted() {
		events = append(events, next.finish(nil))
		return next, events, nil
	}

	next.Phase = PhaseAwaitingAction
	events = append(events, Event{Type: EventTurnStarted, SeatID: seat.ID, Stack: seat.Stack, Turn: next.Turn})

	return next, events, nil
}

// finish ends the match, winner is nil when the cards ran out first
func (s *State) finish(winner *Seat) Event {
	s.Phase = PhaseFinished
	if winner == nil {
		s.WinnerSeatID = ""
		return Event{Type: EventMatchFinished, Turn: s.Turn}
	}

	s.WinnerSeatID = winner.ID

	return Event{Type: EventMatchFinished, SeatID: winner.ID, Stack: winner.Stack, Turn: s.Turn}
}

func (s *State) apply(seat *Seat, a Action) ([]Event, error) {
	switch a.Kind {
	case ActionStack:
		return s.stackCard(seat, a.CardID)
	case ActionShield:
		return s.playShield(seat, a.CardID)
	case ActionSteal:
		return s.steal(seat, a.CardID, a.TargetSeatID)
	case ActionPass:
		return []Event{{Type: EventPassed, SeatID: seat.ID, Stack: seat.Stack}}, nil
	case ActionBust:
		return s.bust(seat, a.CardID)
	case ActionTimeout:
		return s.autoPlay(seat)
	}

	return nil, ErrUnknownAction
}

func (s *State) stackCard(seat *Seat, cardID int) ([]Event, error) {
	card := seat.Hand.Find(cardID)
	if card == nil {
		return nil, ErrCardNotInHand
	}

	if !scoring.IsStackable(card) {
		return nil, ErrCardNotStackable
	}

	value := scoring.StackValue(card, s.PowerCard)
	stack, busted := scoring.ResolveStack(seat.Stack, value, s.Options.WinningScore)

	seat.Hand.Remove(cardID)
	if seat.LastStackedCard != nil {
		s.Played = append(s.Played, seat.LastStackedCard)
		seat.LastStackedCard = nil
	}

	seat.Stack = stack
	event := Event{
		Type:   EventCardStacked,
		SeatID: seat.ID,
		Card:   card,
		Value:  value,
		Stack:  stack,
		Bonus:  card.Rank == s.PowerCard,
	}

	if busted {
		s.Played = append(s.Played, card)
		event.Type = EventBusted
	} else {
		seat.LastStackedCard = card
	}

	s.draw(seat)

	return []Event{event}, nil
}

func (s *State) playShield(seat *Seat, cardID int) ([]Event, error) {
	card := seat.Hand.Find(cardID)
	if card == nil {
		return nil, ErrCardNotInHand
	}

	if card.Rank != deck.Shield {
		return nil, ErrNotAShield
	}

	seat.Hand.Remove(cardID)
	s.Played = append(s.Played, card)
	seat.Shielded = true
	s.draw(seat)

	return []Event{{Type: EventShieldPlayed, SeatID: seat.ID, Card: card, Stack: seat.Stack}}, nil
}

// steal takes the target's last stacked card
// A ROGUE pays for itself, otherwise a number card (2-9) is discarded as the cost.
func (s *State) steal(seat *Seat, costID int, targetID string) ([]Event, error) {
	cost := seat.Hand.Find(costID)
	if cost == nil {
		return nil, ErrCardNotInHand
	}

	if !scoring.CanPayForSteal(cost) {
		return nil, ErrInvalidStealCost
	}

	target := s.Seat(targetID)
	if target == nil {
		return nil, ErrSeatNotFound
	}

	if target == seat {
		return nil, ErrStealFromSelf
	}

	if target.LastStackedCard == nil {
		return nil, ErrNothingToSteal
	}

	if target.Shielded {
		return nil, ErrTargetShielded
	}

	stolen := target.LastStackedCard
	value := scoring.CardValue(stolen)
	if seat.Stack+value > s.Options.WinningScore {
		return nil, ErrStealWouldBust
	}

	seat.Hand.Remove(costID)
	s.Played = append(s.Played, cost, stolen)

	target.LastStackedCard = nil
	target.Stack -= value
	if target.Stack < 0 {
		target.Stack = 0
	}

	seat.Stack += value
	s.draw(seat)

	return []Event{{
		Type:         EventCardStolen,
		SeatID:       seat.ID,
		TargetSeatID: target.ID,
		Card:         stolen,
		Cost:         cost,
		Value:        value,
		Stack:        seat.Stack,
	}}, nil
}

// bust is the way out for a seat that has no legal move
func (s *State) bust(seat *Seat, cardID int) ([]Event, error) {
	card := seat.Hand.Remove(cardID)
	if card == nil {
		return nil, ErrCardNotInHand
	}

	s.Played = append(s.Played, card)
	if seat.LastStackedCard != nil {
		s.Played = append(s.Played, seat.LastStackedCard)
		seat.LastStackedCard = nil
	}

	seat.Stack = 0

	return []Event{{
		Type:       EventBusted,
		SeatID:     seat.ID,
		Card:       card,
		Deliberate: true,
	}}, nil
}

// autoPlay resolves the turn with the bot policy
func (s *State) autoPlay(seat *Seat) ([]Event, error) {
	decision := bot.Decide(s.BotView(seat.ID))

	kind := ActionPass
	switch decision.Kind {
	case bot.DecideShield:
		kind = ActionShield
	case bot.DecideSteal:
		kind = ActionSteal
	case bot.DecideStack:
		kind = ActionStack
	case bot.DecideBust:
		kind = ActionBust
	}

	events, err := s.apply(seat, Action{
		Kind:         kind,
		SeatID:       seat.ID,
		CardID:       decision.CardID,
		TargetSeatID: decision.TargetSeatID,
	})
	if err != nil {
		return nil, err
	}

	if !seat.IsBot {
		for i := range events {
			events[i].Automatic = true
		}
	}

	return events, nil
}
