// Package bot holds the deterministic decision procedure used for bot seats
// and for human seats whose turn timed out
package bot

import (
	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/scoring"
)

// Opponent is what a seat can see about another seat
type Opponent struct {
	SeatID          string
	LastStackedCard *deck.Card
	Shielded        bool
}

// View is a read-only projection of the state visible to the deciding seat
// Opponents are listed in turn order starting with the seat after the deciding seat
type View struct {
	SeatID       string
	Hand         []*deck.Card
	Stack        int
	WinningScore int
	PowerCard    deck.Rank
	Opponents    []Opponent
}

// DecisionKind is the kind of move the policy picked
type DecisionKind string

// decision kinds
const (
	DecideShield DecisionKind = "shield"
	DecideSteal  DecisionKind = "steal"
	DecideStack  DecisionKind = "stack"
	DecideBust   DecisionKind = "bust"
	DecidePass   DecisionKind = "pass"
)

// Decision is what Decide returns
// CardID is the card played (the stacked card, the shield, the steal cost or the discarded card)
type Decision struct {
	Kind         DecisionKind
	CardID       int
	TargetSeatID string
	// Gain is the immediate stack increase the decision yields
	Gain int
}

// Decide picks a move for the seat. It has no hidden randomness, the same view always
// produces the same decision.
//
//  1. a held SHIELD is always played
//  2. otherwise the best steal and the best stack are compared, the larger gain wins and
//     a tie goes to the stack
//  3. with nothing playable the seat busts on purpose and discards its lowest card
//  4. with an empty hand the seat passes
func Decide(v View) Decision {
	if len(v.Hand) == 0 {
		return Decision{Kind: DecidePass}
	}

	if shield := deck.Hand(v.Hand).FirstOfRank(deck.Shield); shield != nil {
		return Decision{Kind: DecideShield, CardID: shield.ID}
	}

	steal, canSteal := bestSteal(v)
	stack, canStack := bestStack(v)

	switch {
	case canStack && (!canSteal || stack.Gain >= steal.Gain):
		return stack
	case canSteal:
		return steal
	}

	lowest := v.Hand[0]
	for _, card := range v.Hand[1:] {
		if scoring.CardValue(card) < scoring.CardValue(lowest) {
			lowest = card
		}
	}

	return Decision{Kind: DecideBust, CardID: lowest.ID}
}

// bestStack returns the highest value card that can be stacked without busting
func bestStack(v View) (Decision, bool) {
	var best *deck.Card
	bestValue := 0
	for _, card := range v.Hand {
		if !scoring.IsStackable(card) {
			continue
		}

		value := scoring.StackValue(card, v.PowerCard)
		if v.Stack+value > v.WinningScore {
			continue
		}

		if best == nil || value > bestValue {
			best = card
			bestValue = value
		}
	}

	if best == nil {
		return Decision{}, false
	}

	return Decision{Kind: DecideStack, CardID: best.ID, Gain: bestValue}, true
}

// bestSteal returns the most valuable steal that does not bust the seat
func bestSteal(v View) (Decision, bool) {
	cost := stealCost(v.Hand)
	if cost == nil {
		return Decision{}, false
	}

	var target *Opponent
	targetValue := 0
	for i := range v.Opponents {
		opp := &v.Opponents[i]
		if opp.Shielded || opp.LastStackedCard == nil || opp.SeatID == v.SeatID {
			continue
		}

		value := scoring.CardValue(opp.LastStackedCard)
		if value <= 0 || v.Stack+value > v.WinningScore {
			continue
		}

		if target == nil || value > targetValue {
			target = opp
			targetValue = value
		}
	}

	if target == nil {
		return Decision{}, false
	}

	return Decision{Kind: DecideSteal, CardID: cost.ID, TargetSeatID: target.SeatID, Gain: targetValue}, true
}

// stealCost prefers spending a ROGUE, then the lowest value number card
func stealCost(hand []*deck.Card) *deck.Card {
	if rogue := deck.Hand(hand).FirstOfRank(deck.Rogue); rogue != nil {
		return rogue
	}

	var cost *deck.Card
	for _, card := range hand {
		if !scoring.CanPayForSteal(card) {
			continue
		}

		if cost == nil || scoring.CardValue(card) < scoring.CardValue(cost) {
			cost = card
		}
	}

	return cost
}
