// Package scoring contains the pure scoring rules of Stack & Steal
package scoring

import "stackandsteal-server/pkg/deck"

// DefaultWinningScore is the exact stack a seat must reach to win
const DefaultWinningScore = 33

// PowerCardBonus is added when a card matching the power card is stacked
const PowerCardBonus = 5

// RogueValue is the nominal value of a ROGUE card
const RogueValue = 13

// CardValue returns the value of a card
// Number ranks are worth their face value, ten through king are worth 10, an ace is worth 1,
// a SHIELD is worth 0 and a ROGUE is worth 13
func CardValue(card *deck.Card) int {
	if card == nil {
		return 0
	}

	switch {
	case card.Rank == deck.Ace:
		return 1
	case card.Rank.IsNumber():
		return int(card.Rank)
	case card.Rank.IsFace():
		return 10
	case card.Rank == deck.Rogue:
		return RogueValue
	default:
		return 0
	}
}

// ApplyPowerCardBonus returns baseValue plus the bonus if the card matches the power card
func ApplyPowerCardBonus(card *deck.Card, powerCard deck.Rank, baseValue int) int {
	if card != nil && card.Rank == powerCard {
		return baseValue + PowerCardBonus
	}

	return baseValue
}

// StackValue is the value a card adds when it is stacked under the given power card
func StackValue(card *deck.Card, powerCard deck.Rank) int {
	return ApplyPowerCardBonus(card, powerCard, CardValue(card))
}

// ResolveStack adds addedValue to currentStack
// If the result would exceed winningScore the seat busts and the stack snaps back to zero
func ResolveStack(currentStack, addedValue, winningScore int) (newStack int, busted bool) {
	total := currentStack + addedValue
	if total > winningScore {
		return 0, true
	}

	return total, false
}

// IsStackable returns true if the card can be stacked at all
func IsStackable(card *deck.Card) bool {
	return card != nil && !card.IsSpecial() && CardValue(card) > 0
}

// CanPayForSteal returns true if the card can be spent on a steal
// Only a ROGUE or a number card qualifies, an ace is not a number card.
func CanPayForSteal(card *deck.Card) bool {
	return card != nil && (card.Rank == deck.Rogue || card.Rank.IsNumber())
}
