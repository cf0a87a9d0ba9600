package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"stackandsteal-server/pkg/deck"
)

func view(hand string, stack int, opponents ...Opponent) View {
	return View{
		SeatID:       "me",
		Hand:         deck.CardsFromString(hand),
		Stack:        stack,
		WinningScore: 33,
		PowerCard:    deck.Two,
		Opponents:    opponents,
	}
}

func opponent(id, lastStacked string, shielded bool) Opponent {
	card := deck.CardFromString(lastStacked)
	if card != nil {
		card.ID = 100
	}

	return Opponent{SeatID: id, LastStackedCard: card, Shielded: shielded}
}

func TestDecide_EmptyHandPasses(t *testing.T) {
	assert.Equal(t, Decision{Kind: DecidePass}, Decide(view("", 10)))
}

func TestDecide_ShieldFirst(t *testing.T) {
	// even an exact win does not beat the shield priority
	d := Decide(view("5h,shield,9c", 28, opponent("b", "10h", false)))
	assert.Equal(t, Decision{Kind: DecideShield, CardID: 2}, d)
}

func TestDecide_PrefersLargerGain(t *testing.T) {
	a := assert.New(t)

	// stack 9 beats stealing a 5
	d := Decide(view("3h,9c", 10, opponent("b", "5h", false)))
	a.Equal(Decision{Kind: DecideStack, CardID: 2, Gain: 9}, d)

	// stealing a king beats stacking a 9
	d = Decide(view("3h,9c", 10, opponent("b", "5h", false), opponent("c", "kh", false)))
	a.Equal(Decision{Kind: DecideSteal, CardID: 1, TargetSeatID: "c", Gain: 10}, d)
}

func TestDecide_TiePrefersStack(t *testing.T) {
	d := Decide(view("3h,10c", 10, opponent("b", "kh", false)))
	assert.Equal(t, Decision{Kind: DecideStack, CardID: 2, Gain: 10}, d)
}

func TestDecide_PowerCardBonusCounts(t *testing.T) {
	a := assert.New(t)

	// a 2 with the power card bonus is worth 7, more than the 6
	d := Decide(view("6h,2c", 0))
	a.Equal(Decision{Kind: DecideStack, CardID: 2, Gain: 7}, d)

	// but the bonus can also make it bust
	d = Decide(view("6h,2c", 27))
	a.Equal(Decision{Kind: DecideStack, CardID: 1, Gain: 6}, d)
}

func TestDecide_StealRespectsShieldAndBust(t *testing.T) {
	a := assert.New(t)

	// the shielded king can't be taken and stacking our own king busts
	d := Decide(view("rogue,kc", 27,
		opponent("b", "kh", true),
		opponent("c", "4h", false),
	))
	a.Equal(Decision{Kind: DecideSteal, CardID: 1, TargetSeatID: "c", Gain: 4}, d)

	// nothing to steal from
	d = Decide(view("rogue", 10, opponent("b", "", false)))
	a.Equal(DecideBust, d.Kind)
}

func TestDecide_StealCost(t *testing.T) {
	a := assert.New(t)

	// the rogue is spent before any plain card
	d := Decide(view("kh,rogue", 30, opponent("b", "3h", false)))
	a.Equal(Decision{Kind: DecideSteal, CardID: 2, TargetSeatID: "b", Gain: 3}, d)

	// without a rogue the lowest number card is spent
	d = Decide(view("kh,9c,4d,qh", 30, opponent("b", "3h", false)))
	a.Equal(Decision{Kind: DecideSteal, CardID: 3, TargetSeatID: "b", Gain: 3}, d)

	// an ace is not a number card, so it is stacked instead of spent
	d = Decide(view("kh,1c,qh", 30, opponent("b", "3h", false)))
	a.Equal(Decision{Kind: DecideStack, CardID: 2, Gain: 1}, d)
}

func TestDecide_FaceCardsCannotPayForSteal(t *testing.T) {
	// the 3 is there for the taking but nothing in hand can pay for it
	d := Decide(view("kh,qh", 30, opponent("b", "3h", false)))
	assert.Equal(t, Decision{Kind: DecideBust, CardID: 1}, d)
}

func TestDecide_EqualStealsGoToFirstOpponent(t *testing.T) {
	d := Decide(view("rogue", 0, opponent("b", "8h", false), opponent("c", "8c", false)))
	assert.Equal(t, "b", d.TargetSeatID)
}

func TestDecide_BustsDeliberately(t *testing.T) {
	a := assert.New(t)

	d := Decide(view("kh,9c,rogue", 30))
	a.Equal(Decision{Kind: DecideBust, CardID: 2}, d)

	// same view, same decision
	a.Equal(d, Decide(view("kh,9c,rogue", 30)))
}
