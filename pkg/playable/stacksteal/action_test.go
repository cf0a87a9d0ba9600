package stacksteal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"stackandsteal-server/pkg/playable"
)

func TestActionFromPayload(t *testing.T) {
	a := assert.New(t)

	action, err := ActionFromPayload("a", &playable.PayloadIn{
		Action: "steal",
		AdditionalData: playable.AdditionalData{
			"cardId":       float64(7),
			"targetSeatId": "b",
			"turn":         float64(3),
		},
	})
	a.NoError(err)
	a.Equal(Action{Kind: ActionSteal, SeatID: "a", CardID: 7, TargetSeatID: "b", Turn: 3}, action)

	action, err = ActionFromPayload("a", &playable.PayloadIn{Action: "pass"})
	a.NoError(err)
	a.Equal(Action{Kind: ActionPass, SeatID: "a"}, action)

	action, err = ActionFromPayload("a", &playable.PayloadIn{Action: "shield", AdditionalData: playable.AdditionalData{"cardId": 4}})
	a.NoError(err)
	a.Equal(4, action.CardID)
}

func TestActionFromPayload_Rejected(t *testing.T) {
	a := assert.New(t)

	_, err := ActionFromPayload("a", &playable.PayloadIn{Action: "stack"})
	a.EqualError(err, "missing cardId")

	_, err = ActionFromPayload("a", &playable.PayloadIn{Action: "steal", AdditionalData: playable.AdditionalData{"cardId": float64(1)}})
	a.EqualError(err, "missing targetSeatId")

	for _, kind := range []string{"bust", "timeout", ""} {
		_, err = ActionFromPayload("a", &playable.PayloadIn{Action: kind, AdditionalData: playable.AdditionalData{"cardId": float64(1)}})
		a.Equal(ErrUnknownAction, err, kind)
	}
}
