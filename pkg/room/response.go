package room

import (
	"time"

	"stackandsteal-server/pkg/playable"
	"stackandsteal-server/pkg/playable/stacksteal"
)

// Status is the lifecycle status of a room
type Status string

// status constants
const (
	StatusLobby      Status = "LOBBY"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
)

// response keys sent to observers
const (
	keyStateChanged  = "stateChanged"
	keyMatchFinished = "matchFinished"
	keyRoomClosed    = "roomClosed"
)

// SeatSummary is a seat as it appears in the lobby
type SeatSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsBot       bool   `json:"isBot"`
	IsHost      bool   `json:"isHost"`
	Away        bool   `json:"away"`
	IsConnected bool   `json:"isConnected"`
}

// RoomView is the state of a room from one seat's point of view
type RoomView struct {
	ID           string                 `json:"id"`
	Status       Status                 `json:"status"`
	Capacity     int                    `json:"capacity"`
	Seats        []*SeatSummary         `json:"seats"`
	Game         *stacksteal.PlayerView `json:"game,omitempty"`
	TurnDeadline *time.Time             `json:"turnDeadline,omitempty"`
	Log          []*playable.LogMessage `json:"log"`
}

// MatchFinished is sent to every observer when a seat wins
type MatchFinished struct {
	WinnerSeatID string         `json:"winnerSeatId"`
	FinalStack   int            `json:"finalStack"`
	FinalStacks  map[string]int `json:"finalStacks"`
}

// NewErrorResponse returns the response sent to a client when its message failed
func NewErrorResponse(ctx string, err error) *playable.Response {
	res := &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}

	if u, ok := IsUserError(err); ok {
		res.Data = map[string]string{"code": u.Code()}
	}

	return res
}
