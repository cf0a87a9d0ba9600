package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"stackandsteal-server/pkg/deck"
)

// Playable is a game that can be played
type Playable interface {
	// Action performs with a message
	// If playerResponse is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(seatID string, message *PayloadIn) (playerResponse *Response, updateState bool, err error)

	// GetPlayerState returns the current state of the game for the seat
	// An unknown seat ID gets the public view
	GetPlayerState(seatID string) (*Response, error)

	// GetEndOfGameDetails returns the details after a game is over
	// If the game is still in progress, nil will be returned and the second param will be false
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
// Each {} in the message is replaced by the display name of the matching entry in SeatIDs
type LogMessage struct {
	UUID    string       `json:"uuid"`
	SeatIDs []string     `json:"seatIds"`
	Cards   []*deck.Card `json:"cards"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
}

// Response is a container to determine who gets the specified message
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action         string         `json:"action"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails provides details on how the game ended
type GameOverDetails struct {
	WinnerSeatID string
	FinalStacks  map[string]int
	Log          interface{}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(seatID string, format string, a ...interface{}) *LogMessage {
	var seatIDs []string
	if seatID != "" {
		seatIDs = []string{seatID}
	}

	return NewLogMessage(seatIDs, nil, format, a...)
}

// NewLogMessage returns a log message about the seats and cards
func NewLogMessage(seatIDs []string, cards []*deck.Card, format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:    uuid.New().String(),
		SeatIDs: seatIDs,
		Cards:   cards,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}
