package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"stackandsteal-server/pkg/playable"
)

func TestClient_Send(t *testing.T) {
	a := assert.New(t)
	c := NewClient(nil, "ABC123", "seat-1")

	for i := 0; i < cap(c.send); i++ {
		a.True(c.Send(i))
	}

	a.False(c.Send("one too many"), "Send must not block on a full buffer")
	a.Equal(0, <-c.SendChan())
	a.Equal("seat-1:ABC123", c.String())
}

func TestClient_CloseWithReason(t *testing.T) {
	c := NewClient(nil, "ABC123", "seat-1")
	c.CloseWithReason("too slow")
	c.CloseWithReason("room closed")

	assert.Equal(t, "too slow", <-c.Close)
}

func TestClient_ReceivedMessage(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	p, _ := newTestPitBoss(t, testConfig())

	d, _ := p.CreateRoom(RoomOptions{})
	host, _, _ := d.Join(ctx, PlayerInfo{DisplayName: "Alice"})

	c := NewClient(nil, d.ID(), host.ID)
	a.NoError(p.ClientConnected(ctx, c))

	c.ReceivedMessage(ctx, &playable.PayloadIn{Action: "pass", Context: "abc"})

	var res *playable.Response
	for res == nil || res.Key != "error" {
		res = (<-c.SendChan()).(*playable.Response)
	}

	a.Equal("abc", res.Context)
	a.Equal("the match has not started", res.Value)
	a.Equal(map[string]string{"code": "MATCH_NOT_STARTED"}, res.Data)

	p.ClientDisconnected(c)
	a.Eventually(func() bool {
		seats := peek(d, host.ID).Seats
		return len(seats) == 1 && !seats[0].IsConnected
	}, time.Second, time.Millisecond*10)

	a.Equal(ErrRoomNotFound, p.ClientConnected(ctx, NewClient(nil, "NOPE42", "x")))
}

func TestNewErrorResponse(t *testing.T) {
	a := assert.New(t)

	res := NewErrorResponse("ctx", ErrRoomFull)
	a.Equal("error", res.Key)
	a.Equal("the room is full", res.Value)
	a.Equal(map[string]string{"code": "ROOM_FULL"}, res.Data)

	res = NewErrorResponse("ctx", assert.AnError)
	a.Nil(res.Data)
}
