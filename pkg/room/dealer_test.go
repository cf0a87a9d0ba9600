package room

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"stackandsteal-server/pkg/playable"
	"stackandsteal-server/pkg/playable/stacksteal"
)

func TestDealer_TimeoutPlaysForTheSeat(t *testing.T) {
	a := assert.New(t)
	cfg := testConfig()
	cfg.TurnDuration = time.Millisecond * 20
	p, _ := newTestPitBoss(t, cfg)

	d, hostID := newStartedRoom(t, p)

	a.Eventually(func() bool {
		v := peek(d, hostID)
		return v.Game != nil && v.Game.Turn >= 3
	}, time.Second*2, time.Millisecond*10)

	found := false
	for _, msg := range viewOf(t, d, hostID).Log {
		if strings.HasSuffix(msg.Message, "(auto)") {
			found = true
		}
	}

	a.True(found, "expected an automatic move in the log")
}

func TestDealer_StaleTimeoutIsIgnored(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	p, _ := newTestPitBoss(t, testConfig())

	d, hostID := newStartedRoom(t, p)

	var firstSeq uint64
	a.NoError(d.do(ctx, func() error {
		firstSeq = d.scheduler.seq
		return nil
	}))

	a.NoError(d.Submit(ctx, hostID, &playable.PayloadIn{Action: "pass"}))

	var turn int
	a.NoError(d.do(ctx, func() error {
		// the countdown for turn 1 fires after the host already passed
		d.handleTimeout(firstSeq, 1)
		turn = d.game.State().Turn

		// a current countdown with an old turn is rejected by the game
		d.handleTimeout(d.scheduler.seq, 1)
		return nil
	}))

	a.Equal(2, turn)
	a.Equal(2, viewOf(t, d, hostID).Game.Turn)
}

func TestDealer_BotMatchFinishes(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	cfg := testConfig()
	cfg.Options = acesOnly()
	cfg.FinishedGracePeriod = time.Millisecond * 50
	p, rec := newTestPitBoss(t, cfg)

	d, err := p.CreateRoom(RoomOptions{})
	a.NoError(err)

	host, _, _ := d.Join(ctx, PlayerInfo{DisplayName: "Alice"})

	_, err = p.AddBot(ctx, d.ID(), "mallory")
	a.Equal(ErrNotHost, err)

	bot, err := p.AddBot(ctx, d.ID(), host.ID)
	a.NoError(err)
	a.True(bot.IsBot)
	a.NotEmpty(bot.DisplayName)

	_, err = p.AddBot(ctx, d.ID(), host.ID)
	a.Equal(ErrRoomFull, err)

	o := &testObserver{seatID: host.ID}
	a.NoError(d.Subscribe(ctx, o))

	_, err = d.Start(ctx, host.ID)
	a.NoError(err)

	// the host walks away on their own turn, the bot policy plays for them
	a.NoError(d.Leave(ctx, host.ID))
	a.Equal(ErrNotSeated, d.Submit(ctx, host.ID, &playable.PayloadIn{Action: "pass"}))

	select {
	case match := <-rec.matches:
		a.Len(match.SeatIDs, 2)
		a.Len(match.FinalStacks, 2)
		a.Contains(match.FinalStacks, int64(5))
		a.Greater(match.Turns, 0)
		a.Equal(d.ID(), match.RoomID)
	case <-time.After(time.Second * 5):
		a.Fail("match was not archived")
	}

	res := o.last(keyMatchFinished)
	if a.NotNil(res) {
		finished := res.Data.(MatchFinished)
		a.Equal(5, finished.FinalStack)
		a.Contains([]string{host.ID, bot.ID}, finished.WinnerSeatID)
	}

	a.Eventually(func() bool {
		return p.RoomCount() == 0
	}, time.Second*2, time.Millisecond*10)
}

func TestDealer_MatchWithoutWinner(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	cfg := testConfig()
	cfg.Options = shieldsOnly()
	cfg.FinishedGracePeriod = time.Millisecond * 50
	p, rec := newTestPitBoss(t, cfg)

	d, err := p.CreateRoom(RoomOptions{})
	a.NoError(err)

	host, _, _ := d.Join(ctx, PlayerInfo{DisplayName: "Alice"})
	_, err = p.AddBot(ctx, d.ID(), host.ID)
	a.NoError(err)

	o := &testObserver{seatID: host.ID}
	a.NoError(d.Subscribe(ctx, o))

	_, err = d.Start(ctx, host.ID)
	a.NoError(err)
	a.NoError(d.Leave(ctx, host.ID))

	select {
	case match := <-rec.matches:
		a.Equal("", match.WinnerSeatID)
		a.Equal("", match.WinnerName)
		a.Equal([]int64{0, 0}, match.FinalStacks)
	case <-time.After(time.Second * 5):
		a.Fail("match was not archived")
	}

	res := o.last(keyMatchFinished)
	if a.NotNil(res) {
		finished := res.Data.(MatchFinished)
		a.Equal("", finished.WinnerSeatID)
		a.Equal(0, finished.FinalStack)
	}

	a.Eventually(func() bool {
		return p.RoomCount() == 0
	}, time.Second*2, time.Millisecond*10)
}

func TestDealer_SubmitAfterFinish(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	cfg := testConfig()
	cfg.Options = acesOnly()
	p, _ := newTestPitBoss(t, cfg)

	d, _ := p.CreateRoom(RoomOptions{})
	host, _, _ := d.Join(ctx, PlayerInfo{DisplayName: "Alice"})
	_, _ = d.AddBot(ctx, host.ID)
	_, _ = d.Start(ctx, host.ID)
	_ = d.Leave(ctx, host.ID)

	a.Eventually(func() bool {
		return peek(d, host.ID).Status == StatusFinished
	}, time.Second*2, time.Millisecond*10)

	view := viewOf(t, d, host.ID)
	a.Nil(view.TurnDeadline)
	a.Equal(stacksteal.PhaseFinished, view.Game.Phase)
	a.NotEmpty(view.Game.WinnerSeatID)

	a.Equal(stacksteal.ErrMatchFinished, d.Submit(ctx, host.ID, &playable.PayloadIn{Action: "pass"}))
	a.NoError(d.Leave(ctx, host.ID))
}

func TestDealer_SlowObserverIsDropped(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	p, _ := newTestPitBoss(t, testConfig())

	d, _ := p.CreateRoom(RoomOptions{})
	host, _, _ := d.Join(ctx, PlayerInfo{DisplayName: "Alice"})
	_, _, _ = d.Join(ctx, PlayerInfo{ID: "bob"})

	slow := &testObserver{seatID: host.ID, full: true}
	fast := &testObserver{seatID: "bob"}
	a.NoError(d.Subscribe(ctx, fast))
	a.NoError(d.Subscribe(ctx, slow))

	a.Equal("too slow", slow.closedReason())

	seats := viewOf(t, d, "bob").Seats
	a.False(seats[0].IsConnected)
	a.True(seats[1].IsConnected)

	res := fast.last(keyStateChanged)
	if a.NotNil(res) {
		a.Equal(StatusLobby, res.Data.(*RoomView).Status)
	}
}

func TestDealer_ObserverSeesOwnHand(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	p, _ := newTestPitBoss(t, testConfig())

	d, _ := p.CreateRoom(RoomOptions{})
	host, _, _ := d.Join(ctx, PlayerInfo{DisplayName: "Alice"})
	_, _, _ = d.Join(ctx, PlayerInfo{ID: "bob"})

	o := &testObserver{seatID: "bob"}
	a.NoError(d.Subscribe(ctx, o))
	_, err := d.Start(ctx, host.ID)
	a.NoError(err)

	res := o.last(keyStateChanged)
	if a.NotNil(res) {
		view := res.Data.(*RoomView)
		a.Equal(StatusInProgress, view.Status)
		a.Len(view.Game.Hand, 4)
		a.False(view.Game.CanAct)
	}

	d.Unsubscribe(o)
	a.Eventually(func() bool {
		seats := peek(d, host.ID).Seats
		return len(seats) == 2 && !seats[1].IsConnected
	}, time.Second, time.Millisecond*10)
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)
	d := &Dealer{}

	for i := 0; i < 3; i++ {
		msgs := make([]*playable.LogMessage, 10)
		for j := range msgs {
			msgs[j] = playable.SimpleLogMessage("", fmt.Sprintf("message %d", i*10+j))
		}

		d.addLogMessages(msgs)
	}

	a.Len(d.logMessages, logMessageLimit)
	a.Equal("message 5", d.logMessages[0].Message)
	a.Equal("message 29", d.logMessages[24].Message)
}
