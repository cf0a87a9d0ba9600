package room

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"stackandsteal-server/internal/rng"
	"stackandsteal-server/pkg/archive"
	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/playable"
	"stackandsteal-server/pkg/playable/stacksteal"
)

type testObserver struct {
	seatID string

	lock     sync.Mutex
	messages []interface{}
	full     bool
	closed   string
}

func (o *testObserver) SeatID() string {
	return o.seatID
}

func (o *testObserver) Send(msg interface{}) bool {
	o.lock.Lock()
	defer o.lock.Unlock()

	if o.full {
		return false
	}

	o.messages = append(o.messages, msg)
	return true
}

func (o *testObserver) CloseWithReason(reason string) {
	o.lock.Lock()
	defer o.lock.Unlock()

	o.closed = reason
}

func (o *testObserver) closedReason() string {
	o.lock.Lock()
	defer o.lock.Unlock()

	return o.closed
}

// last returns the newest response with the key
func (o *testObserver) last(key string) *playable.Response {
	o.lock.Lock()
	defer o.lock.Unlock()

	for i := len(o.messages) - 1; i >= 0; i-- {
		if res, ok := o.messages[i].(*playable.Response); ok && res.Key == key {
			return res
		}
	}

	return nil
}

type testRecorder struct {
	matches chan *archive.Match
}

func (r *testRecorder) RecordMatch(_ context.Context, m *archive.Match) error {
	m.ID = 1
	r.matches <- m
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Capacity = 2
	cfg.TurnDuration = time.Minute
	cfg.BotThinkTime = time.Millisecond * 5
	cfg.FinishedGracePeriod = time.Minute

	return cfg
}

// acesOnly makes every bot stack 1 point a turn, the first seat wins on its fifth turn
func acesOnly() stacksteal.Options {
	opts := stacksteal.DefaultOptions()
	opts.WinningScore = 5
	opts.Deck = deck.Composition{AceCount: 40}

	return opts
}

// shieldsOnly gives the bots nothing to stack, the cards run out before anyone scores
func shieldsOnly() stacksteal.Options {
	opts := stacksteal.DefaultOptions()
	opts.Deck = deck.Composition{ShieldCount: 12}

	return opts
}

func newTestPitBoss(t *testing.T, cfg Config) (*PitBoss, *testRecorder) {
	t.Helper()

	rec := &testRecorder{matches: make(chan *archive.Match, 10)}
	p := NewPitBoss(logrus.StandardLogger(), cfg, rng.NewSeeded(1), rec)
	p.StartShift()
	t.Cleanup(p.EndShift)

	return p, rec
}

// newStartedRoom returns a started two seat room with the host and bob
func newStartedRoom(t *testing.T, p *PitBoss) (d *Dealer, hostID string) {
	t.Helper()
	ctx := context.Background()

	d, err := p.CreateRoom(RoomOptions{})
	if err != nil {
		t.Fatal(err)
	}

	host, _, err := d.Join(ctx, PlayerInfo{DisplayName: "Alice"})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := d.Join(ctx, PlayerInfo{ID: "bob", DisplayName: "Bob"}); err != nil {
		t.Fatal(err)
	}

	if _, err := d.Start(ctx, host.ID); err != nil {
		t.Fatal(err)
	}

	return d, host.ID
}

func viewOf(t *testing.T, d *Dealer, seatID string) *RoomView {
	t.Helper()

	view, err := d.View(context.Background(), seatID)
	if err != nil {
		t.Fatal(err)
	}

	return view
}

// peek is viewOf for conditions polled off the test goroutine
func peek(d *Dealer, seatID string) *RoomView {
	view, err := d.View(context.Background(), seatID)
	if err != nil {
		return &RoomView{}
	}

	return view
}
