package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"stackandsteal-server/internal/util"
	"stackandsteal-server/pkg/archive"
	"stackandsteal-server/pkg/playable"
	"stackandsteal-server/pkg/playable/stacksteal"
)

// archiveTimeout bounds how long a finished match may take to be written
const archiveTimeout = time.Second * 10

// PlayerInfo is the identity a caller supplies when joining a room
type PlayerInfo struct {
	// ID is optional, one is generated when empty
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type seat struct {
	id          string
	displayName string
	isBot       bool
}

// Dealer is responsible for a single room
// Every change to the room happens in its run loop, one at a time.
type Dealer struct {
	id        string
	pitBoss   *PitBoss
	config    Config
	logger    logrus.FieldLogger
	createdAt time.Time

	// everything below must only be touched from the run loop
	status      Status
	seats       []*seat
	observers   map[Observer]bool
	game        *stacksteal.Game
	logMessages []*playable.LogMessage
	scheduler   *turnScheduler
	startedAt   time.Time
	closeTimer  *time.Timer
	closing     bool

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// newDealer creates a new dealer object
// This is called while the pit boss holds its lock, so it needs to return quickly
func newDealer(pitBoss *PitBoss, id string, cfg Config) *Dealer {
	d := &Dealer{
		id:            id,
		pitBoss:       pitBoss,
		config:        cfg,
		logger:        pitBoss.logger.WithField("room", id),
		createdAt:     time.Now(),
		status:        StatusLobby,
		observers:     make(map[Observer]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	d.scheduler = newTurnScheduler(func(seq uint64, turn int) {
		d.post(func() {
			d.handleTimeout(seq, turn)
		})
	})

	return d
}

// ID returns the room code
func (d *Dealer) ID() string {
	return d.id
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift stops the run loop
// Calls waiting on the room return ErrRoomClosed.
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()

			if d.closing {
				d.pitBoss.forget(d)
				d.EndShift()
				d.shutdown()
				return
			}
		case <-d.close:
			d.shutdown()
			return
		}
	}
}

func (d *Dealer) shutdown() {
	d.scheduler.stop()
	if d.closeTimer != nil {
		d.closeTimer.Stop()
	}

	for o := range d.observers {
		o.Send(&playable.Response{Key: keyRoomClosed})
		if c, ok := o.(closer); ok {
			c.CloseWithReason("room closed")
		}

		delete(d.observers, o)
	}

	d.logger.Debug("terminating dealer run loop")
}

// do runs fn in the run loop and waits for its result
func (d *Dealer) do(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	exec := func() {
		errCh <- fn()
	}

	select {
	case d.execInRunLoop <- exec:
	case <-d.close:
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-errCh:
		return err
	case <-d.close:
		// fn may have been what closed the room
		select {
		case err := <-errCh:
			return err
		default:
			return ErrRoomClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post queues fn without waiting for it
func (d *Dealer) post(fn func()) {
	select {
	case d.execInRunLoop <- fn:
	case <-d.close:
	}
}

// Join seats a player in the lobby
func (d *Dealer) Join(ctx context.Context, info PlayerInfo) (joined *SeatSummary, seats []*SeatSummary, err error) {
	err = d.do(ctx, func() error {
		s, err := d.join(info)
		if err != nil {
			return err
		}

		seats = d.seatSummaries()
		joined = seats[len(seats)-1]
		d.addLogMessages([]*playable.LogMessage{playable.SimpleLogMessage(s.id, "{} joined the room")})
		d.broadcastState()
		return nil
	})

	return joined, seats, err
}

func (d *Dealer) join(info PlayerInfo) (*seat, error) {
	if info.ID != "" && d.seatIndex(info.ID) >= 0 {
		return nil, ErrAlreadySeated
	}

	if d.status != StatusLobby || len(d.seats) >= d.config.Capacity {
		return nil, ErrRoomFull
	}

	s := &seat{
		id:          info.ID,
		displayName: util.CleanDisplayName(info.DisplayName),
	}

	if s.id == "" {
		s.id = uuid.New().String()
	}

	if s.displayName == "" {
		s.displayName = fmt.Sprintf("Player %d", len(d.seats)+1)
	}

	d.seats = append(d.seats, s)
	return s, nil
}

// AddBot fills the next empty seat with a bot, only the host can do this
func (d *Dealer) AddBot(ctx context.Context, requesterSeatID string) (added *SeatSummary, err error) {
	err = d.do(ctx, func() error {
		if d.status != StatusLobby {
			return ErrAlreadyStarted
		}

		if !d.isHost(requesterSeatID) {
			return ErrNotHost
		}

		if len(d.seats) >= d.config.Capacity {
			return ErrRoomFull
		}

		s := &seat{
			id:          uuid.New().String(),
			displayName: util.GetRandomName(),
			isBot:       true,
		}

		d.seats = append(d.seats, s)
		summaries := d.seatSummaries()
		added = summaries[len(summaries)-1]

		d.addLogMessages([]*playable.LogMessage{playable.SimpleLogMessage(s.id, "{} (bot) joined the room")})
		d.broadcastState()
		return nil
	})

	return added, err
}

// Start deals the match, only the host can start a full room
func (d *Dealer) Start(ctx context.Context, requesterSeatID string) (view *RoomView, err error) {
	err = d.do(ctx, func() error {
		if err := d.start(requesterSeatID); err != nil {
			return err
		}

		view = d.view(requesterSeatID)
		return nil
	})

	return view, err
}

func (d *Dealer) start(requesterSeatID string) error {
	if d.status != StatusLobby {
		return ErrAlreadyStarted
	}

	if !d.isHost(requesterSeatID) {
		return ErrNotHost
	}

	if len(d.seats) < d.config.Capacity {
		return ErrRoomNotFull
	}

	infos := make([]stacksteal.SeatInfo, len(d.seats))
	for i, s := range d.seats {
		infos[i] = stacksteal.SeatInfo{
			ID:          s.id,
			DisplayName: s.displayName,
			IsBot:       s.isBot,
		}
	}

	game, err := stacksteal.NewGame(d.logger, infos, d.config.Options, d.pitBoss.gen)
	if err != nil {
		return err
	}

	d.game = game
	d.status = StatusInProgress
	d.startedAt = time.Now()
	d.logger.WithField("seats", len(infos)).Info("match started")

	d.afterGameEvent()
	return nil
}

// Submit applies a seat's action to the match
func (d *Dealer) Submit(ctx context.Context, seatID string, msg *playable.PayloadIn) error {
	return d.do(ctx, func() error {
		return d.submit(seatID, msg)
	})
}

func (d *Dealer) submit(seatID string, msg *playable.PayloadIn) error {
	switch d.status {
	case StatusLobby:
		return ErrMatchNotStarted
	case StatusFinished:
		return stacksteal.ErrMatchFinished
	}

	if s := d.game.State().Seat(seatID); s == nil || s.Away {
		return ErrNotSeated
	}

	if _, _, err := d.game.Action(seatID, msg); err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"seat":   seatID,
			"action": msg.Action,
		}).Debug("action rejected")
		return err
	}

	d.afterGameEvent()
	return nil
}

// ReceivedMessage is called when a websocket client sends an action
func (d *Dealer) ReceivedMessage(ctx context.Context, c *Client, msg *playable.PayloadIn) {
	err := d.Submit(ctx, c.SeatID(), msg)
	if err != nil {
		c.Send(NewErrorResponse(msg.Context, err))
		return
	}

	c.Send(playable.OK(msg.Context))
}

// Leave removes a seat
// A lobby seat is removed, the host leaving abandons the room. During a match the seat
// stays and is played by the bot policy.
func (d *Dealer) Leave(ctx context.Context, seatID string) error {
	return d.do(ctx, func() error {
		return d.leave(seatID)
	})
}

func (d *Dealer) leave(seatID string) error {
	idx := d.seatIndex(seatID)
	if idx < 0 {
		return ErrNotSeated
	}

	switch d.status {
	case StatusLobby:
		if idx == 0 {
			d.logger.WithField("seat", seatID).Info("host left, abandoning room")
			d.closing = true
			return nil
		}

		d.seats = append(d.seats[:idx:idx], d.seats[idx+1:]...)
		d.addLogMessages([]*playable.LogMessage{playable.SimpleLogMessage(seatID, "{} left the room")})
	case StatusInProgress:
		if s := d.game.State().Seat(seatID); s.Away {
			return ErrNotSeated
		}

		if err := d.game.SetAway(seatID, true); err != nil {
			return err
		}

		d.addLogMessages([]*playable.LogMessage{playable.SimpleLogMessage(seatID, "{} left, a bot takes over")})
		if _, current, _, ok := d.game.CurrentTurn(); ok && current == seatID {
			d.scheduleTurn()
		}
	case StatusFinished:
		return nil
	}

	d.broadcastState()
	return nil
}

// View returns the room as the seat sees it
func (d *Dealer) View(ctx context.Context, seatID string) (view *RoomView, err error) {
	err = d.do(ctx, func() error {
		view = d.view(seatID)
		return nil
	})

	return view, err
}

// Subscribe adds an observer, it is sent the current state right away
func (d *Dealer) Subscribe(ctx context.Context, o Observer) error {
	return d.do(ctx, func() error {
		d.observers[o] = true
		d.broadcastState()
		return nil
	})
}

// Unsubscribe removes an observer
func (d *Dealer) Unsubscribe(o Observer) {
	d.post(func() {
		if !d.observers[o] {
			return
		}

		delete(d.observers, o)
		d.broadcastState()
	})
}

// sweep closes a lobby that has been waiting longer than the lobby TTL, and a match
// that only the server is still playing with nobody watching
func (d *Dealer) sweep(ctx context.Context, now time.Time) error {
	return d.do(ctx, func() error {
		switch {
		case d.status == StatusLobby && now.Sub(d.createdAt) > d.config.LobbyTTL:
			d.logger.Info("lobby expired")
			d.closing = true
		case d.status == StatusInProgress && d.unattended():
			d.logger.Info("closing unattended match")
			d.closing = true
		}

		return nil
	})
}

// unattended returns true when every seat is played by the server and no one is subscribed
// NOTE: must only be called from the run loop
func (d *Dealer) unattended() bool {
	if len(d.observers) > 0 {
		return false
	}

	for _, s := range d.game.State().Seats {
		if !s.Automatic() {
			return false
		}
	}

	return true
}

// afterGameEvent runs after the match state changed
// NOTE: must only be called from the run loop
func (d *Dealer) afterGameEvent() {
	d.drainGameLog()

	if details, isOver := d.game.GetEndOfGameDetails(); isOver {
		d.finish(details)
		return
	}

	d.scheduleTurn()
	d.broadcastState()
}

// NOTE: must only be called from the run loop
func (d *Dealer) scheduleTurn() {
	turn, _, automatic, ok := d.game.CurrentTurn()
	if !ok {
		d.scheduler.stop()
		return
	}

	after := d.config.TurnDuration
	if automatic {
		after = d.config.BotThinkTime
	}

	d.scheduler.schedule(turn, after)
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleTimeout(seq uint64, turn int) {
	if d.status != StatusInProgress || !d.scheduler.current(seq) {
		return
	}

	updated, err := d.game.Timeout(turn)
	if err != nil {
		d.logger.WithError(err).WithField("turn", turn).Error("could not resolve timeout, passing")
		_, seatID, _, ok := d.game.CurrentTurn()
		if !ok {
			return
		}

		if _, err := d.game.Submit(stacksteal.Action{Kind: stacksteal.ActionPass, SeatID: seatID, Turn: turn}); err != nil {
			d.logger.WithError(err).WithField("turn", turn).Error("could not pass")
			return
		}

		updated = true
	}

	if updated {
		d.afterGameEvent()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) finish(details *playable.GameOverDetails) {
	d.status = StatusFinished
	d.scheduler.stop()
	finishedAt := time.Now()

	// winner is nil when the cards ran out
	winner := d.game.State().Seat(details.WinnerSeatID)
	finished := MatchFinished{
		WinnerSeatID: details.WinnerSeatID,
		FinalStacks:  details.FinalStacks,
	}

	if winner != nil {
		finished.FinalStack = winner.Stack
		d.logger.WithField("seat", winner.ID).Info("match finished")
	} else {
		d.logger.Info("match finished without a winner")
	}

	d.broadcastState()
	d.broadcast(&playable.Response{
		Key:  keyMatchFinished,
		Data: finished,
	})

	d.archive(winner, finishedAt)

	d.closeTimer = time.AfterFunc(d.config.FinishedGracePeriod, func() {
		d.post(func() {
			d.closing = true
		})
	})
}

// archive writes the result in the background
// NOTE: must only be called from the run loop
func (d *Dealer) archive(winner *stacksteal.Seat, finishedAt time.Time) {
	recorder := d.pitBoss.recorder
	if recorder == nil {
		return
	}

	state := d.game.State()
	m := &archive.Match{
		RoomID:     d.id,
		Turns:      state.Turn,
		StartedAt:  d.startedAt,
		FinishedAt: finishedAt,
	}

	if winner != nil {
		m.WinnerSeatID = winner.ID
		m.WinnerName = winner.DisplayName
	}

	for _, s := range state.Seats {
		m.SeatIDs = append(m.SeatIDs, s.ID)
		m.DisplayNames = append(m.DisplayNames, s.DisplayName)
		m.FinalStacks = append(m.FinalStacks, int64(s.Stack))
	}

	logger := d.logger
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		if err := recorder.RecordMatch(ctx, m); err != nil {
			logger.WithError(err).Error("could not archive match")
			return
		}

		logger.WithField("matchID", m.ID).Debug("match archived")
	}()
}

// NOTE: must only be called from the run loop
func (d *Dealer) view(seatID string) *RoomView {
	v := &RoomView{
		ID:       d.id,
		Status:   d.status,
		Capacity: d.config.Capacity,
		Seats:    d.seatSummaries(),
		Log:      append([]*playable.LogMessage{}, d.logMessages...),
	}

	if d.game != nil {
		v.Game = stacksteal.NewPlayerView(d.game.State(), seatID)
	}

	if deadline := d.scheduler.deadline; !deadline.IsZero() {
		v.TurnDeadline = &deadline
	}

	return v
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcastState() {
	for o := range d.observers {
		d.send(o, &playable.Response{
			Key:  keyStateChanged,
			Data: d.view(o.SeatID()),
		})
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(msg interface{}) {
	for o := range d.observers {
		d.send(o, msg)
	}
}

// send never blocks, an observer that cannot keep up is dropped
func (d *Dealer) send(o Observer, msg interface{}) {
	if o.Send(msg) {
		return
	}

	d.logger.WithField("seat", o.SeatID()).Warn("dropping slow observer")
	delete(d.observers, o)
	if c, ok := o.(closer); ok {
		c.CloseWithReason("too slow")
	}
}

func (d *Dealer) seatSummaries() []*SeatSummary {
	connected := make(map[string]bool, len(d.observers))
	for o := range d.observers {
		connected[o.SeatID()] = true
	}

	summaries := make([]*SeatSummary, len(d.seats))
	for i, s := range d.seats {
		summaries[i] = &SeatSummary{
			ID:          s.id,
			DisplayName: s.displayName,
			IsBot:       s.isBot,
			IsHost:      i == 0,
			IsConnected: connected[s.id],
		}

		if d.game != nil {
			if gs := d.game.State().Seat(s.id); gs != nil {
				summaries[i].Away = gs.Away
			}
		}
	}

	return summaries
}

func (d *Dealer) seatIndex(seatID string) int {
	for i, s := range d.seats {
		if s.id == seatID {
			return i
		}
	}

	return -1
}

func (d *Dealer) isHost(seatID string) bool {
	return len(d.seats) > 0 && d.seats[0].id == seatID
}
