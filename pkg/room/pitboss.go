package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"stackandsteal-server/internal/rng"
	"stackandsteal-server/pkg/archive"
	"stackandsteal-server/pkg/playable"
	"stackandsteal-server/pkg/token"
)

const maxRoomCodeAttempts = 10

// PitBoss is responsible for dispatching players to rooms
// The lock only guards the room map, everything that happens inside a room goes through its dealer.
type PitBoss struct {
	logger   logrus.FieldLogger
	config   Config
	gen      rng.Generator
	recorder archive.Recorder

	lock    sync.RWMutex
	dealers map[string]*Dealer

	newRoomCode func() (string, error)
	close       chan bool
	closeOnce   sync.Once
}

// NewPitBoss returns a new dispatch object
// recorder may be nil, finished matches are then not archived
func NewPitBoss(logger logrus.FieldLogger, cfg Config, gen rng.Generator, recorder archive.Recorder) *PitBoss {
	return &PitBoss{
		logger:      logger,
		config:      cfg,
		gen:         gen,
		recorder:    recorder,
		dealers:     make(map[string]*Dealer),
		newRoomCode: token.RoomCode,
		close:       make(chan bool),
	}
}

// StartShift starts the PitBoss run loop, which sweeps expired lobbies
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop and closes every room
func (p *PitBoss) EndShift() {
	p.closeOnce.Do(func() {
		close(p.close)
	})

	p.lock.Lock()
	dealers := p.dealers
	p.dealers = make(map[string]*Dealer)
	p.lock.Unlock()

	for _, d := range dealers {
		d.EndShift()
	}
}

func (p *PitBoss) runLoop() {
	interval := p.config.LobbyTTL / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			p.sweep(now)
		case <-p.close:
			return
		}
	}
}

func (p *PitBoss) sweep(now time.Time) {
	p.lock.RLock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, d := range p.dealers {
		dealers = append(dealers, d)
	}
	p.lock.RUnlock()

	for _, d := range dealers {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := d.sweep(ctx, now); err != nil && !errors.Is(err, ErrRoomClosed) {
			p.logger.WithError(err).WithField("room", d.id).Warn("could not sweep room")
		}
		cancel()
	}
}

// CreateRoom creates an empty room in the lobby
func (p *PitBoss) CreateRoom(opts RoomOptions) (*Dealer, error) {
	cfg, err := p.config.withOptions(opts)
	if err != nil {
		return nil, err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	for i := 0; i < maxRoomCodeAttempts; i++ {
		id, err := p.newRoomCode()
		if err != nil {
			return nil, err
		}

		if _, found := p.dealers[id]; found {
			continue
		}

		d := newDealer(p, id, cfg)
		d.StartShift()
		p.dealers[id] = d

		p.logger.WithFields(logrus.Fields{
			"room":     id,
			"capacity": cfg.Capacity,
		}).Info("room created")

		return d, nil
	}

	return nil, errors.New("could not find a free room code")
}

// Room returns the dealer for the room
func (p *PitBoss) Room(roomID string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	d, found := p.dealers[strings.ToUpper(roomID)]
	if !found {
		return nil, ErrRoomNotFound
	}

	return d, nil
}

// RoomCount returns the number of open rooms
func (p *PitBoss) RoomCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// forget removes the room from the map, it is called by a dealer that is closing
func (p *PitBoss) forget(d *Dealer) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.dealers[d.id] == d {
		delete(p.dealers, d.id)
		p.logger.WithField("room", d.id).Info("room closed")
	}
}

// JoinRoom seats a player in a room that is still in the lobby
func (p *PitBoss) JoinRoom(ctx context.Context, roomID string, info PlayerInfo) (*SeatSummary, []*SeatSummary, error) {
	d, err := p.Room(roomID)
	if err != nil {
		return nil, nil, err
	}

	return d.Join(ctx, info)
}

// AddBot adds a bot seat to a room in the lobby
func (p *PitBoss) AddBot(ctx context.Context, roomID, requesterSeatID string) (*SeatSummary, error) {
	d, err := p.Room(roomID)
	if err != nil {
		return nil, err
	}

	return d.AddBot(ctx, requesterSeatID)
}

// StartMatch starts the match, only the host of a full room may do this
func (p *PitBoss) StartMatch(ctx context.Context, roomID, requesterSeatID string) (*RoomView, error) {
	d, err := p.Room(roomID)
	if err != nil {
		return nil, err
	}

	return d.Start(ctx, requesterSeatID)
}

// SubmitAction forwards a seat's action to the room
func (p *PitBoss) SubmitAction(ctx context.Context, roomID, seatID string, msg *playable.PayloadIn) error {
	d, err := p.Room(roomID)
	if err != nil {
		return err
	}

	return d.Submit(ctx, seatID, msg)
}

// RemovePlayer removes a seat from a room
func (p *PitBoss) RemovePlayer(ctx context.Context, roomID, seatID string) error {
	d, err := p.Room(roomID)
	if err != nil {
		return err
	}

	return d.Leave(ctx, seatID)
}

// RoomView returns the room as the seat sees it
func (p *PitBoss) RoomView(ctx context.Context, roomID, seatID string) (*RoomView, error) {
	d, err := p.Room(roomID)
	if err != nil {
		return nil, err
	}

	return d.View(ctx, seatID)
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(ctx context.Context, client *Client) error {
	d, err := p.Room(client.roomID)
	if err != nil {
		return err
	}

	client.dealer = d
	p.logger.WithField("client", client.String()).Debug("client connected")
	return d.Subscribe(ctx, client)
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.logger.WithField("client", client.String()).Debug("client disconnected")
	if client.dealer != nil {
		client.dealer.Unsubscribe(client)
	}
}
