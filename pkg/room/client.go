package room

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"stackandsteal-server/pkg/playable"
)

// Observer receives room updates
// Send must not block, returning false means the observer could not keep up and it is dropped.
type Observer interface {
	SeatID() string
	Send(msg interface{}) bool
}

// closer is an observer that can be told to go away
type closer interface {
	CloseWithReason(reason string)
}

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	roomID string
	seatID string
}

var _ Observer = (*Client)(nil)

// NewClient returns a new client object
// An empty seatID is a spectator
func NewClient(conn *websocket.Conn, roomID, seatID string) *Client {
	return &Client{
		send:   make(chan interface{}, 256),
		Close:  make(chan string, 1),
		Conn:   conn,
		roomID: roomID,
		seatID: seatID,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// SeatID returns the seat the client is connected as
func (c *Client) SeatID() string {
	return c.seatID
}

// RoomID returns the room the client is connected to
func (c *Client) RoomID() string {
	return c.roomID
}

// CloseWithReason asks the write loop to close the connection
func (c *Client) CloseWithReason(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the seat and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.seatID, c.roomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(ctx context.Context, msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(ctx, c, msg)
}
