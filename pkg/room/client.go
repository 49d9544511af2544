package room

import (
	"fmt"

	"cardtable-server/pkg/playable"
	"github.com/gorilla/websocket"
)

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

	dealer     *Dealer
	remoteAddr string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, dealer *Dealer, remoteAddr string) *Client {
	return &Client{
		send:       make(chan interface{}, 256),
		Close:      make(chan string, 1),
		Conn:       conn,
		dealer:     dealer,
		remoteAddr: remoteAddr,
	}
}

// Send send a message to the web client
// If the client isn't keeping up, the message is dropped and false is returned
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

// CloseWithReason asks the write loop to close the connection
func (c *Client) CloseWithReason(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the client and session
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.remoteAddr, c.dealer.Session().UUID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	c.dealer.ReceivedMessage(c, msg)
}
