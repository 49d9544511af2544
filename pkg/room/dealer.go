package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cardtable-server/pkg/playable"
	"github.com/sirupsen/logrus"
)

// ErrSessionEnded is returned when the dealer's shift is over
var ErrSessionEnded = errors.New("session has ended")

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// Dealer is responsible for running a single session's game
// Every action and tick runs on the dealer's run loop, so rounds never interleave
type Dealer struct {
	session *Session
	game    playable.Playable
	logger  logrus.FieldLogger

	clients      map[*Client]bool
	lastActivity time.Time
	lock         sync.RWMutex

	// logMessages must only be accessed from the run loop
	logMessages []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
func NewDealer(session *Session, game playable.Playable, logger logrus.FieldLogger) *Dealer {
	return &Dealer{
		session: session,
		game:    game,
		logger: logger.WithFields(logrus.Fields{
			"uuid": session.UUID,
			"name": session.Name,
		}),
		clients:       make(map[*Client]bool),
		lastActivity:  time.Now(),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Session returns the session the dealer is running
func (d *Dealer) Session() *Session {
	return d.session
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// LastActivity returns the last time an action was performed or a client connected
func (d *Dealer) LastActivity() time.Time {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.lastActivity
}

func (d *Dealer) touch() {
	d.lock.Lock()
	d.lastActivity = time.Now()
	d.lock.Unlock()
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")

	var tickC <-chan time.Time
	if tickable, ok := d.game.(playable.Tickable); ok {
		ticker := time.NewTicker(tickable.Delay())
		defer ticker.Stop()
		tickC = ticker.C
	}

	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendClientState()
			case stateGameEvent:
				d.sendGameState()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case msgs := <-d.game.LogChan():
			d.addLogMessages(msgs)
			d.broadcast(newLogResponse(msgs))
		case <-tickC:
			d.tick()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// enqueue hands fn to the run loop
// Returns false if the shift has ended
func (d *Dealer) enqueue(fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// exec runs fn in the run loop and waits for it to complete
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	done := make(chan bool)
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return ErrSessionEnded
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		return ErrSessionEnded
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notify requests a state broadcast without blocking the caller
func (d *Dealer) notify(s state) {
	select {
	case d.stateChanged <- s:
	default:
		d.logger.WithField("state", s).Warn("state channel is full")
	}
}

// Action performs an action on behalf of a caller that isn't connected via websockets
func (d *Dealer) Action(ctx context.Context, msg *playable.PayloadIn) (*playable.Response, error) {
	var res *playable.Response
	var actionErr error
	if err := d.exec(ctx, func() {
		res, actionErr = d.performAction(msg)
	}); err != nil {
		return nil, err
	}

	return res, actionErr
}

// State returns the current game state
func (d *Dealer) State(ctx context.Context) (*playable.Response, error) {
	var res *playable.Response
	if err := d.exec(ctx, func() {
		res = d.game.GetState()
	}); err != nil {
		return nil, err
	}

	return res, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) performAction(msg *playable.PayloadIn) (res *playable.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(logrus.Fields{
				"panic":  r,
				"action": msg.Action,
			}).Error("recovered from game panic")

			res = nil
			err = fmt.Errorf("could not perform %s: %v", msg.Action, r)
		}
	}()

	d.touch()

	res, updateState, err := d.game.Action(msg)
	if err != nil {
		return nil, err
	}

	if res != nil {
		res.Context = msg.Context
	}

	if updateState {
		d.notify(stateGameEvent)
	}

	return res, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) tick() {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Error("recovered from game panic during tick")
		}
	}()

	updateState, err := d.game.(playable.Tickable).Tick()
	if err != nil {
		d.logger.WithError(err).Error("could not tick game")
		return
	}

	if updateState {
		d.sendGameState()
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	d.clients[client] = true
	d.lastActivity = time.Now()
	d.lock.Unlock()

	d.enqueue(func() {
		client.Send(d.game.GetState())
		if len(d.logMessages) > 0 {
			client.Send(newLogResponse(d.logMessages))
		}
	})

	d.notify(stateClientEvent)
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (remaining int) {
	d.lock.Lock()
	delete(d.clients, client)
	remaining = len(d.clients)
	d.lock.Unlock()

	d.notify(stateClientEvent)
	return remaining
}

// EndShift is called when the dealer is no longer needed
// Connected clients are disconnected
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)

		for _, client := range d.Clients() {
			client.CloseWithReason(ErrSessionEnded.Error())
		}
	})
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	ok := d.enqueue(func() {
		res, err := d.performAction(msg)
		if err != nil {
			d.logger.WithError(err).WithField("client", c.String()).Debug("could not perform action")
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		if res != nil {
			c.Send(res)
		}
	})

	if !ok {
		c.Send(newErrorResponse(msg.Context, ErrSessionEnded))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameState() {
	d.broadcast(d.game.GetState())
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	d.broadcast(&playable.Response{
		Key: "clientState",
		Data: &clientState{
			Session:   d.session,
			Connected: len(d.Clients()),
		},
	})
}

func (d *Dealer) broadcast(res *playable.Response) {
	for _, client := range d.Clients() {
		if !client.Send(res) {
			d.logger.WithField("client", client.String()).Warn("client is not keeping up, dropped message")
		}
	}
}
