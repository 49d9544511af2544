package room

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"cardtable-server/internal/config"
	"cardtable-server/internal/rng"
	"cardtable-server/internal/util"
	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/room/gamefactory"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrSessionNotFound is returned when no dealer is running the requested session
var ErrSessionNotFound = errors.New("session not found")

// reapInterval is how often idle sessions are checked for
const reapInterval = time.Minute

// PitBoss is responsible for dispatching sessions to dealers
type PitBoss struct {
	cfg    config.Config
	logger logrus.FieldLogger

	dealers map[string]*Dealer
	lock    sync.RWMutex

	connect    chan *Client
	disconnect chan *Client
	close      chan bool
	closeOnce  sync.Once

	sessions int64
	now      func() time.Time
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(cfg config.Config, logger logrus.FieldLogger) *PitBoss {
	return &PitBoss{
		cfg:        cfg,
		logger:     logger,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		close:      make(chan bool),
		now:        time.Now,
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop and every dealer
func (p *PitBoss) EndShift() {
	p.closeOnce.Do(func() {
		close(p.close)

		p.lock.Lock()
		defer p.lock.Unlock()
		for id, dealer := range p.dealers {
			dealer.EndShift()
			delete(p.dealers, id)
		}
	})
}

func (p *PitBoss) runLoop() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-p.connect:
			p.logger.WithField("client", client.String()).Debug("client connected")
			client.dealer.AddClient(client)
		case client := <-p.disconnect:
			p.logger.WithField("client", client.String()).Debug("client disconnected")
			client.dealer.RemoveClient(client)
		case <-ticker.C:
			p.reap()
		case <-p.close:
			return
		}
	}
}

// reap ends every session that has been idle longer than the configured TTL
func (p *PitBoss) reap() int {
	if p.cfg.SessionTTL <= 0 {
		return 0
	}

	cutoff := p.now().Add(-p.cfg.SessionTTL)

	p.lock.Lock()
	defer p.lock.Unlock()

	reaped := 0
	for id, dealer := range p.dealers {
		if len(dealer.Clients()) > 0 || dealer.LastActivity().After(cutoff) {
			continue
		}

		p.logger.WithField("uuid", id).Info("ending idle session")
		dealer.EndShift()
		delete(p.dealers, id)
		reaped++
	}

	return reaped
}

// CreateSession creates a game and starts a dealer for it
func (p *PitBoss) CreateSession(game string, additionalData playable.AdditionalData) (*Dealer, error) {
	factory, err := gamefactory.Get(game)
	if err != nil {
		return nil, err
	}

	gen := rng.New(p.cfg.RNG.Crypto, p.sessionSeed())
	session := &Session{
		UUID:      uuid.New().String(),
		Name:      util.GetRandomName(gen),
		Game:      game,
		CreatedAt: p.now(),
	}

	logger := p.logger.WithField("game", game)
	g, err := factory.CreateGame(logger, gen, p.cfg, additionalData)
	if err != nil {
		return nil, err
	}

	dealer := NewDealer(session, g, logger)
	dealer.StartShift()

	p.lock.Lock()
	p.dealers[session.UUID] = dealer
	p.lock.Unlock()

	logger.WithField("uuid", session.UUID).Info("created session")
	return dealer, nil
}

// sessionSeed offsets the configured seed by the number of sessions created so far
// The first session uses the configured seed as is, and zero keeps the time based seed
func (p *PitBoss) sessionSeed() int64 {
	n := atomic.AddInt64(&p.sessions, 1) - 1
	if p.cfg.RNG.Seed == 0 {
		return 0
	}

	return p.cfg.RNG.Seed + n
}

// Dealer returns the dealer running the session
func (p *PitBoss) Dealer(sessionUUID string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[sessionUUID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return dealer, nil
}

// EndSession ends the session and disconnects its clients
func (p *PitBoss) EndSession(sessionUUID string) error {
	p.lock.Lock()
	dealer, ok := p.dealers[sessionUUID]
	delete(p.dealers, sessionUUID)
	p.lock.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	dealer.EndShift()
	return nil
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
