package holdem

import (
	"fmt"
	"strings"

	"cardtable-server/internal/rng"
	"cardtable-server/pkg/deck"
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/poker/handanalyzer"
	"github.com/sirupsen/logrus"
)

// Name is the name of the game
const Name = "Texas Hold'em"

// Street is a betting round
type Street string

// Street constants
const (
	StreetPreFlop  Street = "pre-flop"
	StreetFlop     Street = "flop"
	StreetTurn     Street = "turn"
	StreetRiver    Street = "river"
	StreetShowdown Street = "showdown"
)

// Game is a fixed limit hold'em session against computer opponents
// Every seat antes one bet, then each street costs one more bet for every seat still in
// Opponents are backed by the house, so only the player's chips go through the ledger
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
	gen     rng.Generator
	newDeck func() *deck.Deck

	ledger *ledger.Ledger
	phase  playable.Phase
	street Street
	deck   *deck.Deck

	seats      []*Seat
	board      deck.Hand
	bet        int
	pot        int
	lastResult *RoundResult
}

// RoundResult is the outcome of the last finished round
type RoundResult struct {
	Winners []string `json:"winners"`
	Hand    string   `json:"hand"`
	Staked  int      `json:"staked"`
	Payout  int      `json:"payout"`
	Net     int      `json:"net"`
	Message string   `json:"message"`
}

// NewGame returns a new hold'em session
func NewGame(logger logrus.FieldLogger, gen rng.Generator, options Options) (*Game, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	g := &Game{
		options: options,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
		gen:     gen,
		ledger:  ledger.New(options.StartingBalance),
		phase:   playable.PhaseBetting,
		seats:   newSeats(options.AISeats),
	}

	g.newDeck = g.shuffledDeck
	return g, nil
}

// shuffledDeck returns a fresh deck, every round starts with one
func (g *Game) shuffledDeck() *deck.Deck {
	d := deck.New()
	d.Shuffle(g.gen)
	g.logger.WithField("deck", d.HashCode()).Debug("shuffled a fresh deck")
	return d
}

// Name returns the name of the game
func (g *Game) Name() string {
	return Name
}

// Phase returns the current phase
func (g *Game) Phase() playable.Phase {
	return g.phase
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Ledger returns the session's ledger
func (g *Game) Ledger() *ledger.Ledger {
	return g.ledger
}

type dealPayload struct {
	Amount int `json:"amount"`
}

// Action performs with a message
func (g *Game) Action(message *playable.PayloadIn) (*playable.Response, bool, error) {
	switch message.Action {
	case playable.ActionDeal:
		if !g.isIdle() {
			return nil, false, playable.InvalidActionError(message.Action, g.phase)
		}

		var payload dealPayload
		if err := message.AdditionalData.Decode(&payload); err != nil {
			return nil, false, fmt.Errorf("%w: %s", ledger.ErrInvalidBet, err)
		}

		if err := g.newRound(payload.Amount); err != nil {
			return nil, false, err
		}
	case playable.ActionCall:
		if g.phase != playable.PhasePlayerTurn {
			return nil, false, playable.InvalidActionError(message.Action, g.phase)
		}

		if err := g.call(); err != nil {
			return nil, false, err
		}
	case playable.ActionFold:
		if g.phase != playable.PhasePlayerTurn {
			return nil, false, playable.InvalidActionError(message.Action, g.phase)
		}

		g.fold()
	case playable.ActionRestart:
		if !g.isIdle() {
			return nil, false, playable.InvalidActionError(message.Action, g.phase)
		}

		g.ledger.Restart()
		g.lastResult = nil
		g.board = nil
		for _, seat := range g.seats {
			seat.reset()
		}

		g.phase = playable.PhaseBetting
		g.sendLogMessage(nil, "Game restarted with ${%d}", g.ledger.Balance())
	default:
		return nil, false, playable.InvalidActionError(message.Action, g.phase)
	}

	return playable.OK(message.Context), true, nil
}

func (g *Game) isIdle() bool {
	return g.phase == playable.PhaseBetting || g.phase == playable.PhaseSettlement
}

func (g *Game) player() *Seat {
	return g.seats[0]
}

// newRound antes for every seat and deals the hole cards from a fresh deck
func (g *Game) newRound(bet int) error {
	if bet > 0 && bet < g.options.MinBet {
		return fmt.Errorf("%w: the minimum bet is ${%d}", ledger.ErrInvalidBet, g.options.MinBet)
	}

	if _, err := g.ledger.PlaceBet(bet, "ante"); err != nil {
		return err
	}

	g.phase = playable.PhaseDealing
	g.deck = g.newDeck()
	g.board = make(deck.Hand, 0, 5)
	g.bet = bet
	g.pot = 0
	g.lastResult = nil

	for _, seat := range g.seats {
		seat.reset()
		seat.Contributed = bet
		g.pot += bet
	}

	for i := 0; i < 2; i++ {
		for _, seat := range g.seats {
			seat.Hole.AddCard(g.deck.MustDraw())
		}
	}

	g.street = StreetPreFlop
	g.logger.WithFields(logrus.Fields{
		"bet":  bet,
		"hole": g.player().Hole.String(),
	}).Debug("round started")
	g.sendLogMessage(g.player().Hole, "Ante ${%d}", bet)

	g.aiTurn()
	return nil
}

// call puts the player's bet in, then the next street is dealt
func (g *Game) call() error {
	if _, err := g.ledger.PlaceBet(g.bet, string(g.street)); err != nil {
		return err
	}

	for _, seat := range g.seats {
		if !seat.Folded {
			seat.Contributed += g.bet
			g.pot += g.bet
		}
	}

	g.nextStreet()
	return nil
}

func (g *Game) fold() {
	player := g.player()
	player.Folded = true
	staked := player.Contributed

	g.ledger.Settle(0)
	g.ledger.RecordLoss()
	g.lastResult = &RoundResult{
		Winners: []string{},
		Staked:  staked,
		Net:     -staked,
		Message: fmt.Sprintf("You folded and lost ${%d}", staked),
	}

	g.phase = playable.PhaseSettlement
	g.sendLogMessage(nil, "You fold")
}

func (g *Game) nextStreet() {
	switch g.street {
	case StreetPreFlop:
		g.street = StreetFlop
		g.dealBoard(3)
	case StreetFlop:
		g.street = StreetTurn
		g.dealBoard(1)
	case StreetTurn:
		g.street = StreetRiver
		g.dealBoard(1)
	case StreetRiver:
		g.street = StreetShowdown
		g.showdown()
		return
	}

	g.aiTurn()
}

func (g *Game) dealBoard(n int) {
	for i := 0; i < n; i++ {
		g.board.AddCard(g.deck.MustDraw())
	}

	g.sendLogMessage(g.board, "The %s", g.street)
}

// aiTurn lets every opponent still in decide whether to fold
// If every opponent folds, the player takes the pot
func (g *Game) aiTurn() {
	g.phase = playable.PhaseAITurn

	active := 0
	for _, seat := range g.seats[1:] {
		if seat.Folded {
			continue
		}

		if g.shouldFold(seat) {
			seat.Folded = true
			g.sendLogMessage(nil, "%s folds", seat.Name)
			continue
		}

		active++
	}

	if active == 0 {
		g.settle([]*Seat{g.player()}, "Everyone else folded")
		return
	}

	g.phase = playable.PhasePlayerTurn
}

func (g *Game) shouldFold(seat *Seat) bool {
	if g.options.AIFoldChance <= 0 {
		return false
	}

	if seat.analyze(g.board).Hand() != handanalyzer.HighCard {
		return false
	}

	return rng.Float64(g.gen) < g.options.AIFoldChance
}

// showdown compares every seat still in
func (g *Game) showdown() {
	best := -1
	for _, seat := range g.seats {
		if seat.Folded {
			continue
		}

		h := seat.analyze(g.board)
		seat.Strength = h.Strength()
		seat.Hand = h.Describe()
		if seat.Strength > best {
			best = seat.Strength
		}
	}

	winners := make([]*Seat, 0, len(g.seats))
	for _, seat := range g.seats {
		if !seat.Folded && seat.Strength == best {
			winners = append(winners, seat)
		}
	}

	g.settle(winners, winners[0].Hand)
}

// settle pays the pot to the winners, in seat order
func (g *Game) settle(winners []*Seat, hand string) {
	shares := splitPot(g.pot, len(winners))
	names := make([]string, len(winners))
	for i, seat := range winners {
		seat.Winner = true
		seat.Payout = shares[i]
		names[i] = seat.Name
	}

	player := g.player()
	result := &RoundResult{
		Winners: names,
		Hand:    hand,
		Staked:  player.Contributed,
		Payout:  player.Payout,
	}
	result.Net = result.Payout - result.Staked

	g.ledger.Settle(result.Payout)
	switch {
	case result.Net > 0:
		g.ledger.RecordWin(false)
	case result.Net < 0:
		g.ledger.RecordLoss()
	default:
		g.ledger.RecordPush()
	}

	switch {
	case player.Winner && len(winners) == 1:
		result.Message = fmt.Sprintf("You win ${%d}", result.Payout)
	case player.Winner:
		result.Message = fmt.Sprintf("Split pot. You get ${%d}", result.Payout)
	default:
		result.Message = fmt.Sprintf("%s wins", strings.Join(names, " and "))
	}

	g.lastResult = result
	g.phase = playable.PhaseSettlement

	g.logger.WithFields(logrus.Fields{
		"pot":     g.pot,
		"winners": names,
		"payout":  result.Payout,
		"balance": g.ledger.Balance(),
	}).Debug("round settled")
	g.sendLogMessage(nil, "%s (%s)", result.Message, hand)
}

func (g *Game) sendLogMessage(cards []*deck.Card, format string, a ...interface{}) {
	playable.SendLog(g.logChan, playable.SimpleLogMessage(cards, format, a...))
}
