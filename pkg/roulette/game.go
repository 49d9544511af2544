package roulette

import (
	"errors"
	"fmt"
	"time"

	"cardtable-server/internal/rng"
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
	"github.com/sirupsen/logrus"
)

// ErrSpinInProgress is returned when the wheel is spinning
var ErrSpinInProgress = errors.New("the wheel is already spinning")

// ErrNoBets is returned when spinning without any bets on the table
var ErrNoBets = errors.New("place a bet before spinning")

const (
	maxHistory   = 10
	tickInterval = 100 * time.Millisecond
)

// Game is a single seat roulette session
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
	gen     rng.Generator
	now     func() time.Time

	wheel      []Pocket
	ledger     *ledger.Ledger
	phase      playable.Phase
	spinEndsAt time.Time
	lastResult *SpinResult
	// history holds the most recent pockets first
	history []Pocket
}

// SpinResult is the outcome of a spin
type SpinResult struct {
	Pocket Pocket `json:"pocket"`
	Color  Color  `json:"color"`
	Staked int    `json:"staked"`
	Payout int    `json:"payout"`
	Net    int    `json:"net"`
}

// NewGame returns a new roulette session
func NewGame(logger logrus.FieldLogger, gen rng.Generator, options Options) (*Game, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	wheel, err := BuildWheel(options.Variant)
	if err != nil {
		return nil, err
	}

	return &Game{
		options: options,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
		gen:     gen,
		now:     time.Now,
		wheel:   wheel,
		ledger:  ledger.New(options.StartingBalance),
		phase:   playable.PhaseBetting,
	}, nil
}

// NameFromOptions returns the name for the options
func NameFromOptions(opts Options) string {
	if opts.Variant == VariantEuropean {
		return "European Roulette"
	}

	return "American Roulette"
}

// Name returns the name of the game
func (g *Game) Name() string {
	return NameFromOptions(g.options)
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

type betPayload struct {
	Amount int    `json:"amount"`
	Target string `json:"target"`
}

// Action performs with a message
func (g *Game) Action(message *playable.PayloadIn) (*playable.Response, bool, error) {
	switch message.Action {
	case playable.ActionBet, playable.ActionClear, playable.ActionSpin, playable.ActionRestart:
	default:
		return nil, false, playable.InvalidActionError(message.Action, g.phase)
	}

	if g.phase == playable.PhaseSpinning {
		return nil, false, ErrSpinInProgress
	}

	switch message.Action {
	case playable.ActionBet:
		var payload betPayload
		if err := message.AdditionalData.Decode(&payload); err != nil {
			return nil, false, fmt.Errorf("%w: %s", ledger.ErrInvalidBet, err)
		}

		if payload.Target == "" {
			payload.Target = message.Subject
		}

		if err := g.placeBet(payload.Amount, payload.Target); err != nil {
			return nil, false, err
		}
	case playable.ActionClear:
		refund := g.ledger.Clear()
		if refund > 0 {
			g.sendLogMessage("Bets cleared. ${%d} returned", refund)
		}
	case playable.ActionSpin:
		if err := g.spin(); err != nil {
			return nil, false, err
		}
	case playable.ActionRestart:
		g.ledger.Restart()
		g.history = nil
		g.lastResult = nil
		g.phase = playable.PhaseBetting
		g.sendLogMessage("Game restarted with ${%d}", g.ledger.Balance())
	}

	return playable.OK(message.Context), true, nil
}

func (g *Game) placeBet(amount int, target string) error {
	if err := ValidateTarget(target, g.options.Variant); err != nil {
		return err
	}

	if amount > 0 && amount < g.options.MinBet {
		return fmt.Errorf("%w: the minimum bet is ${%d}", ledger.ErrInvalidBet, g.options.MinBet)
	}

	if _, err := g.ledger.PlaceBet(amount, target); err != nil {
		return err
	}

	g.phase = playable.PhaseBetting
	return nil
}

func (g *Game) spin() error {
	if len(g.ledger.Wagers()) == 0 {
		return ErrNoBets
	}

	g.phase = playable.PhaseSpinning
	g.spinEndsAt = g.now().Add(g.options.SpinDuration)
	g.sendLogMessage("Spinning with ${%d} on the table", g.ledger.Staked())
	return nil
}

// Delay is how often the game should be ticked
func (g *Game) Delay() time.Duration {
	return tickInterval
}

// Tick settles the spin once the wheel has stopped
func (g *Game) Tick() (bool, error) {
	if g.phase != playable.PhaseSpinning || g.now().Before(g.spinEndsAt) {
		return false, nil
	}

	g.resolve()
	return true, nil
}

func (g *Game) resolve() {
	pocket := g.wheel[g.gen.Intn(len(g.wheel))]
	wagers := g.ledger.Wagers()
	result := &SpinResult{
		Pocket: pocket,
		Color:  pocket.Color(),
		Staked: g.ledger.Staked(),
		Payout: Settle(pocket, wagers),
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

	g.lastResult = result
	g.history = append([]Pocket{pocket}, g.history...)
	if len(g.history) > maxHistory {
		g.history = g.history[:maxHistory]
	}

	g.phase = playable.PhaseSettlement

	g.logger.WithFields(logrus.Fields{
		"pocket":  pocket.String(),
		"wagers":  len(wagers),
		"payout":  result.Payout,
		"balance": g.ledger.Balance(),
	}).Debug("spin settled")

	if result.Payout > 0 {
		g.sendLogMessage("%s %s. You win ${%d}", pocket, pocket.Color(), result.Payout)
	} else {
		g.sendLogMessage("%s %s. No winning bets", pocket, pocket.Color())
	}
}

func (g *Game) sendLogMessage(format string, a ...interface{}) {
	playable.SendLog(g.logChan, playable.SimpleLogMessage(nil, format, a...))
}
