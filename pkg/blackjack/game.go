package blackjack

import (
	"errors"
	"fmt"

	"cardtable-server/internal/rng"
	"cardtable-server/pkg/deck"
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
	"github.com/sirupsen/logrus"
)

// Name is the name of the game
const Name = "Blackjack"

// Game is a single seat blackjack session against the house
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
	gen     rng.Generator

	deck   *deck.Deck
	ledger *ledger.Ledger
	phase  playable.Phase

	hands      []*PlayerHand
	handIndex  int
	dealer     deck.Hand
	lastResult *RoundResult
	// dealerHistory holds the dealer's final hand of each finished round, most recent first
	dealerHistory []deck.Hand
}

// RoundResult is the outcome of the last finished round
type RoundResult struct {
	Outcomes []Outcome `json:"outcomes"`
	Payout   int       `json:"payout"`
	Net      int       `json:"net"`
	Message  string    `json:"message"`
}

const maxDealerHistory = 10

// NewGame returns a new blackjack session
func NewGame(logger logrus.FieldLogger, gen rng.Generator, options Options) (*Game, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	d := deck.New()
	d.Shuffle(gen)

	return &Game{
		options: options,
		logger:  logger,
		logChan: make(chan []*playable.LogMessage, 256),
		gen:     gen,
		deck:    d,
		ledger:  ledger.New(options.StartingBalance),
		phase:   playable.PhaseBetting,
	}, nil
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

		return playable.OK(message.Context), true, nil
	case playable.ActionRestart:
		if !g.isIdle() {
			return nil, false, playable.InvalidActionError(message.Action, g.phase)
		}

		g.restart()
		return playable.OK(message.Context), true, nil
	case playable.ActionHit, playable.ActionStand, playable.ActionDouble, playable.ActionSplit:
		if g.phase != playable.PhasePlayerTurn {
			return nil, false, playable.InvalidActionError(message.Action, g.phase)
		}

		if err := g.playerAction(message.Action); err != nil {
			return nil, false, err
		}

		return playable.OK(message.Context), true, nil
	}

	return nil, false, playable.InvalidActionError(message.Action, g.phase)
}

// isIdle returns true if a new round can begin
func (g *Game) isIdle() bool {
	return g.phase == playable.PhaseBetting || g.phase == playable.PhaseSettlement
}

func (g *Game) restart() {
	g.ledger.Restart()
	g.deck.Rebuild(g.gen)
	g.hands = nil
	g.handIndex = 0
	g.dealer = nil
	g.lastResult = nil
	g.dealerHistory = nil
	g.phase = playable.PhaseBetting
	g.sendLogMessage(nil, "Game restarted with ${%d}", g.ledger.Balance())
}

// newRound takes the bet and deals the opening cards
func (g *Game) newRound(bet int) error {
	if bet > 0 && bet < g.options.MinBet {
		return fmt.Errorf("%w: the minimum bet is ${%d}", ledger.ErrInvalidBet, g.options.MinBet)
	}

	if _, err := g.ledger.PlaceBet(bet, "hand"); err != nil {
		return err
	}

	if !g.deck.CanDraw(g.options.ReshuffleAt) {
		g.deck.Rebuild(g.gen)
		g.logger.WithField("deck", g.deck.HashCode()).Debug("deck reshuffled")
		g.sendLogMessage(nil, "Deck reshuffled")
	}

	g.phase = playable.PhaseDealing
	g.lastResult = nil
	g.handIndex = 0
	g.hands = []*PlayerHand{newPlayerHand(bet)}
	g.dealer = make(deck.Hand, 0, 4)

	hand := g.hands[0]
	for i := 0; i < 2; i++ {
		if err := g.drawTo(&hand.Cards); err != nil {
			return err
		}
	}

	for i := 0; i < 2; i++ {
		if err := g.drawTo(&g.dealer); err != nil {
			return err
		}
	}

	g.logger.WithFields(logrus.Fields{
		"bet":   bet,
		"cards": hand.Cards.String(),
	}).Debug("round started")
	g.sendLogMessage(hand.Cards, "Bet ${%d}", bet)

	g.phase = playable.PhasePlayerTurn
	if hand.Score().Blackjack {
		hand.Stood = true
		return g.advance()
	}

	return nil
}

func (g *Game) playerAction(action playable.Action) error {
	hand := g.hands[g.handIndex]

	switch action {
	case playable.ActionHit:
		if err := g.drawTo(&hand.Cards); err != nil {
			return err
		}

		card := hand.Cards.LastCard()
		if hand.Score().Bust {
			g.sendLogMessage([]*deck.Card{card}, "Hand %d draws %s and busts", g.handIndex+1, card)
		} else {
			g.sendLogMessage([]*deck.Card{card}, "Hand %d draws %s", g.handIndex+1, card)
		}
	case playable.ActionStand:
		hand.Stood = true
	case playable.ActionDouble:
		if !hand.canDouble() {
			return errors.New("you can only double on your first two cards")
		}

		if _, err := g.ledger.PlaceBet(hand.Bet, "double"); err != nil {
			return err
		}

		hand.Bet *= 2
		hand.Doubled = true
		if err := g.drawTo(&hand.Cards); err != nil {
			return err
		}

		hand.Stood = true
		g.sendLogMessage(hand.Cards, "Doubled down for ${%d}", hand.Bet)
	case playable.ActionSplit:
		if !hand.canSplit() {
			return errors.New("you can only split a pair")
		}

		if len(g.hands) >= g.options.MaxHands {
			return fmt.Errorf("you cannot split into more than %d hands", g.options.MaxHands)
		}

		if _, err := g.ledger.PlaceBet(hand.Bet, "split"); err != nil {
			return err
		}

		split := newPlayerHand(hand.Bet)
		split.IsSplit = true
		split.Cards.AddCard(hand.Cards[1])
		hand.Cards = hand.Cards[:1]
		hand.IsSplit = true

		if err := g.drawTo(&hand.Cards); err != nil {
			return err
		}

		if err := g.drawTo(&split.Cards); err != nil {
			return err
		}

		g.hands = append(g.hands, nil)
		copy(g.hands[g.handIndex+2:], g.hands[g.handIndex+1:])
		g.hands[g.handIndex+1] = split
		g.sendLogMessage(nil, "Split into %d hands", len(g.hands))
	}

	if hand.isDone() {
		return g.advance()
	}

	return nil
}

// advance moves to the next unfinished hand, or plays out the dealer when none remain
func (g *Game) advance() error {
	for g.handIndex < len(g.hands) && g.hands[g.handIndex].isDone() {
		g.handIndex++
	}

	if g.handIndex < len(g.hands) {
		return nil
	}

	g.handIndex = len(g.hands) - 1
	g.phase = playable.PhaseDealerTurn
	for DealerShouldHit(NewScore(g.dealer)) {
		if err := g.drawTo(&g.dealer); err != nil {
			return err
		}
	}

	g.settle()
	return nil
}

func (g *Game) settle() {
	dealerScore := NewScore(g.dealer)
	result := &RoundResult{
		Outcomes: make([]Outcome, len(g.hands)),
	}

	staked := 0
	for i, hand := range g.hands {
		outcome := Resolve(hand.Score(), dealerScore)
		hand.Outcome = outcome
		result.Outcomes[i] = outcome
		result.Payout += Payout(outcome, hand.Bet)
		staked += hand.Bet

		switch outcome {
		case OutcomeWin, OutcomeBlackjack:
			g.ledger.RecordWin(outcome == OutcomeBlackjack)
		case OutcomePush:
			g.ledger.RecordPush()
		case OutcomeLose:
			g.ledger.RecordLoss()
		}
	}

	g.ledger.Settle(result.Payout)
	result.Net = result.Payout - staked
	result.Message = resultMessage(result)

	g.lastResult = result
	g.dealerHistory = append([]deck.Hand{g.dealer.Clone()}, g.dealerHistory...)
	if len(g.dealerHistory) > maxDealerHistory {
		g.dealerHistory = g.dealerHistory[:maxDealerHistory]
	}

	g.phase = playable.PhaseSettlement

	g.logger.WithFields(logrus.Fields{
		"dealer":  dealerScore.Total,
		"payout":  result.Payout,
		"net":     result.Net,
		"balance": g.ledger.Balance(),
	}).Debug("round settled")
	g.sendLogMessage(g.dealer, "Dealer has %s. %s", dealerScore, result.Message)
}

func resultMessage(result *RoundResult) string {
	if len(result.Outcomes) == 1 {
		return result.Outcomes[0].Message()
	}

	switch {
	case result.Net > 0:
		return fmt.Sprintf("You win ${%d}", result.Net)
	case result.Net < 0:
		return fmt.Sprintf("You lose ${%d}", -result.Net)
	}

	return "Push"
}

// drawTo draws a card onto the hand
// An empty deck aborts the round and refunds every stake
func (g *Game) drawTo(hand *deck.Hand) error {
	card, err := g.deck.Draw()
	if err != nil {
		g.abortRound()
		return err
	}

	hand.AddCard(card)
	return nil
}

func (g *Game) abortRound() {
	// the ledger holds every stake, including a split or double taken before the failed draw
	refund := g.ledger.Clear()
	g.deck.Rebuild(g.gen)
	g.hands = nil
	g.handIndex = 0
	g.dealer = nil
	g.phase = playable.PhaseBetting

	g.logger.WithField("refund", refund).Warn("deck ran out mid-round, round aborted")
	g.sendLogMessage(nil, "Deck ran out. Round cancelled and ${%d} refunded", refund)
}

func (g *Game) sendLogMessage(cards []*deck.Card, format string, a ...interface{}) {
	playable.SendLog(g.logChan, playable.SimpleLogMessage(cards, format, a...))
}
