package blackjack

import (
	"testing"

	"cardtable-server/internal/rng"
	"cardtable-server/pkg/deck"
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestGame(t *testing.T, cards string, opts ...Options) *Game {
	t.Helper()

	options := DefaultOptions()
	if len(opts) == 1 {
		options = opts[0]
	}

	g, err := NewGame(logrus.StandardLogger(), rng.NewSeeded(1), options)
	assert.NoError(t, err)

	if cards != "" {
		g.deck.Cards = stackDeck(cards)
	}

	return g
}

// stackDeck puts cards on top of an otherwise ordered deck
func stackDeck(cards string) []*deck.Card {
	top := deck.CardsFromString(cards)
	stacked := append([]*deck.Card{}, top...)
	for _, card := range deck.Build() {
		if !deck.Hand(top).HasCard(card) {
			stacked = append(stacked, card)
		}
	}

	return stacked
}

func deal(g *Game, amount interface{}) error {
	_, _, err := g.Action(&playable.PayloadIn{
		Action:         playable.ActionDeal,
		AdditionalData: playable.AdditionalData{"amount": amount},
	})
	return err
}

func act(g *Game, action playable.Action) error {
	_, _, err := g.Action(&playable.PayloadIn{Action: action})
	return err
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g, err := NewGame(logrus.StandardLogger(), rng.NewSeeded(1), DefaultOptions())
	a.NoError(err)
	a.Equal("Blackjack", g.Name())
	a.Equal(playable.PhaseBetting, g.Phase())
	a.Equal(1000, g.Ledger().Balance())
	a.Equal(deck.Size, g.deck.CardsLeft())

	opts := DefaultOptions()
	opts.MaxHands = 0
	g, err = NewGame(logrus.StandardLogger(), rng.NewSeeded(1), opts)
	a.EqualError(err, "max hands must be >= 1")
	a.Nil(g)

	opts = DefaultOptions()
	opts.StartingBalance = 0
	_, err = NewGame(logrus.StandardLogger(), rng.NewSeeded(1), opts)
	a.EqualError(err, "starting balance must be > 0")
}

func TestGame_natural(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "14s,13h,9c,8d")
	a.NoError(deal(g, float64(10)))

	a.Equal(playable.PhaseSettlement, g.Phase())
	a.Equal([]Outcome{OutcomeBlackjack}, g.lastResult.Outcomes)
	a.Equal(25, g.lastResult.Payout)
	a.Equal(15, g.lastResult.Net)
	a.Equal(1015, g.ledger.Balance())
	a.Equal(ledger.Stats{Wins: 1, Blackjacks: 1}, g.ledger.Stats())
	a.Len(g.dealerHistory, 1)
	a.Empty(g.ledger.Wagers())
}

func TestGame_push(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "13s,12h,10c,13d")
	a.NoError(deal(g, 10))
	a.Equal(playable.PhasePlayerTurn, g.Phase())
	a.Equal(990, g.ledger.Balance())

	a.NoError(act(g, playable.ActionStand))
	a.Equal(playable.PhaseSettlement, g.Phase())
	a.Equal([]Outcome{OutcomePush}, g.lastResult.Outcomes)
	a.Equal(1000, g.ledger.Balance())
	a.Equal(1, g.ledger.Stats().Pushes)
	a.Equal("Push", g.lastResult.Message)
}

func TestGame_dealerHitsSoft17(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "10s,8h,14c,6d,4c")
	a.NoError(deal(g, 10))
	a.NoError(act(g, playable.ActionStand))

	a.Len(g.dealer, 3)
	a.Equal(21, NewScore(g.dealer).Total)
	a.Equal([]Outcome{OutcomeLose}, g.lastResult.Outcomes)
	a.Equal(990, g.ledger.Balance())
	a.Equal(1, g.ledger.Stats().Losses)
}

func TestGame_bust(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "10s,6h,10c,7d,10h")
	a.NoError(deal(g, 10))
	a.NoError(act(g, playable.ActionHit))

	a.Equal(playable.PhaseSettlement, g.Phase())
	a.True(g.hands[0].Score().Bust)
	a.Equal([]Outcome{OutcomeLose}, g.lastResult.Outcomes)
	a.Equal(990, g.ledger.Balance())
}

func TestGame_hitTo21Stands(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "10s,6h,10c,7d,5h")
	a.NoError(deal(g, 10))
	a.NoError(act(g, playable.ActionHit))

	a.Equal(playable.PhaseSettlement, g.Phase())
	a.Equal([]Outcome{OutcomeWin}, g.lastResult.Outcomes)
	a.Equal(1010, g.ledger.Balance())
}

func TestGame_double(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "5s,6h,10c,7d,10h")
	a.NoError(deal(g, 10))
	a.NoError(act(g, playable.ActionDouble))

	a.Equal(playable.PhaseSettlement, g.Phase())
	a.True(g.hands[0].Doubled)
	a.Equal(20, g.hands[0].Bet)
	a.Len(g.hands[0].Cards, 3)
	a.Equal(1020, g.ledger.Balance())

	// only two card hands can double
	g = newTestGame(t, "2s,3h,10c,7d,2c")
	a.NoError(deal(g, 10))
	a.NoError(act(g, playable.ActionHit))
	a.EqualError(act(g, playable.ActionDouble), "you can only double on your first two cards")
}

func TestGame_doubleInsufficientFunds(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.StartingBalance = 15
	g := newTestGame(t, "5s,6h,10c,7d,10h", opts)
	a.NoError(deal(g, 10))

	err := act(g, playable.ActionDouble)
	a.ErrorIs(err, ledger.ErrInsufficientFunds)
	a.Equal(5, g.ledger.Balance())
	a.Equal(10, g.hands[0].Bet)
	a.Len(g.hands[0].Cards, 2)
	a.Equal(playable.PhasePlayerTurn, g.Phase())
	a.NotContains(g.availableActions(), playable.ActionDouble)
}

func TestGame_split(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "8s,8h,10c,7d,3c,10h")
	a.NoError(deal(g, 10))
	a.Contains(g.availableActions(), playable.ActionSplit)
	a.NoError(act(g, playable.ActionSplit))

	a.Len(g.hands, 2)
	a.Equal(980, g.ledger.Balance())
	a.Equal("8s,3c", g.hands[0].Cards.String())
	a.Equal("8h,10h", g.hands[1].Cards.String())
	a.Equal(0, g.handIndex)

	a.NoError(act(g, playable.ActionStand))
	a.Equal(1, g.handIndex)
	a.Equal(playable.PhasePlayerTurn, g.Phase())

	a.NoError(act(g, playable.ActionStand))
	a.Equal(playable.PhaseSettlement, g.Phase())
	a.Equal([]Outcome{OutcomeLose, OutcomeWin}, g.lastResult.Outcomes)
	a.Equal(20, g.lastResult.Payout)
	a.Equal(0, g.lastResult.Net)
	a.Equal(1000, g.ledger.Balance())
	a.Equal(ledger.Stats{Wins: 1, Losses: 1}, g.ledger.Stats())
}

func TestGame_splitTwentyOneIsNotNatural(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "14s,14h,10c,7d,13c,12h")
	a.NoError(deal(g, 10))
	a.NoError(act(g, playable.ActionSplit))

	a.Equal(playable.PhaseSettlement, g.Phase())
	a.Equal([]Outcome{OutcomeWin, OutcomeWin}, g.lastResult.Outcomes)
	a.Equal(1020, g.ledger.Balance())
	a.Equal(0, g.ledger.Stats().Blackjacks)
	a.Equal("You win ${20}", g.lastResult.Message)
}

func TestGame_splitLimits(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.MaxHands = 2
	g := newTestGame(t, "8s,8h,10c,7d,8c,8d", opts)
	a.NoError(deal(g, 10))
	a.NoError(act(g, playable.ActionSplit))
	a.Equal("8s,8c", g.hands[0].Cards.String())
	a.NotContains(g.availableActions(), playable.ActionSplit)
	a.EqualError(act(g, playable.ActionSplit), "you cannot split into more than 2 hands")

	g = newTestGame(t, "8s,9h,10c,7d")
	a.NoError(deal(g, 10))
	a.EqualError(act(g, playable.ActionSplit), "you can only split a pair")
	a.Len(g.hands, 1)
}

func TestGame_invalidActions(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "10s,6h,10c,7d")
	err := act(g, playable.ActionHit)
	a.ErrorIs(err, playable.ErrInvalidAction)
	a.EqualError(err, "invalid action: cannot hit during betting")
	a.ErrorIs(act(g, playable.ActionSpin), playable.ErrInvalidAction)

	a.NoError(deal(g, 10))
	a.ErrorIs(deal(g, 10), playable.ErrInvalidAction)
	a.ErrorIs(act(g, playable.ActionRestart), playable.ErrInvalidAction)
	a.Equal(990, g.ledger.Balance())
}

func TestGame_invalidBets(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "")
	a.ErrorIs(deal(g, 0), ledger.ErrInvalidBet)
	a.ErrorIs(deal(g, -5), ledger.ErrInvalidBet)
	a.ErrorIs(deal(g, "lots"), ledger.ErrInvalidBet)
	a.ErrorIs(deal(g, 1001), ledger.ErrInsufficientFunds)

	g.options.MinBet = 5
	a.EqualError(deal(g, 4), "invalid bet: the minimum bet is ${5}")

	a.Equal(playable.PhaseBetting, g.Phase())
	a.Equal(1000, g.ledger.Balance())
	a.Equal(deck.Size, g.deck.CardsLeft())
	a.Nil(g.hands)
}

func TestGame_reshuffleBetweenRounds(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "")
	g.deck.Cards = deck.Build()[:14]
	a.NoError(deal(g, 10))
	a.Equal(deck.Size-4, g.deck.CardsLeft())

	g = newTestGame(t, "")
	g.deck.Cards = deck.Build()[:15]
	a.NoError(deal(g, 10))
	a.Equal(11, g.deck.CardsLeft())
}

func TestGame_emptyDeckAbortsRound(t *testing.T) {
	tests := []struct {
		name   string
		cards  string
		action playable.Action
	}{
		{"hit", "10s,6h,10c,7d", playable.ActionHit},
		{"double", "5s,6h,10c,7d", playable.ActionDouble},
		{"split", "8s,8h,10c,7d", playable.ActionSplit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assert.New(t)

			opts := DefaultOptions()
			opts.ReshuffleAt = 4
			g := newTestGame(t, "", opts)
			g.deck.Cards = deck.CardsFromString(tt.cards)
			a.NoError(deal(g, 10))
			a.Equal(0, g.deck.CardsLeft())

			err := act(g, tt.action)
			a.ErrorIs(err, deck.ErrEmptyDeck)
			a.Equal(playable.PhaseBetting, g.Phase())
			a.Equal(1000, g.ledger.Balance())
			a.Empty(g.ledger.Wagers())
			a.Nil(g.hands)
			a.Equal(deck.Size, g.deck.CardsLeft())
		})
	}
}

func TestGame_restart(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "10s,6h,10c,7d,10h")
	a.NoError(deal(g, 100))
	a.NoError(act(g, playable.ActionHit))
	a.Equal(900, g.ledger.Balance())

	a.NoError(act(g, playable.ActionRestart))
	a.Equal(1000, g.ledger.Balance())
	a.Equal(ledger.Stats{}, g.ledger.Stats())
	a.Equal(playable.PhaseBetting, g.Phase())
	a.Nil(g.lastResult)
	a.Empty(g.dealerHistory)
}

func TestGame_GetState(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "13s,12h,10c,13d")
	res := g.GetState()
	a.Equal("game", res.Key)
	a.Equal("blackjack", res.Value)

	state := res.Data.(*State)
	a.Equal(playable.PhaseBetting, state.Phase)
	a.Equal([]int{10, 50, 100}, state.BetPresets)
	a.Equal([]playable.Action{playable.ActionDeal, playable.ActionRestart}, state.AvailableActions)
	a.Empty(state.Dealer.Cards)

	a.NoError(deal(g, 10))
	state = g.GetState().Data.(*State)
	a.Len(state.Dealer.Cards, 2)
	a.Nil(state.Dealer.Cards[1], "hole card is hidden")
	a.Nil(state.Dealer.Score)
	a.Equal(20, state.Hands[0].Score.Total)
	a.Equal([]playable.Action{playable.ActionHit, playable.ActionStand, playable.ActionDouble}, state.AvailableActions)

	a.NoError(act(g, playable.ActionStand))
	state = g.GetState().Data.(*State)
	a.Equal(20, state.Dealer.Score.Total)
	a.Equal("10♣", state.Dealer.Cards[0].String())
	a.Equal(1000, state.Balance)
	a.Len(state.DealerHistory, 1)
}

func TestGame_logs(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, "13s,12h,10c,13d")
	a.NoError(deal(g, 10))

	select {
	case msgs := <-g.LogChan():
		a.Equal("Bet ${10}", msgs[0].Message)
		a.Len(msgs[0].Cards, 2)
	default:
		a.Fail("expected a log message")
	}
}
