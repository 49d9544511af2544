package roulette

import (
	"testing"
	"time"

	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// fixedGen always lands on the same wheel index
type fixedGen int

func (f fixedGen) Intn(n int) int {
	return int(f) % n
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestGame(t *testing.T, variant Variant, index int) (*Game, *testClock) {
	t.Helper()

	opts := DefaultOptions()
	opts.Variant = variant
	g, err := NewGame(logrus.StandardLogger(), fixedGen(index), opts)
	assert.NoError(t, err)

	clock := &testClock{now: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
	g.now = clock.Now
	return g, clock
}

func bet(g *Game, amount interface{}, target string) error {
	_, _, err := g.Action(&playable.PayloadIn{
		Action: playable.ActionBet,
		AdditionalData: playable.AdditionalData{
			"amount": amount,
			"target": target,
		},
	})
	return err
}

func act(g *Game, action playable.Action) error {
	_, _, err := g.Action(&playable.PayloadIn{Action: action})
	return err
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g, err := NewGame(logrus.StandardLogger(), fixedGen(0), DefaultOptions())
	a.NoError(err)
	a.Equal("American Roulette", g.Name())
	a.Len(g.wheel, 38)
	a.Equal(playable.PhaseBetting, g.Phase())
	a.Equal(100*time.Millisecond, g.Delay())

	opts := DefaultOptions()
	opts.Variant = VariantEuropean
	g, err = NewGame(logrus.StandardLogger(), fixedGen(0), opts)
	a.NoError(err)
	a.Equal("European Roulette", g.Name())
	a.Len(g.wheel, 37)

	opts.Variant = "french"
	g, err = NewGame(logrus.StandardLogger(), fixedGen(0), opts)
	a.Error(err)
	a.Nil(g)

	opts = DefaultOptions()
	opts.MinBet = 0
	_, err = NewGame(logrus.StandardLogger(), fixedGen(0), opts)
	a.EqualError(err, "min bet must be >= 1")
}

func TestGame_straightUpWin(t *testing.T) {
	a := assert.New(t)

	// index 8 on the european wheel is 17
	g, clock := newTestGame(t, VariantEuropean, 8)
	a.NoError(bet(g, float64(10), "17"))
	a.Equal(990, g.ledger.Balance())

	a.NoError(act(g, playable.ActionSpin))
	a.Equal(playable.PhaseSpinning, g.Phase())

	// nothing happens until the wheel stops
	updated, err := g.Tick()
	a.NoError(err)
	a.False(updated)
	a.Equal(playable.PhaseSpinning, g.Phase())

	clock.now = clock.now.Add(3 * time.Second)
	updated, err = g.Tick()
	a.NoError(err)
	a.True(updated)

	a.Equal(playable.PhaseSettlement, g.Phase())
	a.Equal(&SpinResult{
		Pocket: Pocket{Number: 17},
		Color:  Black,
		Staked: 10,
		Payout: 360,
		Net:    350,
	}, g.lastResult)
	a.Equal(1350, g.ledger.Balance())
	a.Empty(g.ledger.Wagers())
	a.Equal(ledger.Stats{Wins: 1}, g.ledger.Stats())
	a.Equal([]Pocket{{Number: 17}}, g.history)

	// settled games don't tick again
	updated, err = g.Tick()
	a.NoError(err)
	a.False(updated)
}

func TestGame_doubleZeroLosesOutsideBets(t *testing.T) {
	a := assert.New(t)

	// index 19 on the american wheel is 00
	g, clock := newTestGame(t, VariantAmerican, 19)
	a.NoError(bet(g, 50, TargetRed))
	a.NoError(bet(g, 50, TargetBlack))
	a.NoError(bet(g, 10, "00"))
	a.Equal(890, g.ledger.Balance())

	a.NoError(act(g, playable.ActionSpin))
	clock.now = clock.now.Add(time.Hour)
	_, err := g.Tick()
	a.NoError(err)

	a.Equal(Pocket{DoubleZero: true}, g.lastResult.Pocket)
	a.Equal(Green, g.lastResult.Color)
	a.Equal(360, g.lastResult.Payout)
	a.Equal(250, g.lastResult.Net)
	a.Equal(1250, g.ledger.Balance())
}

func TestGame_losingSpin(t *testing.T) {
	a := assert.New(t)

	// index 1 on the american wheel is 28
	g, clock := newTestGame(t, VariantAmerican, 1)
	a.NoError(bet(g, 100, TargetOdd))
	a.NoError(act(g, playable.ActionSpin))
	clock.now = clock.now.Add(3 * time.Second)
	_, _ = g.Tick()

	a.Equal(-100, g.lastResult.Net)
	a.Equal(900, g.ledger.Balance())
	a.Equal(1, g.ledger.Stats().Losses)

	// a new bet moves back to betting
	a.NoError(bet(g, 10, TargetEven))
	a.Equal(playable.PhaseBetting, g.Phase())
	a.Equal(890, g.ledger.Balance())
}

func TestGame_spinGuard(t *testing.T) {
	a := assert.New(t)

	g, _ := newTestGame(t, VariantAmerican, 0)
	a.ErrorIs(act(g, playable.ActionSpin), ErrNoBets)
	a.Equal(playable.PhaseBetting, g.Phase())

	a.NoError(bet(g, 10, TargetRed))
	a.NoError(act(g, playable.ActionSpin))

	a.ErrorIs(act(g, playable.ActionSpin), ErrSpinInProgress)
	a.ErrorIs(bet(g, 10, TargetBlack), ErrSpinInProgress)
	a.ErrorIs(act(g, playable.ActionClear), ErrSpinInProgress)
	a.ErrorIs(act(g, playable.ActionRestart), ErrSpinInProgress)
	a.Equal(990, g.ledger.Balance())
	a.Len(g.ledger.Wagers(), 1)
}

func TestGame_invalidBets(t *testing.T) {
	a := assert.New(t)

	g, _ := newTestGame(t, VariantEuropean, 0)
	a.ErrorIs(bet(g, 10, "00"), ledger.ErrInvalidBet)
	a.ErrorIs(bet(g, 10, "purple"), ledger.ErrInvalidBet)
	a.ErrorIs(bet(g, 10, "+5"), ledger.ErrInvalidBet)
	a.ErrorIs(bet(g, 10, "05"), ledger.ErrInvalidBet)
	a.ErrorIs(bet(g, 0, TargetRed), ledger.ErrInvalidBet)
	a.ErrorIs(bet(g, "ten", TargetRed), ledger.ErrInvalidBet)
	a.ErrorIs(bet(g, 1001, TargetRed), ledger.ErrInsufficientFunds)
	a.Equal(1000, g.ledger.Balance())
	a.Empty(g.ledger.Wagers())

	g.options.MinBet = 5
	err := bet(g, 2, TargetRed)
	a.ErrorIs(err, ledger.ErrInvalidBet)
	a.EqualError(err, "invalid bet: the minimum bet is ${5}")

	a.ErrorIs(act(g, playable.ActionHit), playable.ErrInvalidAction)
}

func TestGame_subjectTarget(t *testing.T) {
	a := assert.New(t)

	g, _ := newTestGame(t, VariantEuropean, 0)
	_, updateState, err := g.Action(&playable.PayloadIn{
		Action:         playable.ActionBet,
		Subject:        TargetColumn2,
		AdditionalData: playable.AdditionalData{"amount": 25},
	})
	a.NoError(err)
	a.True(updateState)
	a.Equal(TargetColumn2, g.ledger.Wagers()[0].Target)
}

func TestGame_clear(t *testing.T) {
	a := assert.New(t)

	g, _ := newTestGame(t, VariantAmerican, 0)
	a.NoError(bet(g, 10, TargetRed))
	a.NoError(bet(g, 20, "7"))
	a.Equal(970, g.ledger.Balance())

	a.NoError(act(g, playable.ActionClear))
	a.Equal(1000, g.ledger.Balance())
	a.Empty(g.ledger.Wagers())
	a.ErrorIs(act(g, playable.ActionSpin), ErrNoBets)
}

func TestGame_restart(t *testing.T) {
	a := assert.New(t)

	g, clock := newTestGame(t, VariantAmerican, 1)
	a.NoError(bet(g, 500, TargetOdd))
	a.NoError(act(g, playable.ActionSpin))
	clock.now = clock.now.Add(3 * time.Second)
	_, _ = g.Tick()
	a.Equal(500, g.ledger.Balance())

	a.NoError(act(g, playable.ActionRestart))
	a.Equal(1000, g.ledger.Balance())
	a.Equal(ledger.Stats{}, g.ledger.Stats())
	a.Nil(g.lastResult)
	a.Empty(g.history)
}

func TestGame_GetState(t *testing.T) {
	a := assert.New(t)

	g, _ := newTestGame(t, VariantAmerican, 0)
	a.NoError(bet(g, 10, TargetRed))

	res := g.GetState()
	a.Equal("game", res.Key)
	a.Equal("roulette", res.Value)

	state := res.Data.(*State)
	a.Equal(playable.PhaseBetting, state.Phase)
	a.Equal(VariantAmerican, state.Variant)
	a.Equal(990, state.Balance)
	a.Equal(10, state.Staked)
	a.Len(state.Wagers, 1)
	a.Equal(OutsideTargets, state.Targets)
	a.Nil(state.LastResult)
}

func TestGame_historyIsCapped(t *testing.T) {
	a := assert.New(t)

	g, clock := newTestGame(t, VariantAmerican, 0)
	for i := 0; i < 12; i++ {
		a.NoError(bet(g, 1, TargetRed))
		a.NoError(act(g, playable.ActionSpin))
		clock.now = clock.now.Add(3 * time.Second)
		_, err := g.Tick()
		a.NoError(err)
	}

	a.Len(g.history, 10)
	a.Equal(988, g.ledger.Balance())
}
