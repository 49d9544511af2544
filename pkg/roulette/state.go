package roulette

import (
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
)

// Key is the key used in state responses
const Key = "roulette"

// State is the state of the game as seen by the player
type State struct {
	Phase      playable.Phase `json:"phase"`
	Variant    Variant        `json:"variant"`
	Balance    int            `json:"balance"`
	BetPresets []int          `json:"betPresets"`
	Stats      ledger.Stats   `json:"stats"`
	Wagers     []ledger.Wager `json:"wagers"`
	Staked     int            `json:"staked"`
	Targets    []string       `json:"targets"`
	LastResult *SpinResult    `json:"lastResult"`
	History    []Pocket       `json:"history"`
}

// GetState returns the current state of the game
func (g *Game) GetState() *playable.Response {
	return &playable.Response{
		Key:   "game",
		Value: Key,
		Data: &State{
			Phase:      g.phase,
			Variant:    g.options.Variant,
			Balance:    g.ledger.Balance(),
			BetPresets: g.options.BetPresets,
			Stats:      g.ledger.Stats(),
			Wagers:     g.ledger.Wagers(),
			Staked:     g.ledger.Staked(),
			Targets:    OutsideTargets,
			LastResult: g.lastResult,
			History:    g.history,
		},
	}
}
