package holdem

import (
	"cardtable-server/pkg/deck"
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
)

// Key is the key used in state responses
const Key = "texas-hold-em"

// State is the state of the game as seen by the player
type State struct {
	Phase      playable.Phase `json:"phase"`
	Street     Street         `json:"street"`
	Balance    int            `json:"balance"`
	BetPresets []int          `json:"betPresets"`
	Stats      ledger.Stats   `json:"stats"`

	Bet   int          `json:"bet"`
	Pot   int          `json:"pot"`
	Board deck.Hand    `json:"board"`
	Seats []*seatState `json:"seats"`

	AvailableActions []playable.Action `json:"availableActions"`
	LastResult       *RoundResult      `json:"lastResult"`
}

type seatState struct {
	*Seat
	// Hole shadows the seat's cards so opponents' cards stay hidden until showdown
	Hole deck.Hand `json:"hole"`
}

// GetState returns the current state of the game
func (g *Game) GetState() *playable.Response {
	seats := make([]*seatState, len(g.seats))
	for i, seat := range g.seats {
		ss := &seatState{Seat: seat, Hole: seat.Hole}
		if !seat.IsPlayer && !g.revealed(seat) {
			ss.Hole = make(deck.Hand, len(seat.Hole))
		}

		seats[i] = ss
	}

	board := g.board
	if board == nil {
		board = deck.Hand{}
	}

	return &playable.Response{
		Key:   "game",
		Value: Key,
		Data: &State{
			Phase:            g.phase,
			Street:           g.street,
			Balance:          g.ledger.Balance(),
			BetPresets:       g.options.BetPresets,
			Stats:            g.ledger.Stats(),
			Bet:              g.bet,
			Pot:              g.pot,
			Board:            board,
			Seats:            seats,
			AvailableActions: g.availableActions(),
			LastResult:       g.lastResult,
		},
	}
}

// revealed returns true if the opponent's hole cards can be shown
func (g *Game) revealed(seat *Seat) bool {
	return g.street == StreetShowdown && !seat.Folded
}

func (g *Game) availableActions() []playable.Action {
	if g.isIdle() {
		return []playable.Action{playable.ActionDeal, playable.ActionRestart}
	}

	if g.phase != playable.PhasePlayerTurn {
		return []playable.Action{}
	}

	if g.ledger.CanAfford(g.bet) {
		return []playable.Action{playable.ActionCall, playable.ActionFold}
	}

	return []playable.Action{playable.ActionFold}
}
