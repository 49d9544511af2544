package blackjack

import (
	"cardtable-server/pkg/deck"
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
)

// Key is the key used in state responses
const Key = "blackjack"

// State is the state of the game as seen by the player
type State struct {
	Phase      playable.Phase `json:"phase"`
	Balance    int            `json:"balance"`
	BetPresets []int          `json:"betPresets"`
	Stats      ledger.Stats   `json:"stats"`

	Hands     []*handState `json:"hands"`
	HandIndex int          `json:"handIndex"`
	Dealer    dealerState  `json:"dealer"`

	AvailableActions []playable.Action `json:"availableActions"`
	LastResult       *RoundResult      `json:"lastResult"`
	DealerHistory    []deck.Hand       `json:"dealerHistory"`
	CardsLeft        int               `json:"cardsLeft"`
}

type handState struct {
	*PlayerHand
	Score Score `json:"score"`
}

type dealerState struct {
	Cards deck.Hand `json:"cards"`
	// Score is nil while the hole card is hidden
	Score *Score `json:"score"`
}

// GetState returns the current state of the game
func (g *Game) GetState() *playable.Response {
	return &playable.Response{
		Key:   "game",
		Value: Key,
		Data:  g.state(),
	}
}

func (g *Game) state() *State {
	hands := make([]*handState, len(g.hands))
	for i, h := range g.hands {
		hands[i] = &handState{
			PlayerHand: h,
			Score:      h.Score(),
		}
	}

	return &State{
		Phase:            g.phase,
		Balance:          g.ledger.Balance(),
		BetPresets:       g.options.BetPresets,
		Stats:            g.ledger.Stats(),
		Hands:            hands,
		HandIndex:        g.handIndex,
		Dealer:           g.dealerState(),
		AvailableActions: g.availableActions(),
		LastResult:       g.lastResult,
		DealerHistory:    g.dealerHistory,
		CardsLeft:        g.deck.CardsLeft(),
	}
}

func (g *Game) dealerState() dealerState {
	if len(g.dealer) == 0 {
		return dealerState{Cards: deck.Hand{}}
	}

	if g.phase == playable.PhasePlayerTurn {
		// the hole card is sent as nil so the client can draw it face down
		return dealerState{Cards: deck.Hand{g.dealer[0], nil}}
	}

	score := NewScore(g.dealer)
	return dealerState{
		Cards: g.dealer,
		Score: &score,
	}
}

func (g *Game) availableActions() []playable.Action {
	if g.isIdle() {
		return []playable.Action{playable.ActionDeal, playable.ActionRestart}
	}

	if g.phase != playable.PhasePlayerTurn {
		return []playable.Action{}
	}

	hand := g.hands[g.handIndex]
	actions := []playable.Action{playable.ActionHit, playable.ActionStand}
	if hand.canDouble() && g.ledger.CanAfford(hand.Bet) {
		actions = append(actions, playable.ActionDouble)
	}

	if hand.canSplit() && len(g.hands) < g.options.MaxHands && g.ledger.CanAfford(hand.Bet) {
		actions = append(actions, playable.ActionSplit)
	}

	return actions
}
