package blackjack

import "cardtable-server/pkg/deck"

// PlayerHand is one of the player's hands
// A round starts with one, and each split adds another with its own bet
type PlayerHand struct {
	Cards   deck.Hand `json:"cards"`
	Bet     int       `json:"bet"`
	Doubled bool      `json:"doubled"`
	Stood   bool      `json:"stood"`
	// IsSplit hands can make 21 with two cards, but that's not a natural
	IsSplit bool    `json:"isSplit"`
	Outcome Outcome `json:"outcome"`
}

func newPlayerHand(bet int) *PlayerHand {
	return &PlayerHand{
		Cards: make(deck.Hand, 0, 4),
		Bet:   bet,
	}
}

// Score returns the score of the hand
func (p *PlayerHand) Score() Score {
	s := NewScore(p.Cards)
	if p.IsSplit {
		s.Blackjack = false
	}

	return s
}

// isDone returns true if the hand cannot take another action
// A hand that reaches 21 stands automatically
func (p *PlayerHand) isDone() bool {
	if p.Stood {
		return true
	}

	s := p.Score()
	return s.Bust || s.Total == 21
}

// canSplit returns true if the hand is a pair
func (p *PlayerHand) canSplit() bool {
	return len(p.Cards) == 2 && p.Cards[0].Rank == p.Cards[1].Rank
}

// canDouble returns true if the hand has two cards
func (p *PlayerHand) canDouble() bool {
	return len(p.Cards) == 2
}
