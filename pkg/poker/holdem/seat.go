package holdem

import (
	"fmt"

	"cardtable-server/pkg/deck"
	"cardtable-server/pkg/poker/handanalyzer"
)

// Seat is a position at the table
// Seat 0 is always the player, the rest are computer opponents
type Seat struct {
	Name        string    `json:"name"`
	IsPlayer    bool      `json:"isPlayer"`
	Hole        deck.Hand `json:"hole"`
	Folded      bool      `json:"folded"`
	Contributed int       `json:"contributed"`

	// set at showdown
	Hand     string `json:"hand,omitempty"`
	Strength int    `json:"-"`
	Winner   bool   `json:"winner"`
	Payout   int    `json:"payout"`
}

func newSeats(aiSeats int) []*Seat {
	seats := make([]*Seat, aiSeats+1)
	seats[0] = &Seat{Name: "You", IsPlayer: true}
	for i := 1; i <= aiSeats; i++ {
		seats[i] = &Seat{Name: fmt.Sprintf("AI %d", i)}
	}

	return seats
}

func (s *Seat) reset() {
	s.Hole = make(deck.Hand, 0, 2)
	s.Folded = false
	s.Contributed = 0
	s.Hand = ""
	s.Strength = 0
	s.Winner = false
	s.Payout = 0
}

func (s *Seat) analyze(board deck.Hand) *handanalyzer.HandAnalyzer {
	cards := make([]*deck.Card, 0, len(s.Hole)+len(board))
	cards = append(cards, s.Hole...)
	cards = append(cards, board...)
	return handanalyzer.New(5, cards)
}

// splitPot divides the pot evenly between winners, given in seat order
// Chips that don't divide evenly go one at a time to the earliest seats
func splitPot(pot int, winners int) []int {
	if winners <= 0 {
		return nil
	}

	shares := make([]int, winners)
	each := pot / winners
	remainder := pot % winners
	for i := range shares {
		shares[i] = each
		if i < remainder {
			shares[i]++
		}
	}

	return shares
}
