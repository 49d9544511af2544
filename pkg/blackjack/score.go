package blackjack

import (
	"strconv"

	"cardtable-server/pkg/deck"
)

// Score is the evaluation of a blackjack hand
type Score struct {
	Total int `json:"total"`
	// Soft is true if an ace is still being counted as 11
	Soft bool `json:"soft"`
	Bust bool `json:"bust"`
	// Blackjack is true for a two card 21
	Blackjack bool `json:"blackjack"`
}

// NewScore scores the hand
// Aces count 11 until the total exceeds 21, then drop to 1 one at a time
func NewScore(cards []*deck.Card) Score {
	total := 0
	acesAsEleven := 0
	for _, card := range cards {
		total += card.BlackjackValue()
		if card.Rank == deck.Ace {
			acesAsEleven++
		}
	}

	for total > 21 && acesAsEleven > 0 {
		total -= 10
		acesAsEleven--
	}

	return Score{
		Total:     total,
		Soft:      acesAsEleven > 0,
		Bust:      total > 21,
		Blackjack: len(cards) == 2 && total == 21,
	}
}

func (s Score) String() string {
	switch {
	case s.Blackjack:
		return "Blackjack"
	case s.Bust:
		return "Bust (" + strconv.Itoa(s.Total) + ")"
	case s.Soft:
		return "Soft " + strconv.Itoa(s.Total)
	}

	return strconv.Itoa(s.Total)
}

// DealerShouldHit is the house policy: hit below 17 and on a soft 17
func DealerShouldHit(s Score) bool {
	return s.Total < 17 || (s.Total == 17 && s.Soft)
}
