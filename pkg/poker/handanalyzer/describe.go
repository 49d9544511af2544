package handanalyzer

import (
	"fmt"

	"cardtable-server/pkg/deck"
	"github.com/paulhankin/poker"
)

// toLibraryCard converts a card to the evaluator's representation
// The evaluator counts aces as rank 1
func toLibraryCard(card *deck.Card) (poker.Card, error) {
	var suit poker.Suit
	switch card.Suit {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	default:
		var c poker.Card
		return c, fmt.Errorf("unknown suit: %s", card.Suit)
	}

	rank := poker.Rank(card.Rank)
	if card.Rank == deck.Ace {
		rank = poker.Rank(deck.LowAce)
	}

	return poker.MakeCard(suit, rank)
}

// Describe returns a human readable description of the hand, i.e., "pair of kings"
// The evaluator can only describe five or seven cards, other sizes get the hand name
func (h *HandAnalyzer) Describe() string {
	if n := len(h.cards); n != 5 && n != 7 {
		return h.hand.String()
	}

	cards := make([]poker.Card, len(h.cards))
	for i, card := range h.cards {
		c, err := toLibraryCard(card)
		if err != nil {
			return h.hand.String()
		}

		cards[i] = c
	}

	desc, err := poker.Describe(cards)
	if err != nil {
		return h.hand.String()
	}

	return desc
}
