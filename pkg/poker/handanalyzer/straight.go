package handanalyzer

import "cardtable-server/pkg/deck"

// used to keep track of the straight progress
// cards must be fed in descending rank order
type straightTracker struct {
	high   int
	last   int
	length int
}

// add adds a card rank to the streak and returns true once five consecutive ranks are found
func (s *straightTracker) add(rank int) bool {
	switch {
	case s.length == 0 || s.last-rank > 1:
		s.high = rank
		s.length = 1
	case s.last-rank == 1:
		s.length++
	}

	s.last = rank
	return s.length >= 5
}

// findStraight returns the high card of the best straight
// Aces are tried high first, then low for the wheel (A-2-3-4-5), which has a high card of 5
func findStraight(cards deck.Hand) int {
	st := straightTracker{}
	for _, card := range cards {
		if st.add(card.Rank) {
			return st.high
		}
	}

	// aces are sorted first, so they can be replayed as the low card
	for _, card := range cards {
		if card.Rank != deck.Ace {
			break
		}

		if st.add(deck.LowAce) {
			return st.high
		}
	}

	return 0
}
