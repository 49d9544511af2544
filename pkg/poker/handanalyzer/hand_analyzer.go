package handanalyzer

import (
	"sort"

	"cardtable-server/pkg/deck"
)

// HandAnalyzer finds the best poker hand that can be made from a set of cards
type HandAnalyzer struct {
	size  int
	cards deck.Hand

	hand     Hand
	ranks    []int
	strength int
}

// rankGroup is a run of cards sharing a rank
type rankGroup struct {
	rank  int
	count int
}

// New ranks cards, using the best size cards (five in every game we deal)
// The input slice is left untouched
func New(size int, cards []*deck.Card) *HandAnalyzer {
	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	h := &HandAnalyzer{size: size, cards: sorted}
	h.hand, h.ranks = h.evaluate()
	h.strength = calculateStrength(h.hand, h.ranks)
	return h
}

// Hand returns the category of the best hand
func (h *HandAnalyzer) Hand() Hand {
	return h.hand
}

// Ranks returns the ranks that decide ties within the category
// The category's own ranks come first, followed by kickers
func (h *HandAnalyzer) Ranks() []int {
	return h.ranks
}

// Strength returns a number where a higher strength always beats a lower one
// and equal strengths tie
func (h *HandAnalyzer) Strength() int {
	return h.strength
}

func (h *HandAnalyzer) evaluate() (Hand, []int) {
	straightFlush, flush := h.suited()
	switch {
	case straightFlush == deck.Ace:
		return RoyalFlush, []int{straightFlush}
	case straightFlush > 0:
		return StraightFlush, []int{straightFlush}
	}

	groups := h.groups()
	top := groups[0]
	paired := len(groups) > 1 && groups[1].count >= 2

	switch {
	case top.count >= 4:
		return FourOfAKind, h.withKickers(top.rank)
	case top.count == 3 && paired && h.size >= 5:
		return FullHouse, []int{top.rank, groups[1].rank}
	case flush != nil:
		return Flush, flush
	}

	if high := findStraight(h.cards); high > 0 {
		return Straight, []int{high}
	}

	switch {
	case top.count == 3:
		return ThreeOfAKind, h.withKickers(top.rank)
	case top.count == 2 && paired:
		return TwoPair, h.withKickers(top.rank, groups[1].rank)
	case top.count == 2:
		return OnePair, h.withKickers(top.rank)
	}

	return HighCard, h.withKickers()
}

// suited returns the high card of the best straight flush, and the ranks of the best flush
func (h *HandAnalyzer) suited() (int, []int) {
	bySuit := make(map[deck.Suit]deck.Hand)
	for _, card := range h.cards {
		bySuit[card.Suit] = append(bySuit[card.Suit], card)
	}

	straightFlush := 0
	var flush []int
	for _, suit := range deck.Suits {
		cards := bySuit[suit]
		if len(cards) < h.size {
			continue
		}

		if high := findStraight(cards); high > straightFlush {
			straightFlush = high
		}

		if flush == nil || cards[0].Rank > flush[0] {
			flush = make([]int, h.size)
			for i := range flush {
				flush[i] = cards[i].Rank
			}
		}
	}

	return straightFlush, flush
}

// groups returns the rank groups, largest first and then by rank
// A second set of trips counts as a pair for a full house
func (h *HandAnalyzer) groups() []rankGroup {
	groups := make([]rankGroup, 0, len(h.cards))
	for _, card := range h.cards {
		if n := len(groups); n > 0 && groups[n-1].rank == card.Rank {
			groups[n-1].count++
			continue
		}

		groups = append(groups, rankGroup{rank: card.Rank, count: 1})
	}

	if len(groups) == 0 {
		return []rankGroup{{}}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	return groups
}

// withKickers returns ranks followed by the highest remaining ranks, up to size cards
func (h *HandAnalyzer) withKickers(ranks ...int) []int {
	used := 0
	for _, card := range h.cards {
		if containsRank(ranks, card.Rank) {
			used++
		}
	}

	if used > h.size {
		used = h.size
	}

	result := append([]int{}, ranks...)
	for _, card := range h.cards {
		if used == h.size {
			break
		}

		if containsRank(ranks, card.Rank) {
			continue
		}

		result = append(result, card.Rank)
		used++
	}

	return result
}

func containsRank(ranks []int, rank int) bool {
	for _, r := range ranks {
		if r == rank {
			return true
		}
	}

	return false
}

// calculateStrength packs the hand and up to five ranks into a single comparable number
// Each rank takes a base-15 digit, most significant first
func calculateStrength(hand Hand, ranks []int) int {
	strength := int(hand)
	for i := 0; i < 5; i++ {
		strength *= 15
		if i < len(ranks) {
			strength += ranks[i]
		}
	}

	return strength
}
