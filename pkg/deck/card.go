package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Suits lists the suits in deck-building order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}

	panic(fmt.Sprintf("unknown suit: %s", string(s)))
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// face cards
const (
	Jack   = 11
	Queen  = 12
	King   = 13
	Ace    = 14
	LowAce = 1
)

// RankString returns the rank as it's printed on the card (2-10, J, Q, K, A)
func (c *Card) RankString() string {
	switch c.Rank {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}

	return strconv.Itoa(c.Rank)
}

func (c *Card) String() string {
	return c.RankString() + c.Suit.Symbol()
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// BlackjackValue is the hard value of the card in blackjack
// Face cards count 10 and an ace counts 11. Soft reduction is the scorer's job.
func (c *Card) BlackjackValue() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= 10:
		return 10
	}

	return c.Rank
}

var (
	cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

	suitLetters = map[byte]Suit{'c': Clubs, 'd': Diamonds, 'h': Hearts, 's': Spades}
)

// CardFromString parses the short form used by fixtures, i.e., "14s" is the ace of spades
// Ranks run from 2 to 14 and suits are one of c, d, h or s. An empty string is a nil card.
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	// the regexp already limits the rank to digits
	rank, _ := strconv.Atoi(match[1])
	return &Card{
		Rank: rank,
		Suit: suitLetters[strings.ToLower(match[2])[0]],
	}
}

// CardsFromString parses a comma separated list of cards
func CardsFromString(s string) []*Card {
	cards := []*Card{}
	if s == "" {
		return cards
	}

	for _, part := range strings.Split(s, ",") {
		cards = append(cards, CardFromString(strings.TrimSpace(part)))
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	return fmt.Sprintf("%d%c", card.Rank, string(card.Suit)[0])
}

// CardsToString is the inverse of CardsFromString
func CardsToString(cards []*Card) string {
	var sb strings.Builder
	for i, card := range cards {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(CardToString(card))
	}

	return sb.String()
}
