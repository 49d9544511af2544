package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"cardtable-server/internal/rng"
)

// ErrEmptyDeck is an error when Draw() is attempted and there are no more cards
// Decks are never rebuilt during a draw. Callers replenish between rounds.
var ErrEmptyDeck = errors.New("deck is empty")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a playing deck
// The top of the deck is Cards[0]
type Deck struct {
	Cards []*Card `json:"cards"`
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	return &Deck{
		Cards: Build(),
	}
}

// Build returns the 52 cards of a standard deck in a fixed order
// Clubs first, then diamonds, hearts, and spades, each from 2 through Ace
func Build() []*Card {
	cards := make([]*Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return cards
}

// ShuffleSlice performs an in-place Fisher-Yates shuffle
// Every permutation is equally likely provided the generator is unbiased
func ShuffleSlice[T any](s []T, gen rng.Generator) {
	for i := len(s) - 1; i > 0; i-- {
		j := gen.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Shuffle will shuffle the cards that remain in the deck
func (d *Deck) Shuffle(gen rng.Generator) {
	ShuffleSlice(d.Cards, gen)
}

// Rebuild replaces the deck with a full 52 card deck and shuffles it
// This must only be called between rounds
func (d *Deck) Rebuild(gen rng.Generator) {
	d.Cards = Build()
	d.Shuffle(gen)
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, an ErrEmptyDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEmptyDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// MustDraw draws a card and panics on an empty deck
// Games call this mid-round after checking CanDraw() at round start
func (d *Deck) MustDraw() *Card {
	card, err := d.Draw()
	if err != nil {
		panic(err)
	}

	return card
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
