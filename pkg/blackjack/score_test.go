package blackjack

import (
	"testing"

	"cardtable-server/pkg/deck"
	"github.com/stretchr/testify/assert"
)

func TestNewScore(t *testing.T) {
	a := assert.New(t)

	s := NewScore(deck.CardsFromString("14s,14h,9c"))
	a.Equal(21, s.Total)
	a.True(s.Soft)
	a.False(s.Bust)
	a.False(s.Blackjack)

	s = NewScore(deck.CardsFromString("13s,12h"))
	a.Equal(Score{Total: 20}, s)

	s = NewScore(deck.CardsFromString("14s,13h"))
	a.Equal(Score{Total: 21, Soft: true, Blackjack: true}, s)

	s = NewScore(deck.CardsFromString("10s,6h,9c"))
	a.Equal(Score{Total: 25, Bust: true}, s)

	s = NewScore(deck.CardsFromString("14s,14h,14c,14d"))
	a.Equal(14, s.Total)
	a.True(s.Soft)

	s = NewScore(deck.CardsFromString("14s,6h,10c"))
	a.Equal(Score{Total: 17}, s)

	a.Equal(Score{}, NewScore(nil))
}

func TestScore_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("Blackjack", NewScore(deck.CardsFromString("14s,13h")).String())
	a.Equal("Bust (25)", NewScore(deck.CardsFromString("10s,6h,9c")).String())
	a.Equal("Soft 17", NewScore(deck.CardsFromString("14s,6h")).String())
	a.Equal("20", NewScore(deck.CardsFromString("10s,12h")).String())
}

func TestDealerShouldHit(t *testing.T) {
	a := assert.New(t)

	a.True(DealerShouldHit(NewScore(deck.CardsFromString("10s,6h"))))
	a.True(DealerShouldHit(NewScore(deck.CardsFromString("14s,6h"))), "dealer hits soft 17")
	a.False(DealerShouldHit(NewScore(deck.CardsFromString("10s,7h"))))
	a.False(DealerShouldHit(NewScore(deck.CardsFromString("14s,6h,10c"))), "hard 17")
	a.False(DealerShouldHit(NewScore(deck.CardsFromString("14s,7h"))), "soft 18")
	a.False(DealerShouldHit(NewScore(deck.CardsFromString("10s,6h,9c"))))
}
