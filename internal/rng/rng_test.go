package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeded_Intn(t *testing.T) {
	a := assert.New(t)

	s1 := NewSeeded(42)
	s2 := NewSeeded(42)
	for i := 0; i < 100; i++ {
		a.Equal(s1.Intn(52), s2.Intn(52))
	}

	a.Equal(int64(42), s1.Seed())
	a.NotEqual(int64(0), NewSeeded(0).Seed())
}

func TestFloat64(t *testing.T) {
	a := assert.New(t)

	g := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		f := Float64(g)
		a.GreaterOrEqual(f, 0.0)
		a.Less(f, 1.0)
	}
}
