package rng

import (
	"math/rand"
	"time"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a math/rand backed Generator
// A seeded generator is reproducible, which makes it the choice for tests and replays
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded returns a Seeded generator
// If seed is 0, the current time is used
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// Seed returns the seed used
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Float64 returns a number in [0.0, 1.0) from any Generator
func Float64(g Generator) float64 {
	const precision = 1 << 30
	return float64(g.Intn(precision)) / precision
}
