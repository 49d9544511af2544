package roulette

import (
	"errors"
	"time"
)

// Options contains options for a roulette session
type Options struct {
	Variant         Variant
	StartingBalance int
	BetPresets      []int
	MinBet          int
	// SpinDuration is how long the wheel spins before the result is settled
	SpinDuration time.Duration
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		Variant:         VariantAmerican,
		StartingBalance: 1000,
		BetPresets:      []int{10, 50, 100},
		MinBet:          1,
		SpinDuration:    3 * time.Second,
	}
}

func (o Options) validate() error {
	if o.StartingBalance <= 0 {
		return errors.New("starting balance must be > 0")
	}

	if o.MinBet < 1 {
		return errors.New("min bet must be >= 1")
	}

	if o.SpinDuration < 0 {
		return errors.New("spin duration cannot be negative")
	}

	return nil
}
