package blackjack

import "errors"

// Options contains options for a blackjack session
type Options struct {
	StartingBalance int
	BetPresets      []int
	MinBet          int
	// MaxHands limits how many hands splitting can create
	MaxHands int
	// ReshuffleAt rebuilds the deck between rounds when fewer cards remain
	ReshuffleAt int
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		StartingBalance: 1000,
		BetPresets:      []int{10, 50, 100},
		MinBet:          1,
		MaxHands:        4,
		ReshuffleAt:     15,
	}
}

func (o Options) validate() error {
	if o.StartingBalance <= 0 {
		return errors.New("starting balance must be > 0")
	}

	if o.MinBet < 1 {
		return errors.New("min bet must be >= 1")
	}

	if o.MaxHands < 1 {
		return errors.New("max hands must be >= 1")
	}

	if o.ReshuffleAt < 4 {
		return errors.New("reshuffle threshold must be >= 4")
	}

	return nil
}
