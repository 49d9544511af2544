package holdem

import "errors"

// Options contains options for a hold'em session
type Options struct {
	StartingBalance int
	BetPresets      []int
	MinBet          int
	// AISeats is the number of computer opponents
	AISeats int
	// AIFoldChance is the chance an opponent holding only a high card folds on each street
	AIFoldChance float64
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		StartingBalance: 1000,
		BetPresets:      []int{10, 50, 100},
		MinBet:          1,
		AISeats:         4,
		AIFoldChance:    0.3,
	}
}

func (o Options) validate() error {
	if o.StartingBalance <= 0 {
		return errors.New("starting balance must be > 0")
	}

	if o.MinBet < 1 {
		return errors.New("min bet must be >= 1")
	}

	// two hole cards each plus the board must fit in one deck
	if o.AISeats < 1 || o.AISeats > 8 {
		return errors.New("ai seats must be between 1 and 8")
	}

	if o.AIFoldChance < 0 || o.AIFoldChance > 1 {
		return errors.New("ai fold chance must be between 0 and 1")
	}

	return nil
}
