package roulette

import (
	"fmt"

	"cardtable-server/pkg/ledger"
)

// Outside bet targets
const (
	TargetRed      = "red"
	TargetBlack    = "black"
	TargetEven     = "even"
	TargetOdd      = "odd"
	TargetLow      = "1to18"
	TargetHigh     = "19to36"
	TargetFirst12  = "first12"
	TargetSecond12 = "second12"
	TargetThird12  = "third12"
	TargetColumn1  = "col1"
	TargetColumn2  = "col2"
	TargetColumn3  = "col3"
)

// multipliers include the returned stake
const (
	straightUpBet  = 36
	dozenColumnBet = 3
	evenMoneyBet   = 2
)

// OutsideTargets lists every outside bet
var OutsideTargets = []string{
	TargetRed, TargetBlack, TargetEven, TargetOdd, TargetLow, TargetHigh,
	TargetFirst12, TargetSecond12, TargetThird12,
	TargetColumn1, TargetColumn2, TargetColumn3,
}

// ValidateTarget returns an error if the target can't be bet on for the variant
// Straight up targets are pocket numbers, e.g., "17", "0", or "00"
func ValidateTarget(target string, variant Variant) error {
	for _, t := range OutsideTargets {
		if t == target {
			return nil
		}
	}

	pocket, err := PocketFromString(target)
	if err != nil || (pocket.DoubleZero && variant != VariantAmerican) {
		return fmt.Errorf("%w: unknown target %q", ledger.ErrInvalidBet, target)
	}

	return nil
}

// PayoutMultiplier returns what a chip on target returns, including the chip itself
// Zero and double zero lose every outside bet
func PayoutMultiplier(target string, pocket Pocket) int {
	if straight, err := PocketFromString(target); err == nil {
		if straight == pocket {
			return straightUpBet
		}

		return 0
	}

	if pocket.IsZero() {
		return 0
	}

	n := pocket.Number
	var won bool
	multiplier := evenMoneyBet

	switch target {
	case TargetRed:
		won = pocket.Color() == Red
	case TargetBlack:
		won = pocket.Color() == Black
	case TargetEven:
		won = n%2 == 0
	case TargetOdd:
		won = n%2 == 1
	case TargetLow:
		won = n <= 18
	case TargetHigh:
		won = n >= 19
	case TargetFirst12, TargetSecond12, TargetThird12:
		multiplier = dozenColumnBet
		won = dozen(target) == (n-1)/12
	case TargetColumn1, TargetColumn2, TargetColumn3:
		multiplier = dozenColumnBet
		won = column(target) == (n-1)%3
	}

	if won {
		return multiplier
	}

	return 0
}

func dozen(target string) int {
	switch target {
	case TargetSecond12:
		return 1
	case TargetThird12:
		return 2
	}

	return 0
}

func column(target string) int {
	switch target {
	case TargetColumn2:
		return 1
	case TargetColumn3:
		return 2
	}

	return 0
}

// Settle returns the chips returned for the wagers on the winning pocket
func Settle(pocket Pocket, wagers []ledger.Wager) int {
	payout := 0
	for _, w := range wagers {
		payout += w.Amount * PayoutMultiplier(w.Target, pocket)
	}

	return payout
}
