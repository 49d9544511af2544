package blackjack

import "fmt"

// Outcome is the result of a single player hand against the dealer
type Outcome string

// Outcome constants
const (
	OutcomePending   Outcome = ""
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
)

// Resolve compares a finished player hand with the finished dealer hand
func Resolve(player, dealer Score) Outcome {
	switch {
	case player.Bust:
		return OutcomeLose
	case player.Blackjack && !dealer.Blackjack:
		return OutcomeBlackjack
	case dealer.Bust:
		return OutcomeWin
	case player.Total > dealer.Total:
		return OutcomeWin
	case player.Total == dealer.Total:
		return OutcomePush
	}

	return OutcomeLose
}

// Payout returns the chips returned to the player for the outcome
// The bet was deducted when it was placed, so a push returns the bet and a loss returns nothing
// A blackjack pays 3:2, with any half chip rounded down
func Payout(outcome Outcome, bet int) int {
	switch outcome {
	case OutcomeBlackjack:
		return bet + bet*3/2
	case OutcomeWin:
		return bet * 2
	case OutcomePush:
		return bet
	case OutcomeLose:
		return 0
	}

	panic(fmt.Sprintf("cannot pay a pending outcome: %q", outcome))
}

// Message returns the text shown to the player
func (o Outcome) Message() string {
	switch o {
	case OutcomeBlackjack:
		return "Blackjack!"
	case OutcomeWin:
		return "You win!"
	case OutcomePush:
		return "Push"
	case OutcomeLose:
		return "You lose"
	}

	return ""
}
