package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidBet is returned when a bet amount or target is not allowed
var ErrInvalidBet = errors.New("invalid bet")

// ErrInsufficientFunds is returned when a bet exceeds the balance
var ErrInsufficientFunds = errors.New("not enough chips")

// Wager is a bet owned by the ledger until it's settled or cleared
type Wager struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
	Target string `json:"target"`
}

// PlaceBet deducts amount from balance and records a wager
// On error the balance is returned unchanged
func PlaceBet(balance, amount int, target string) (int, Wager, error) {
	if amount <= 0 {
		return balance, Wager{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidBet)
	}

	if amount > balance {
		return balance, Wager{}, fmt.Errorf("%w: bet of ${%d} exceeds balance of ${%d}", ErrInsufficientFunds, amount, balance)
	}

	return balance - amount, Wager{
		ID:     uuid.New().String(),
		Amount: amount,
		Target: target,
	}, nil
}

// Settle credits a payout to the balance
func Settle(balance, payout int) int {
	if payout < 0 {
		panic(fmt.Sprintf("payout cannot be negative: %d", payout))
	}

	return balance + payout
}

// Stats keeps track of how the session is going
type Stats struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Pushes     int `json:"pushes"`
	Blackjacks int `json:"blackjacks"`
}

// Ledger tracks the chip balance and active wagers for a session
type Ledger struct {
	startingBalance int
	balance         int
	wagers          []Wager
	stats           Stats
}

// New returns a ledger funded with startingBalance
func New(startingBalance int) *Ledger {
	if startingBalance < 0 {
		panic("starting balance cannot be negative")
	}

	return &Ledger{
		startingBalance: startingBalance,
		balance:         startingBalance,
		wagers:          make([]Wager, 0),
	}
}

// Balance returns the current chip count
func (l *Ledger) Balance() int {
	return l.balance
}

// CanAfford returns true if amount can be staked
func (l *Ledger) CanAfford(amount int) bool {
	return amount > 0 && amount <= l.balance
}

// PlaceBet stakes amount on target
func (l *Ledger) PlaceBet(amount int, target string) (Wager, error) {
	balance, wager, err := PlaceBet(l.balance, amount, target)
	if err != nil {
		return Wager{}, err
	}

	l.balance = balance
	l.wagers = append(l.wagers, wager)
	return wager, nil
}

// Settle credits a payout and removes all pending wagers
func (l *Ledger) Settle(payout int) {
	l.balance = Settle(l.balance, payout)
	l.wagers = l.wagers[:0]
}

// Clear discards all pending wagers and refunds the stakes
// Only valid before any wager has been resolved
func (l *Ledger) Clear() int {
	refund := l.Staked()
	l.balance += refund
	l.wagers = l.wagers[:0]
	return refund
}

// Wagers returns a copy of the pending wagers
func (l *Ledger) Wagers() []Wager {
	w := make([]Wager, len(l.wagers))
	copy(w, l.wagers)
	return w
}

// Staked returns the sum of pending wagers
func (l *Ledger) Staked() int {
	total := 0
	for _, w := range l.wagers {
		total += w.Amount
	}

	return total
}

// Stats returns the session stats
func (l *Ledger) Stats() Stats {
	return l.stats
}

// RecordWin records a win
func (l *Ledger) RecordWin(blackjack bool) {
	l.stats.Wins++
	if blackjack {
		l.stats.Blackjacks++
	}
}

// RecordLoss records a loss
func (l *Ledger) RecordLoss() {
	l.stats.Losses++
}

// RecordPush records a push
func (l *Ledger) RecordPush() {
	l.stats.Pushes++
}

// Restart resets the balance to the starting amount and clears all stats
func (l *Ledger) Restart() {
	l.balance = l.startingBalance
	l.wagers = l.wagers[:0]
	l.stats = Stats{}
}
