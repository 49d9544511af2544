package roulette

import (
	"fmt"
	"strconv"
)

// Variant is the type of wheel
type Variant string

// Variant constants
const (
	VariantEuropean Variant = "european"
	VariantAmerican Variant = "american"
)

// Color is the color of a pocket
type Color string

// Color constants
const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// Pocket is a slot on the wheel
// The double zero pocket has Number 0 and DoubleZero set
type Pocket struct {
	Number     int  `json:"number"`
	DoubleZero bool `json:"doubleZero"`
}

var (
	europeanOrder = []int{0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10, 5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26}

	// -1 marks the double zero
	americanOrder = []int{0, 28, 9, 26, 30, 11, 7, 20, 32, 17, 5, 22, 34, 15, 3, 24, 36, 13, 1, -1, 27, 10, 25, 29, 12, 8, 19, 31, 18, 6, 21, 33, 16, 4, 23, 35, 14, 2}

	redNumbers = map[int]bool{
		1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
		19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
	}
)

// BuildWheel returns the pockets of the wheel in the order they appear on the wheel
func BuildWheel(variant Variant) ([]Pocket, error) {
	var order []int
	switch variant {
	case VariantEuropean:
		order = europeanOrder
	case VariantAmerican:
		order = americanOrder
	default:
		return nil, fmt.Errorf("unknown roulette variant: %q", variant)
	}

	pockets := make([]Pocket, len(order))
	for i, n := range order {
		if n == -1 {
			pockets[i] = Pocket{DoubleZero: true}
		} else {
			pockets[i] = Pocket{Number: n}
		}
	}

	return pockets, nil
}

// PocketFromString parses "0", "00", or "1" through "36"
func PocketFromString(s string) (Pocket, error) {
	if s == "00" {
		return Pocket{DoubleZero: true}, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 36 || strconv.Itoa(n) != s {
		return Pocket{}, fmt.Errorf("invalid pocket: %q", s)
	}

	return Pocket{Number: n}, nil
}

// IsZero returns true for 0 and 00
func (p Pocket) IsZero() bool {
	return p.Number == 0
}

// Color returns the color of the pocket
func (p Pocket) Color() Color {
	if p.IsZero() {
		return Green
	}

	if redNumbers[p.Number] {
		return Red
	}

	return Black
}

func (p Pocket) String() string {
	if p.DoubleZero {
		return "00"
	}

	return strconv.Itoa(p.Number)
}
