package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from crypto/rand
// Shuffles do not need it, but it's available when a table asks for it
type Crypto struct{}

// Intn returns a random number from 0 <= x < n
func (c Crypto) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// New returns the generator requested by configuration
func New(useCrypto bool, seed int64) Generator {
	if useCrypto {
		return Crypto{}
	}

	return NewSeeded(seed)
}
