// Package random provides seeds and the seeded shuffle source used by the
// game engines. Every shuffle in a game flows through one Source so that a
// game can be replayed from its seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a deterministic source for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Shuffle returns a permuted copy of list. The input is left untouched.
func Shuffle[T any](r Shuffler, list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	if r == nil || len(out) < 2 {
		return out
	}
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
