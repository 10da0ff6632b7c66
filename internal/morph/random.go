package morph

import (
	"math/rand"
	"time"
)

// Source supplies uniform values in [0, 1). Every random draw made by the
// package goes through one.
type Source interface {
	Float64() float64
}

// NewSource returns a Source seeded with seed, or with the current time when
// seed is zero.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
