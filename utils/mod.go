package utils

import (
	"time"

	"golang.org/x/exp/rand"
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// PickRandom returns a uniformly chosen element of a non-empty slice.
func PickRandom[T any](r *rand.Rand, slice []T) T {
	if len(slice) == 0 {
		panic("cannot pick from an empty slice")
	}
	return slice[r.Intn(len(slice))]
}

// NewRand seeds a generator from seed, or from the clock when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}
