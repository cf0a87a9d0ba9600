package rng

import (
	"math/rand"
	"sync"
)

// Seeded is a reproducible generator backed by math/rand
// It is used by tests and the simulator, where the same seed must replay the same match
type Seeded struct {
	seed int64
	lock sync.Mutex
	rng  *rand.Rand
}

// NewSeeded returns a generator for the given seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rng.Intn(n)
}

// Seed returns the seed the generator was created with
func (s *Seeded) Seed() int64 {
	return s.seed
}
