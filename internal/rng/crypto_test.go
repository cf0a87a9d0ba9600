package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	c := Crypto{}
	found := make(map[int]bool)
	// it's possible this could fail, but not likely
	for i := 0; i < 1000; i++ {
		found[c.Intn(9)] = true
	}

	for i := 0; i < 9; i++ {
		a.True(found[i], "expected %d to be drawn", i)
	}
	a.False(found[9])

	a.Panics(func() {
		c.Intn(0)
	})
}
