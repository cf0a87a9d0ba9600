package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	a := assert.New(t)

	SetRandomSeed(0)
	first := []string{GetRandomName(), GetRandomName()}

	SetRandomSeed(0)
	a.Equal(first, []string{GetRandomName(), GetRandomName()})

	parts := strings.SplitN(first[0], " ", 2)
	a.Len(parts, 2)
	a.Contains(adjectives, parts[0])
	a.Contains(animals, parts[1])
}
