package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	list := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	a := Shuffle(New(42), list)
	b := Shuffle(New(42), list)

	assert.Equal(t, a, b)
	assert.ElementsMatch(t, list, a)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, list, "input must not be mutated")
}

func TestShuffleHandlesNilSourceAndShortLists(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Shuffle[string](nil, []string{"a", "b"}))
	assert.Empty(t, Shuffle(New(1), []string{}))
	assert.Equal(t, []string{"x"}, Shuffle(New(1), []string{"x"}))
}

func TestNewSeed(t *testing.T) {
	_, err := NewSeed()
	require.NoError(t, err)
}
