package game

import (
	"testing"

	"github.com/janosimas/dominon/internal/game/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeChecksumDeterministic(t *testing.T) {
	view := struct {
		Hand []string
		Buys int
	}{Hand: []string{"copper", "estate"}, Buys: 1}

	a, err := ComputeChecksum(view)
	require.NoError(t, err)
	b, err := ComputeChecksum(view)
	require.NoError(t, err)
	assert.Equal(t, a.Hash, b.Hash)
	assert.Len(t, a.Hash, 64)
	assert.Equal(t, ChecksumVersion, a.Version)

	view.Buys = 2
	c, err := ComputeChecksum(view)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestVerifyChecksum(t *testing.T) {
	session, err := NewSession(GameTypeEvolution, flow.Options{Players: 2, Seed: 3})
	require.NoError(t, err)
	require.NoError(t, session.Start())

	view := session.View(OmniscientViewer)
	expected, err := ComputeChecksum(view)
	require.NoError(t, err)

	ok, err := VerifyChecksum(view, expected)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyChecksum(session.View("0"), expected)
	require.NoError(t, err)
	assert.False(t, ok, "a player view hides the deck")

	_, err = VerifyChecksum(view, &SerializationChecksum{Hash: expected.Hash, Version: 2})
	assert.Error(t, err)

	_, err = Checksum(func() {})
	assert.Error(t, err)
}
