package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_WellFormed(t *testing.T) {
	g := New(PrefixOpportunity)
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		id, err := g.Next(func(string) (bool, error) { return false, nil })
		require.NoError(t, err)
		assert.True(t, IsWellFormed(id), "malformed id %q", id)
		assert.True(t, strings.HasPrefix(id, "ITP-"))
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestNext_RetriesOnCollision(t *testing.T) {
	g := New(PrefixApplication)

	collisions := 0
	id, err := g.Next(func(string) (bool, error) {
		if collisions < 3 {
			collisions++
			return true, nil
		}
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, collisions)
	assert.True(t, IsWellFormed(id))
}

func TestNext_GivesUpWhenExhausted(t *testing.T) {
	g := New(PrefixWithdrawal)

	_, err := g.Next(func(string) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNext_PropagatesProbeError(t *testing.T) {
	g := New(PrefixOpportunity)

	probeErr := assert.AnError
	_, err := g.Next(func(string) (bool, error) { return false, probeErr })
	assert.ErrorIs(t, err, probeErr)
}

func TestIsWellFormed(t *testing.T) {
	assert.True(t, IsWellFormed("ITP-0A2B3C"))
	assert.True(t, IsWellFormed("APP-XYZW12"))
	assert.False(t, IsWellFormed("ITP-0a2b3c"), "lowercase token")
	assert.False(t, IsWellFormed("ITP-0A2B3"), "short token")
	assert.False(t, IsWellFormed("itp-0A2B3C"), "lowercase prefix")
	assert.False(t, IsWellFormed("ITP0A2B3C"), "missing dash")
}
