package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransTableStoreProbe(t *testing.T) {
	tt := NewTransTable(10)
	m := Move{Kind: MovePiece, From: 1, To: 2}
	tt.Store(42, 5, 120, ttLower, m)

	val, flag, ok := tt.Probe(42, 5)
	require.True(t, ok)
	assert.Equal(t, 120, val)
	assert.Equal(t, ttLower, flag)

	val, flag, ok = tt.Probe(42, 3)
	require.True(t, ok, "shallower request should hit")
	assert.Equal(t, 120, val)

	_, _, ok = tt.Probe(42, 6)
	assert.False(t, ok, "deeper request must miss")

	_, _, ok = tt.Probe(43, 1)
	assert.False(t, ok, "unknown hash must miss")

	probes, hits := tt.Stats()
	assert.Equal(t, uint64(4), probes)
	assert.Equal(t, uint64(2), hits)
}

func TestTransTableAlwaysReplace(t *testing.T) {
	tt := NewTransTable(10)
	mask := tt.mask + 1
	// Same slot, different hash: the newcomer wins even at lower depth.
	tt.Store(7, 9, 500, ttExact, NoMove)
	tt.Store(7+mask, 1, -500, ttUpper, NoMove)

	_, _, ok := tt.Probe(7, 1)
	assert.False(t, ok, "evicted entry still present")
	val, flag, ok := tt.Probe(7+mask, 1)
	require.True(t, ok)
	assert.Equal(t, -500, val)
	assert.Equal(t, ttUpper, flag)
}

func TestTransTableBestMoveHint(t *testing.T) {
	tt := NewTransTable(10)
	m := Move{Kind: MovePiece, From: 10, To: 11}
	tt.Store(99, 2, 0, ttExact, m)

	// The hint is served regardless of requested depth.
	hint, ok := tt.BestMove(99)
	require.True(t, ok)
	assert.Equal(t, m, hint)

	_, ok = tt.BestMove(100)
	assert.False(t, ok)

	tt.Store(77, 3, 0, ttExact, NoMove)
	_, ok = tt.BestMove(77)
	assert.False(t, ok, "NoMove must not be served as a hint")
}

func TestTransTableClear(t *testing.T) {
	tt := NewTransTable(10)
	tt.Store(5, 1, 10, ttExact, NoMove)
	tt.Clear()
	_, _, ok := tt.Probe(5, 1)
	assert.False(t, ok)
	probes, hits := tt.Stats()
	assert.Equal(t, uint64(1), probes)
	assert.Equal(t, uint64(0), hits)
}

func TestMateScorePlyAdjustment(t *testing.T) {
	cases := []struct {
		score, ply int
	}{
		{MateScore - 3, 3},
		{-(MateScore - 5), 2},
		{150, 7},
		{0, 0},
		{-30, 12},
	}
	for _, c := range cases {
		stored := toTTScore(c.score, c.ply)
		assert.Equal(t, c.score, fromTTScore(stored, c.ply), "score %d ply %d", c.score, c.ply)
	}
	// A mate found 3 plies below a node stored at ply 2 must read back
	// as 3 plies from that node, not from the root.
	stored := toTTScore(MateScore-5, 2)
	assert.Equal(t, MateScore-3, stored)
}
