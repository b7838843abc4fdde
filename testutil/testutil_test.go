package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillUniform(t *testing.T) {
	rng := NewRNG(4711)

	v := make([]float64, 32)
	rng.FillUniform(v)

	for _, x := range v {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
}

func TestUnitVector(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UnitVector(32)

	var sum float64
	for _, x := range v {
		sum += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-9)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := make([]float64, 10)
	rng.FillGaussian(v1)

	rng.Reset()
	v2 := make([]float64, 10)
	rng.FillGaussian(v2)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestCommunities(t *testing.T) {
	rng := NewRNG(4711)

	g := rng.Communities(40, 8, 4, 0.1)

	require.NotNil(t, g.Store)
	assert.Equal(t, 40, g.Store.Len())
	assert.Equal(t, 8, g.Store.Dim())
	require.Len(t, g.Members, 4)
	for c, m := range g.Members {
		assert.Len(t, m, 10)
		for _, n := range m {
			assert.Equal(t, c, g.Community[n])
		}
	}
}

func TestLinkSplit(t *testing.T) {
	rng := NewRNG(4711)
	g := rng.Communities(40, 8, 4, 0.1)

	s := rng.LinkSplit(g, 25)

	require.Len(t, s.Positive, 25)
	require.Len(t, s.Negative, 25)

	community := func(id string) int {
		for i := range g.Community {
			if NodeID(i) == id {
				return g.Community[i]
			}
		}
		t.Fatalf("unknown node %s", id)
		return -1
	}

	for _, e := range s.Positive {
		assert.NotEqual(t, e.Src, e.Dst)
		assert.Equal(t, community(e.Src), community(e.Dst))
	}
	for _, e := range s.Negative {
		assert.NotEqual(t, community(e.Src), community(e.Dst))
	}
}
