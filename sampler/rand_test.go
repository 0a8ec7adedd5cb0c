// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedSource replays a fixed cycle of words.
type fixedSource struct {
	vals []uint64
	i    int
}

func (f *fixedSource) Uint64() uint64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func (*fixedSource) Seed(uint64) {}

// word returns the source word that makes Float64 produce [u].
func word(u float64) uint64 {
	return uint64(u*(1<<53)) << 11
}

func TestStreamDeterminism(t *testing.T) {
	require := require.New(t)

	a := NewStream(42)
	b := NewStream(42)
	for i := 0; i < 100; i++ {
		require.Equal(a.Uint64(), b.Uint64())
	}

	c := NewStream(43)
	same := true
	for i := 0; i < 10; i++ {
		if a.Uint64() != c.Uint64() {
			same = false
		}
	}
	require.False(same)
}

func TestForRecordIndependence(t *testing.T) {
	require := require.New(t)

	r1 := ForRecord(42, 1)
	r1Again := ForRecord(42, 1)
	r2 := ForRecord(42, 2)

	require.Equal(r1.Uint64(), r1Again.Uint64())

	differs := false
	for i := 0; i < 10; i++ {
		if ForRecord(42, 1).Uint64() != r2.Uint64() {
			differs = true
			break
		}
	}
	require.True(differs)
}

func TestFloat64Range(t *testing.T) {
	require := require.New(t)

	s := NewStream(7)
	for i := 0; i < 10_000; i++ {
		u := s.Float64()
		require.GreaterOrEqual(u, 0.0)
		require.Less(u, 1.0)
	}
}

func TestUint64Inclusive(t *testing.T) {
	require := require.New(t)

	s := NewStream(7)
	for _, max := range []uint64{0, 1, 7, 10, 100, 1 << 40} {
		for i := 0; i < 1000; i++ {
			require.LessOrEqual(s.Uint64Inclusive(max), max)
		}
	}
}

func TestIntRangeBounds(t *testing.T) {
	require := require.New(t)

	s := NewStream(7)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(3, 5)
		require.GreaterOrEqual(v, 3)
		require.LessOrEqual(v, 5)
		seen[v] = true
	}
	require.Len(seen, 3)
}

func TestIntNPanicsOnZero(t *testing.T) {
	s := NewStream(7)
	require.Panics(t, func() { s.IntN(0) })
}

func TestBernoulliForced(t *testing.T) {
	require := require.New(t)

	// 0.25 is exact in binary, so the boundary comparisons are stable.
	s := NewStreamFrom(&fixedSource{vals: []uint64{word(0.25)}})
	require.True(s.Bernoulli(0.5))
	require.False(s.Bernoulli(0.25))
	require.False(s.Bernoulli(0.1))
}
