// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sampler draws attribute values from the indices built by the
// distribution package. Every primitive is stateless apart from the Stream
// it is handed, so a batch seeded the same way always produces the same
// records.
package sampler

import (
	"math"

	"gonum.org/v1/gonum/mathext/prng"
)

// Source produces the raw uniform words a Stream consumes. *prng.MT19937
// satisfies it, as does gonum's rand.Source.
type Source interface {
	Uint64() uint64
	Seed(seed uint64)
}

var _ Source = (*prng.MT19937)(nil)

// Stream is one sequence of pseudo-random draws. A Stream is not safe for
// concurrent use; give each worker its own.
type Stream struct {
	src Source
}

// NewStream returns a stream seeded with [seed]. We don't need a
// cryptographically secure source here; MT19937 is fast and reproducible
// across platforms.
func NewStream(seed uint64) *Stream {
	src := prng.NewMT19937()
	src.Seed(seed)
	return &Stream{src: src}
}

// NewStreamFrom wraps an existing source. Tests use it to force draws.
func NewStreamFrom(src Source) *Stream {
	return &Stream{src: src}
}

// ForRecord returns the stream for record [index] of a batch seeded with
// [seed]. Streams for distinct indices are independent, so records can be
// produced on any worker in any order with identical results.
func ForRecord(seed, index uint64) *Stream {
	return NewStream(mix(seed, index))
}

// splitmix64 finalizer over the (seed, index) pair.
func mix(seed, index uint64) uint64 {
	z := seed + (index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *Stream) Uint64() uint64 {
	return s.src.Uint64()
}

// Float64 returns a uniform draw in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.src.Uint64()>>11) * 0x1p-53
}

// Uint64Inclusive returns a uniform draw in [0, max].
func (s *Stream) Uint64Inclusive(max uint64) uint64 {
	switch {
	case max == math.MaxUint64:
		return s.src.Uint64()
	// max is one less than a power of two, so a mask is uniform.
	case max&(max+1) == 0:
		return s.src.Uint64() & max
	// Resample above the largest multiple of max+1 to avoid modulo bias.
	default:
		n := max + 1
		thresh := math.MaxUint64 - (math.MaxUint64 % n)
		v := s.src.Uint64()
		for v >= thresh {
			v = s.src.Uint64()
		}
		return v % n
	}
}

// IntN returns a uniform draw in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("sampler: IntN needs a positive bound")
	}
	return int(s.Uint64Inclusive(uint64(n) - 1))
}

// IntRange returns a uniform draw in [lo, hi] inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	return lo + s.IntN(hi-lo+1)
}

// Bernoulli reports true with probability [p].
func (s *Stream) Bernoulli(p float64) bool {
	return s.Float64() < p
}

// Source exposes the stream's source for gonum's distributions.
func (s *Stream) Source() Source {
	return s.src
}
