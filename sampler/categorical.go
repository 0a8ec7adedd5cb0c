// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"github.com/PricingFrontier/synthetic-insurance-data/distribution"
)

// Categorical draws one category from [m].
func Categorical(m *distribution.Marginal, s *Stream) string {
	return m.Locate(s.Float64())
}

// Row draws one table row from [w].
func Row(w *distribution.Weighted, s *Stream) int {
	return w.Locate(s.Float64())
}

// Fallback decides what a conditional draw does when its key is absent:
// optionally widen to the nearest key in the same group, then either
// delegate to an unconditional distribution or return a fixed default.
type Fallback struct {
	widen    bool
	delegate *distribution.Marginal
	def      string
}

// DefaultTo returns [category] for missing keys.
func DefaultTo(category string) Fallback {
	return Fallback{def: category}
}

// DelegateTo draws missing keys from [m] instead.
func DelegateTo(m *distribution.Marginal) Fallback {
	return Fallback{delegate: m}
}

// Widened first tries the nearest key within the group, keeping the
// receiver's behavior as the terminal step.
func (f Fallback) Widened() Fallback {
	f.widen = true
	return f
}

// Conditional draws from the distribution at [k], applying [f] when the key
// is absent. The second return reports whether the fallback was used; given
// a terminal fallback the draw itself is always defined.
func Conditional(c *distribution.Conditional, k distribution.Key, f Fallback, s *Stream) (string, bool) {
	if m, ok := c.Get(k); ok {
		return Categorical(m, s), false
	}
	if f.widen {
		if m, _, ok := c.Nearest(k); ok {
			return Categorical(m, s), true
		}
	}
	if f.delegate != nil {
		return Categorical(f.delegate, s), true
	}
	return f.def, true
}

// WithinSubset draws a uniform row from the subset named [key], falling back
// to the whole table when the key is unknown.
func WithinSubset(sub *distribution.Subsets, key string, s *Stream) (int, bool) {
	if rows, ok := sub.Get(key); ok {
		return rows[s.IntN(len(rows))], false
	}
	all := sub.All()
	return all[s.IntN(len(all))], true
}
