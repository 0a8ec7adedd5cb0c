// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// newCDF normalizes [weights] into a cumulative distribution. The final
// entry is pinned to exactly 1 so a uniform draw can never fall past the end.
// ok is false when there is no positive mass to normalize.
func newCDF(weights []float64) (cum []float64, total float64, ok bool) {
	if len(weights) == 0 {
		return nil, 0, false
	}
	cum = make([]float64, len(weights))
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, 0, false
	}
	for i := range cum {
		cum[i] /= total
	}
	cum[len(cum)-1] = 1
	return cum, total, true
}

// locate returns the first slot whose cumulative weight exceeds [u], for
// u in [0, 1).
func locate(cum []float64, u float64) int {
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > u })
	if i == len(cum) {
		i = len(cum) - 1
	}
	return i
}

// usableWeight reports whether [w] can contribute mass to an index.
func usableWeight(w float64) (string, bool) {
	switch {
	case math.IsNaN(w) || math.IsInf(w, 0):
		return "weight is not finite", false
	case w < 0:
		return "negative weight", false
	default:
		return "", true
	}
}

// Weighted indexes the rows of a table by a weight column, so a uniform draw
// selects a row with probability proportional to its weight.
type Weighted struct {
	cum   []float64
	rows  []int
	total float64
}

// NewWeighted indexes [tbl] by the weights in [weightCol]. Rows with
// unusable weights are dropped; zero-weight rows are left out of the support.
func NewWeighted(tbl *tables.Table, weightCol string) (*Weighted, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}
	weightsIn := tbl.Floats(weightCol)

	weights := make([]float64, 0, len(weightsIn))
	rows := make([]int, 0, len(weightsIn))
	for row, w := range weightsIn {
		if reason, ok := usableWeight(w); !ok {
			report.skip(row, reason)
			continue
		}
		if w == 0 {
			continue
		}
		weights = append(weights, w)
		rows = append(rows, row)
	}

	cum, total, ok := newCDF(weights)
	if !ok {
		return nil, report, fmt.Errorf("%w: %s: no positive weight in %q", tables.ErrConstruction, tbl.Schema().Name, weightCol)
	}
	report.Rows = len(rows)
	return &Weighted{cum: cum, rows: rows, total: total}, report, nil
}

func (w *Weighted) Len() int {
	return len(w.rows)
}

// Total is the sum of the usable weights before normalization.
func (w *Weighted) Total() float64 {
	return w.total
}

// Locate maps a uniform draw in [0, 1) to a table row.
func (w *Weighted) Locate(u float64) int {
	return w.rows[locate(w.cum, u)]
}
