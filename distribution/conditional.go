// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// ConditionalColumns names the columns a conditional index is built from.
type ConditionalColumns struct {
	// Groups are the categorical covariate columns, joined in order into
	// Key.Group.
	Groups []string

	// Low and High are inclusive integer range columns; each row contributes
	// its weight to every point in the range. Leave both empty for tables
	// keyed by Group alone, addressed with Key.Point 0.
	Low  string
	High string

	Category string
	Weight   string
}

// Conditional is a family of categorical distributions addressed by Key.
// Keys whose rows carried no positive weight are absent, so lookups report
// missing cells instead of returning empty distributions.
type Conditional struct {
	table  string
	groups map[string]*condGroup
}

type condGroup struct {
	points []int // sorted
	dists  map[int]*Marginal
}

type catAcc struct {
	order   []string
	weights map[string]float64
}

// NewConditional expands every row of [tbl] over its inclusive range,
// merging duplicate (key, category) weights additively.
func NewConditional(tbl *tables.Table, cols ConditionalColumns) (*Conditional, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}

	groupCols := make([][]string, len(cols.Groups))
	for i, g := range cols.Groups {
		groupCols[i] = tbl.Strings(g)
	}
	var low, high []int
	if cols.Low != "" {
		low = tbl.Ints(cols.Low)
		high = tbl.Ints(cols.High)
	}
	categories := tbl.Strings(cols.Category)
	weights := tbl.Floats(cols.Weight)

	acc := make(map[Key]*catAcc)
	for row := 0; row < tbl.Len(); row++ {
		w := weights[row]
		if reason, ok := usableWeight(w); !ok {
			report.skip(row, reason)
			continue
		}
		cat := categories[row]
		if cat == "" {
			report.skip(row, "empty category")
			continue
		}

		parts := make([]string, len(groupCols))
		for i, col := range groupCols {
			parts[i] = col[row]
		}
		group := JoinKey(parts...)

		lo, hi := 0, 0
		if low != nil {
			lo, hi = low[row], high[row]
			if hi < lo {
				report.skip(row, "inverted range")
				continue
			}
			if hi-lo > maxRangeSpan {
				report.skip(row, "range too wide")
				continue
			}
		}

		for p := lo; p <= hi; p++ {
			k := Key{Group: group, Point: p}
			a := acc[k]
			if a == nil {
				a = &catAcc{weights: make(map[string]float64)}
				acc[k] = a
			}
			if _, ok := a.weights[cat]; !ok {
				a.order = append(a.order, cat)
			}
			a.weights[cat] += w
		}
	}

	c := &Conditional{
		table:  tbl.Schema().Name,
		groups: make(map[string]*condGroup),
	}
	built := 0
	for k, a := range acc {
		ws := make([]float64, len(a.order))
		for i, cat := range a.order {
			ws[i] = a.weights[cat]
		}
		m, err := newMarginal(a.order, ws)
		if err != nil {
			// The key's total mass is zero; it stays absent.
			continue
		}
		g := c.groups[k.Group]
		if g == nil {
			g = &condGroup{dists: make(map[int]*Marginal)}
			c.groups[k.Group] = g
		}
		g.dists[k.Point] = m
		built++
	}
	if built == 0 {
		return nil, report, fmt.Errorf("%w: %s: no usable entries", tables.ErrConstruction, tbl.Schema().Name)
	}
	for _, g := range c.groups {
		g.points = maps.Keys(g.dists)
		sort.Ints(g.points)
	}
	report.Rows = built
	return c, report, nil
}

// Get returns the distribution at exactly [k].
func (c *Conditional) Get(k Key) (*Marginal, bool) {
	g, ok := c.groups[k.Group]
	if !ok {
		return nil, false
	}
	m, ok := g.dists[k.Point]
	return m, ok
}

// Nearest returns the distribution at the point closest to [k.Point] within
// the key's group, preferring the lower point on ties. It reports false only
// when the group itself is unknown.
func (c *Conditional) Nearest(k Key) (*Marginal, Key, bool) {
	g, ok := c.groups[k.Group]
	if !ok {
		return nil, Key{}, false
	}

	pts := g.points
	i := sort.SearchInts(pts, k.Point)
	switch {
	case i < len(pts) && pts[i] == k.Point:
		// Exact.
	case i == 0:
		// Below the lowest point.
	case i == len(pts):
		i = len(pts) - 1
	default:
		if k.Point-pts[i-1] <= pts[i]-k.Point {
			i--
		}
	}
	resolved := Key{Group: k.Group, Point: pts[i]}
	return g.dists[resolved.Point], resolved, true
}

// Groups returns the known group keys, sorted.
func (c *Conditional) Groups() []string {
	groups := maps.Keys(c.groups)
	slices.Sort(groups)
	return groups
}

// Points returns the sorted points of [group]. The caller must not modify
// the result.
func (c *Conditional) Points(group string) []int {
	g, ok := c.groups[group]
	if !ok {
		return nil
	}
	return g.points
}
