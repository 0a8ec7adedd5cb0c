// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"errors"
	"fmt"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

var errNoMass = errors.New("no positive weight")

// Marginal is an unconditional categorical distribution.
type Marginal struct {
	categories []string
	cum        []float64
	slots      map[string]int
	total      float64
}

// newMarginal builds the cumulative index over [categories], which must be
// unique and aligned with [weights]. Zero-weight categories are dropped from
// the support.
func newMarginal(categories []string, weights []float64) (*Marginal, error) {
	kept := make([]string, 0, len(categories))
	keptWeights := make([]float64, 0, len(weights))
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		kept = append(kept, categories[i])
		keptWeights = append(keptWeights, w)
	}

	cum, total, ok := newCDF(keptWeights)
	if !ok {
		return nil, errNoMass
	}

	slots := make(map[string]int, len(kept))
	for i, cat := range kept {
		slots[cat] = i
	}
	return &Marginal{
		categories: kept,
		cum:        cum,
		slots:      slots,
		total:      total,
	}, nil
}

// NewMarginal indexes the (category, weight) pairs of [tbl]. Weights of
// duplicate categories merge additively. Rows with unusable weights are
// dropped and reported.
func NewMarginal(tbl *tables.Table, categoryCol, weightCol string) (*Marginal, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}
	categories := tbl.Strings(categoryCol)
	weights := tbl.Floats(weightCol)

	var (
		order []string
		byCat = make(map[string]float64, len(categories))
	)
	for row, cat := range categories {
		w := weights[row]
		if reason, ok := usableWeight(w); !ok {
			report.skip(row, reason)
			continue
		}
		if cat == "" {
			report.skip(row, "empty category")
			continue
		}
		if _, ok := byCat[cat]; !ok {
			order = append(order, cat)
		}
		byCat[cat] += w
	}

	merged := make([]float64, len(order))
	for i, cat := range order {
		merged[i] = byCat[cat]
	}
	m, err := newMarginal(order, merged)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %s", tables.ErrConstruction, tbl.Schema().Name, err)
	}
	report.Rows = len(order)
	return m, report, nil
}

func (m *Marginal) Len() int {
	return len(m.categories)
}

// Categories returns the support in insertion order. The caller must not
// modify it.
func (m *Marginal) Categories() []string {
	return m.categories
}

// Total is the sum of the usable weights before normalization.
func (m *Marginal) Total() float64 {
	return m.total
}

// Weight returns the normalized probability of [category], 0 if absent.
func (m *Marginal) Weight(category string) float64 {
	i, ok := m.slots[category]
	if !ok {
		return 0
	}
	if i == 0 {
		return m.cum[0]
	}
	return m.cum[i] - m.cum[i-1]
}

// Locate maps a uniform draw in [0, 1) to a category.
func (m *Marginal) Locate(u float64) string {
	return m.categories[locate(m.cum, u)]
}
