// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"fmt"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// Subsets partitions the rows of a reference table by a key column, so a
// draw can be restricted to the rows sharing a key.
type Subsets struct {
	keys  []string
	byKey map[string][]int
	all   []int
}

func NewSubsets(tbl *tables.Table, keyCol string) (*Subsets, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}
	keys := tbl.Strings(keyCol)

	s := &Subsets{byKey: make(map[string][]int)}
	for row, key := range keys {
		if key == "" {
			report.skip(row, "empty key")
			continue
		}
		if _, ok := s.byKey[key]; !ok {
			s.keys = append(s.keys, key)
		}
		s.byKey[key] = append(s.byKey[key], row)
		s.all = append(s.all, row)
	}
	if len(s.all) == 0 {
		return nil, report, fmt.Errorf("%w: %s: no usable rows", tables.ErrConstruction, tbl.Schema().Name)
	}
	report.Rows = len(s.all)
	return s, report, nil
}

// Keys returns the subset keys in table order. The caller must not modify
// the result.
func (s *Subsets) Keys() []string {
	return s.keys
}

// Get returns the rows of the subset named [key]. Present keys always have
// at least one row.
func (s *Subsets) Get(key string) ([]int, bool) {
	rows, ok := s.byKey[key]
	return rows, ok
}

// All returns every indexed row, for draws not restricted to one subset.
func (s *Subsets) All() []int {
	return s.all
}

// Len is the number of rows across all subsets.
func (s *Subsets) Len() int {
	return len(s.all)
}
