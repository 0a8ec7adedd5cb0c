// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"fmt"
	"math"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
	safemath "github.com/PricingFrontier/synthetic-insurance-data/utils/math"
)

// Params are the fitted (location, scale) of one continuous distribution.
// Their interpretation belongs to the sampler family drawing from them.
type Params struct {
	Location float64
	Scale    float64
}

func usableParams(loc, scale float64) (string, bool) {
	switch {
	case math.IsNaN(loc) || math.IsInf(loc, 0) || math.IsNaN(scale) || math.IsInf(scale, 0):
		return "parameter is not finite", false
	case scale < 0:
		return "negative scale", false
	default:
		return "", true
	}
}

// Banded maps an integer band to fitted continuous parameters. The band axis
// is dense: gaps between observed bands are filled from the nearest observed
// band (lower band preferred on ties) and lookups clamp to the covered
// range, so At is total.
type Banded struct {
	min, max int
	params   []Params
}

// NewBanded indexes [tbl] band by band. Duplicate bands keep the first
// usable row.
func NewBanded(tbl *tables.Table, bandCol, locCol, scaleCol string) (*Banded, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}
	bands := tbl.Ints(bandCol)
	locs := tbl.Floats(locCol)
	scales := tbl.Floats(scaleCol)

	observed := make(map[int]Params, len(bands))
	min, max := 0, 0
	for row, band := range bands {
		if reason, ok := usableParams(locs[row], scales[row]); !ok {
			report.skip(row, reason)
			continue
		}
		if _, ok := observed[band]; ok {
			report.skip(row, "duplicate band")
			continue
		}
		if len(observed) == 0 {
			min, max = band, band
		} else {
			min = safemath.Min(min, band)
			max = safemath.Max(max, band)
		}
		observed[band] = Params{Location: locs[row], Scale: scales[row]}
	}
	if len(observed) == 0 {
		return nil, report, fmt.Errorf("%w: %s: no usable bands", tables.ErrConstruction, tbl.Schema().Name)
	}

	params := make([]Params, max-min+1)
	for band := min; band <= max; band++ {
		params[band-min] = nearestParams(observed, band, min, max)
	}
	report.Rows = len(observed)
	return &Banded{min: min, max: max, params: params}, report, nil
}

func nearestParams(observed map[int]Params, band, min, max int) Params {
	if p, ok := observed[band]; ok {
		return p
	}
	for d := 1; ; d++ {
		if band-d >= min {
			if p, ok := observed[band-d]; ok {
				return p
			}
		}
		if band+d <= max {
			if p, ok := observed[band+d]; ok {
				return p
			}
		}
	}
}

func (b *Banded) Min() int {
	return b.min
}

func (b *Banded) Max() int {
	return b.max
}

// At returns the parameters of [band], clamped to the covered range.
func (b *Banded) At(band int) Params {
	return b.params[safemath.Clamp(band, b.min, b.max)-b.min]
}

// ParamSet maps a string key to fitted continuous parameters.
type ParamSet struct {
	params map[string]Params
}

func NewParamSet(tbl *tables.Table, keyCol, locCol, scaleCol string) (*ParamSet, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}
	keys := tbl.Strings(keyCol)
	locs := tbl.Floats(locCol)
	scales := tbl.Floats(scaleCol)

	params := make(map[string]Params, len(keys))
	for row, key := range keys {
		if reason, ok := usableParams(locs[row], scales[row]); !ok {
			report.skip(row, reason)
			continue
		}
		if key == "" {
			report.skip(row, "empty key")
			continue
		}
		if _, ok := params[key]; ok {
			report.skip(row, "duplicate key")
			continue
		}
		params[key] = Params{Location: locs[row], Scale: scales[row]}
	}
	if len(params) == 0 {
		return nil, report, fmt.Errorf("%w: %s: no usable keys", tables.ErrConstruction, tbl.Schema().Name)
	}
	report.Rows = len(params)
	return &ParamSet{params: params}, report, nil
}

func (p *ParamSet) Get(key string) (Params, bool) {
	params, ok := p.params[key]
	return params, ok
}

// Rates maps an integer band to a probability in [0, 1], with the same dense
// fill-and-clamp behavior as Banded.
type Rates struct {
	min, max int
	rates    []float64
}

// NewRates expands each (low, high, rate) row over its inclusive range.
// Overlapping rows are resolved in favor of the later row.
func NewRates(tbl *tables.Table, lowCol, highCol, rateCol string) (*Rates, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}
	lows := tbl.Ints(lowCol)
	highs := tbl.Ints(highCol)
	rates := tbl.Floats(rateCol)

	observed := make(map[int]float64)
	min, max := 0, 0
	for row, lo := range lows {
		hi := highs[row]
		rate := rates[row]
		switch {
		case math.IsNaN(rate) || rate < 0 || rate > 1:
			report.skip(row, "rate outside [0, 1]")
			continue
		case hi < lo:
			report.skip(row, "inverted range")
			continue
		case hi-lo > maxRangeSpan:
			report.skip(row, "range too wide")
			continue
		}
		if len(observed) == 0 {
			min, max = lo, hi
		} else {
			min = safemath.Min(min, lo)
			max = safemath.Max(max, hi)
		}
		for band := lo; band <= hi; band++ {
			observed[band] = rate
		}
	}
	if len(observed) == 0 {
		return nil, report, fmt.Errorf("%w: %s: no usable bands", tables.ErrConstruction, tbl.Schema().Name)
	}

	dense := make([]float64, max-min+1)
	for band := min; band <= max; band++ {
		dense[band-min] = nearestRate(observed, band, min, max)
	}
	report.Rows = len(observed)
	return &Rates{min: min, max: max, rates: dense}, report, nil
}

func nearestRate(observed map[int]float64, band, min, max int) float64 {
	if r, ok := observed[band]; ok {
		return r
	}
	for d := 1; ; d++ {
		if band-d >= min {
			if r, ok := observed[band-d]; ok {
				return r
			}
		}
		if band+d <= max {
			if r, ok := observed[band+d]; ok {
				return r
			}
		}
	}
}

// At returns the rate of [band], clamped to the covered range.
func (r *Rates) At(band int) float64 {
	return r.rates[safemath.Clamp(band, r.min, r.max)-r.min]
}

// RateSet maps a string key to a probability in [0, 1], preserving key
// insertion order for iteration.
type RateSet struct {
	keys  []string
	rates map[string]float64
}

func NewRateSet(tbl *tables.Table, keyCol, rateCol string) (*RateSet, *Report, error) {
	report := &Report{Table: tbl.Schema().Name}
	keys := tbl.Strings(keyCol)
	rates := tbl.Floats(rateCol)

	rs := &RateSet{rates: make(map[string]float64, len(keys))}
	for row, key := range keys {
		rate := rates[row]
		switch {
		case math.IsNaN(rate) || rate < 0 || rate > 1:
			report.skip(row, "rate outside [0, 1]")
			continue
		case key == "":
			report.skip(row, "empty key")
			continue
		}
		if _, ok := rs.rates[key]; ok {
			report.skip(row, "duplicate key")
			continue
		}
		rs.keys = append(rs.keys, key)
		rs.rates[key] = rate
	}
	if len(rs.keys) == 0 {
		return nil, report, fmt.Errorf("%w: %s: no usable keys", tables.ErrConstruction, tbl.Schema().Name)
	}
	report.Rows = len(rs.keys)
	return rs, report, nil
}

// Keys returns the keys in table order. The caller must not modify the
// result.
func (r *RateSet) Keys() []string {
	return r.keys
}

func (r *RateSet) Get(key string) (float64, bool) {
	rate, ok := r.rates[key]
	return rate, ok
}
