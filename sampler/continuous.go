// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/PricingFrontier/synthetic-insurance-data/distribution"
)

// Family selects the continuous distribution a Params pair describes.
type Family int

const (
	// LogNormal reads Params as the location and sigma of log-value. Draws
	// are strictly positive.
	LogNormal Family = iota

	// FlooredNormal reads Params as mean and sigma, with draws clamped to
	// zero from below.
	FlooredNormal
)

// Continuous draws one value from [p] under [family].
func Continuous(p distribution.Params, family Family, s *Stream) float64 {
	switch family {
	case LogNormal:
		return distuv.LogNormal{Mu: p.Location, Sigma: p.Scale, Src: s.Source()}.Rand()
	default:
		v := distuv.Normal{Mu: p.Location, Sigma: p.Scale, Src: s.Source()}.Rand()
		if v < 0 {
			v = 0
		}
		return v
	}
}

// Banded draws from the fitted parameters of [band], which the index clamps
// to its covered range.
func Banded(b *distribution.Banded, band int, family Family, s *Stream) float64 {
	return Continuous(b.At(band), family, s)
}
