// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generator

import (
	safemath "github.com/PricingFrontier/synthetic-insurance-data/utils/math"
)

// ratingGroup estimates the 1-50 insurance group from value, engine size,
// and fuel. Real groups come from Thatcham research; this banding only needs
// to correlate plausibly with the rest of the record.
func ratingGroup(value, engineCC int, fuel string) int {
	var group int
	switch {
	case value < 5_000:
		group = 6
	case value < 10_000:
		group = 12
	case value < 15_000:
		group = 18
	case value < 20_000:
		group = 22
	case value < 30_000:
		group = 28
	case value < 40_000:
		group = 33
	case value < 50_000:
		group = 38
	default:
		group = 43
	}

	switch {
	case engineCC > 2_000:
		group += 3
	case engineCC > 1_500:
		group++
	}

	// Electric drivetrains group a little lower than their value suggests.
	if fuel == "electric" || fuel == "plug_in_hybrid" {
		group -= 3
	}

	return safemath.Clamp(group, 1, 50)
}
