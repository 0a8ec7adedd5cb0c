// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package sampler

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PricingFrontier/synthetic-insurance-data/distribution"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// A zero scale collapses both families to a point mass, which pins down the
// parameter wiring without any statistical tolerance.
func TestContinuousDegenerate(t *testing.T) {
	require := require.New(t)

	s := NewStream(1)
	p := distribution.Params{Location: math.Log(8500), Scale: 0}
	for i := 0; i < 10; i++ {
		require.InDelta(8500, Continuous(p, LogNormal, s), 1e-6)
	}

	p = distribution.Params{Location: 7200, Scale: 0}
	for i := 0; i < 10; i++ {
		require.Equal(7200.0, Continuous(p, FlooredNormal, s))
	}
}

func TestContinuousFlooredAtZero(t *testing.T) {
	require := require.New(t)

	// A negative location with no spread always draws below zero, so every
	// sample hits the floor.
	s := NewStream(1)
	p := distribution.Params{Location: -250, Scale: 0}
	for i := 0; i < 10; i++ {
		require.Equal(0.0, Continuous(p, FlooredNormal, s))
	}

	s = NewStream(2)
	p = distribution.Params{Location: 0, Scale: 3}
	for i := 0; i < 1000; i++ {
		require.GreaterOrEqual(Continuous(p, FlooredNormal, s), 0.0)
	}
}

func TestContinuousLogNormalPositive(t *testing.T) {
	require := require.New(t)

	s := NewStream(3)
	p := distribution.Params{Location: 0, Scale: 2}
	for i := 0; i < 1000; i++ {
		require.Greater(Continuous(p, LogNormal, s), 0.0)
	}
}

func TestContinuousDeterminism(t *testing.T) {
	require := require.New(t)

	p := distribution.Params{Location: 8.9, Scale: 0.6}

	a := NewStream(99)
	b := NewStream(99)
	for i := 0; i < 100; i++ {
		require.Equal(Continuous(p, LogNormal, a), Continuous(p, LogNormal, b))
	}
}

func TestBandedSampling(t *testing.T) {
	require := require.New(t)

	schema := tables.Schema{
		Name:    "mileage_by_age",
		Version: 1,
		Columns: []tables.Column{
			tables.IntColumn("vehicle_age"),
			tables.FloatColumn("location"),
			tables.FloatColumn("scale"),
		},
	}
	const csv = "vehicle_age,location,scale\n" +
		"3,3000,0\n" +
		"4,4000,0\n" +
		"5,5000,0\n"
	tbl, loadReport, err := tables.Read(strings.NewReader(csv), schema)
	require.NoError(err)
	require.Zero(loadReport.Skipped)

	idx, buildReport, err := distribution.NewBanded(tbl, "vehicle_age", "location", "scale")
	require.NoError(err)
	require.Zero(buildReport.Skipped)

	s := NewStream(7)
	require.Equal(4000.0, Banded(idx, 4, FlooredNormal, s))

	// Bands outside the covered range clamp to the nearest edge.
	require.Equal(3000.0, Banded(idx, 0, FlooredNormal, s))
	require.Equal(5000.0, Banded(idx, 40, FlooredNormal, s))
}
