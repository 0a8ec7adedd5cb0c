// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

var bandedSchema = tables.Schema{
	Name:    "banded",
	Version: 1,
	Columns: []tables.Column{
		tables.IntColumn("band"),
		tables.FloatColumn("location"),
		tables.FloatColumn("scale"),
	},
}

var ratesSchema = tables.Schema{
	Name:    "rates",
	Version: 1,
	Columns: []tables.Column{
		tables.IntColumn("low"),
		tables.IntColumn("high"),
		tables.FloatColumn("rate"),
	},
}

func TestBandedClampAndFill(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, bandedSchema,
		"band,location,scale\n"+
			"1,10,1\n"+
			"4,40,4\n",
	)
	b, report, err := NewBanded(tbl, "band", "location", "scale")
	require.NoError(err)
	require.Zero(report.Skipped)
	require.Equal(1, b.Min())
	require.Equal(4, b.Max())

	// Gap bands borrow from the nearest observed band.
	require.Equal(Params{Location: 10, Scale: 1}, b.At(2))
	require.Equal(Params{Location: 40, Scale: 4}, b.At(3))

	// Lookups outside the covered range clamp.
	require.Equal(Params{Location: 10, Scale: 1}, b.At(-5))
	require.Equal(Params{Location: 40, Scale: 4}, b.At(99))
}

func TestBandedSkipsBadRows(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, bandedSchema,
		"band,location,scale\n"+
			"1,10,1\n"+
			"1,11,1\n"+
			"2,20,-1\n",
	)
	b, report, err := NewBanded(tbl, "band", "location", "scale")
	require.NoError(err)
	require.Equal(2, report.Skipped)
	require.Equal(Params{Location: 10, Scale: 1}, b.At(1))
	// Band 2's only row was unusable, so it borrows band 1.
	require.Equal(Params{Location: 10, Scale: 1}, b.At(2))
}

func TestBandedEmpty(t *testing.T) {
	tbl := mustTable(t, bandedSchema, "band,location,scale\n")
	_, _, err := NewBanded(tbl, "band", "location", "scale")
	require.ErrorIs(t, err, tables.ErrConstruction)
}

func TestRatesExpansionAndClamp(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, ratesSchema,
		"low,high,rate\n"+
			"17,25,0.2\n"+
			"26,60,0.1\n",
	)
	r, report, err := NewRates(tbl, "low", "high", "rate")
	require.NoError(err)
	require.Zero(report.Skipped)

	require.InDelta(0.2, r.At(17), 1e-9)
	require.InDelta(0.2, r.At(25), 1e-9)
	require.InDelta(0.1, r.At(26), 1e-9)

	// Outside the covered range clamps to the nearest edge.
	require.InDelta(0.2, r.At(10), 1e-9)
	require.InDelta(0.1, r.At(90), 1e-9)
}

func TestRatesOverlapLaterWins(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, ratesSchema,
		"low,high,rate\n"+
			"17,30,0.2\n"+
			"25,30,0.5\n",
	)
	r, _, err := NewRates(tbl, "low", "high", "rate")
	require.NoError(err)
	require.InDelta(0.2, r.At(24), 1e-9)
	require.InDelta(0.5, r.At(25), 1e-9)
}

func TestRatesRejectsOutOfRange(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, ratesSchema,
		"low,high,rate\n"+
			"17,25,1.5\n"+
			"26,60,0.1\n",
	)
	r, report, err := NewRates(tbl, "low", "high", "rate")
	require.NoError(err)
	require.Equal(1, report.Skipped)
	// The dropped range's bands borrow from the surviving one via clamping.
	require.InDelta(0.1, r.At(20), 1e-9)
}

func TestParamSet(t *testing.T) {
	require := require.New(t)

	schema := tables.Schema{
		Name:    "claim_amounts",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("claim_type"),
			tables.FloatColumn("location"),
			tables.FloatColumn("scale"),
		},
	}
	tbl := mustTable(t, schema,
		"claim_type,location,scale\n"+
			"windscreen,6.0,0.4\n"+
			"theft,8.2,0.9\n",
	)
	p, report, err := NewParamSet(tbl, "claim_type", "location", "scale")
	require.NoError(err)
	require.Zero(report.Skipped)

	params, ok := p.Get("theft")
	require.True(ok)
	require.Equal(Params{Location: 8.2, Scale: 0.9}, params)

	_, ok = p.Get("flood")
	require.False(ok)
}

func TestRateSet(t *testing.T) {
	require := require.New(t)

	schema := tables.Schema{
		Name:    "addon_rates",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("add_on"),
			tables.FloatColumn("rate"),
		},
	}
	tbl := mustTable(t, schema,
		"add_on,rate\n"+
			"breakdown_cover,0.4\n"+
			"legal_expenses,0.3\n",
	)
	rs, report, err := NewRateSet(tbl, "add_on", "rate")
	require.NoError(err)
	require.Zero(report.Skipped)

	require.Equal([]string{"breakdown_cover", "legal_expenses"}, rs.Keys())
	rate, ok := rs.Get("breakdown_cover")
	require.True(ok)
	require.InDelta(0.4, rate, 1e-9)
}
