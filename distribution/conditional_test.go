// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

var rangedSchema = tables.Schema{
	Name:    "ranged",
	Version: 1,
	Columns: []tables.Column{
		tables.StringColumn("sex"),
		tables.IntColumn("age_low"),
		tables.IntColumn("age_high"),
		tables.StringColumn("category"),
		tables.FloatColumn("weight"),
	},
}

var rangedColumns = ConditionalColumns{
	Groups:   []string{"sex"},
	Low:      "age_low",
	High:     "age_high",
	Category: "category",
	Weight:   "weight",
}

func TestConditionalRangeExpansion(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, rangedSchema,
		"sex,age_low,age_high,category,weight\n"+
			"male,17,25,single,0.9\n"+
			"male,17,25,married,0.1\n",
	)
	c, report, err := NewConditional(tbl, rangedColumns)
	require.NoError(err)
	require.Zero(report.Skipped)

	// One cell per integer in the inclusive range.
	require.Equal([]int{17, 18, 19, 20, 21, 22, 23, 24, 25}, c.Points("male"))
	for age := 17; age <= 25; age++ {
		m, ok := c.Get(Key{Group: "male", Point: age})
		require.True(ok)
		require.InDelta(0.9, m.Weight("single"), 1e-9)
		require.InDelta(0.1, m.Weight("married"), 1e-9)
	}

	_, ok := c.Get(Key{Group: "male", Point: 16})
	require.False(ok)
	_, ok = c.Get(Key{Group: "male", Point: 26})
	require.False(ok)
	_, ok = c.Get(Key{Group: "female", Point: 20})
	require.False(ok)
}

func TestConditionalMergesOverlappingRanges(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, rangedSchema,
		"sex,age_low,age_high,category,weight\n"+
			"male,17,20,single,1\n"+
			"male,19,22,single,2\n"+
			"male,17,22,married,1\n",
	)
	c, _, err := NewConditional(tbl, rangedColumns)
	require.NoError(err)

	// Age 18 sees only the first row; age 19 sees both merged.
	m18, ok := c.Get(Key{Group: "male", Point: 18})
	require.True(ok)
	require.InDelta(0.5, m18.Weight("single"), 1e-9)

	m19, ok := c.Get(Key{Group: "male", Point: 19})
	require.True(ok)
	require.InDelta(0.75, m19.Weight("single"), 1e-9)
}

func TestConditionalZeroMassKeyAbsent(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, rangedSchema,
		"sex,age_low,age_high,category,weight\n"+
			"male,17,17,single,0\n"+
			"male,18,18,single,1\n",
	)
	c, _, err := NewConditional(tbl, rangedColumns)
	require.NoError(err)

	_, ok := c.Get(Key{Group: "male", Point: 17})
	require.False(ok)
	require.Equal([]int{18}, c.Points("male"))
}

func TestConditionalSkipsBadRows(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, rangedSchema,
		"sex,age_low,age_high,category,weight\n"+
			"male,25,17,single,1\n"+
			"male,17,17,single,-2\n"+
			"male,17,17,,1\n"+
			"male,18,18,single,1\n",
	)
	c, report, err := NewConditional(tbl, rangedColumns)
	require.NoError(err)
	require.Equal(3, report.Skipped)
	require.Equal([]int{18}, c.Points("male"))
}

func TestConditionalAllRowsBad(t *testing.T) {
	tbl := mustTable(t, rangedSchema,
		"sex,age_low,age_high,category,weight\n"+
			"male,25,17,single,1\n",
	)
	_, _, err := NewConditional(tbl, rangedColumns)
	require.ErrorIs(t, err, tables.ErrConstruction)
}

func TestConditionalNearest(t *testing.T) {
	require := require.New(t)

	tbl := mustTable(t, rangedSchema,
		"sex,age_low,age_high,category,weight\n"+
			"male,20,24,single,1\n"+
			"male,30,34,married,1\n",
	)
	c, _, err := NewConditional(tbl, rangedColumns)
	require.NoError(err)

	// Below the covered range clamps to the lowest point.
	m, k, ok := c.Nearest(Key{Group: "male", Point: 17})
	require.True(ok)
	require.Equal(Key{Group: "male", Point: 20}, k)
	require.InDelta(1, m.Weight("single"), 1e-9)

	// Above the covered range clamps to the highest point.
	_, k, ok = c.Nearest(Key{Group: "male", Point: 60})
	require.True(ok)
	require.Equal(Key{Group: "male", Point: 34}, k)

	// 27 is equidistant from 24 and 30; ties prefer the lower point.
	_, k, ok = c.Nearest(Key{Group: "male", Point: 27})
	require.True(ok)
	require.Equal(Key{Group: "male", Point: 24}, k)

	// 28 is strictly closer to 30.
	_, k, ok = c.Nearest(Key{Group: "male", Point: 28})
	require.True(ok)
	require.Equal(Key{Group: "male", Point: 30}, k)

	// Exact points resolve to themselves.
	_, k, ok = c.Nearest(Key{Group: "male", Point: 22})
	require.True(ok)
	require.Equal(Key{Group: "male", Point: 22}, k)

	// Unknown groups cannot widen.
	_, _, ok = c.Nearest(Key{Group: "female", Point: 20})
	require.False(ok)
}

func TestConditionalWithoutRanges(t *testing.T) {
	require := require.New(t)

	schema := tables.Schema{
		Name:    "titles",
		Version: 1,
		Columns: []tables.Column{
			tables.StringColumn("sex"),
			tables.StringColumn("marital_status"),
			tables.StringColumn("category"),
			tables.FloatColumn("weight"),
		},
	}
	tbl := mustTable(t, schema,
		"sex,marital_status,category,weight\n"+
			"female,married,mrs,0.7\n"+
			"female,married,ms,0.3\n"+
			"male,married,mr,1.0\n",
	)
	c, _, err := NewConditional(tbl, ConditionalColumns{
		Groups:   []string{"sex", "marital_status"},
		Category: "category",
		Weight:   "weight",
	})
	require.NoError(err)

	require.Equal([]string{"female|married", "male|married"}, c.Groups())

	m, ok := c.Get(Key{Group: JoinKey("female", "married")})
	require.True(ok)
	require.InDelta(0.7, m.Weight("mrs"), 1e-9)
	require.Equal([]int{0}, c.Points("female|married"))
}
