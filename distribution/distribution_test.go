// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package distribution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

func mustTable(t *testing.T, schema tables.Schema, csv string) *tables.Table {
	t.Helper()

	tbl, report, err := tables.Read(strings.NewReader(csv), schema)
	require.NoError(t, err)
	require.Zero(t, report.Skipped)
	return tbl
}

func TestJoinKey(t *testing.T) {
	require := require.New(t)

	require.Equal("male|married", JoinKey("male", "married"))
	require.Equal("male", JoinKey("male"))
	require.Equal("", JoinKey())
}

func TestReportIssueCap(t *testing.T) {
	require := require.New(t)

	r := &Report{Table: "t"}
	for i := 0; i < 2*maxReportedIssues; i++ {
		r.skip(i, "bad")
	}
	require.Equal(2*maxReportedIssues, r.Skipped)
	require.Len(r.Issues, maxReportedIssues)
}
