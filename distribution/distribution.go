// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package distribution turns canonical tables into immutable, sampler-ready
// indices. Building happens once at startup and may be slow; every structure
// here is read-only afterwards and safe for concurrent lookups.
//
// Construction is strict about the table as a whole and lenient about rows:
// a table that yields no usable entries wraps tables.ErrConstruction, while
// individually bad rows are dropped and surfaced through a Report.
package distribution

import (
	"strings"

	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

const (
	keySep = "|"

	// Bound on the span of a single low..high row, so a corrupt range cannot
	// expand into millions of entries.
	maxRangeSpan = 4096

	maxReportedIssues = 20
)

// Key addresses one cell of a conditional index: the joined categorical
// covariates and an integer point (0 when the table has no range columns).
type Key struct {
	Group string
	Point int
}

// JoinKey builds a composite group key from covariate values.
func JoinKey(parts ...string) string {
	return strings.Join(parts, keySep)
}

// Report records the rows an index builder dropped.
type Report struct {
	Table   string
	Rows    int
	Skipped int
	Issues  []Issue
}

type Issue struct {
	Row    int
	Reason string
}

func (r *Report) skip(row int, reason string) {
	r.Skipped++
	if len(r.Issues) < maxReportedIssues {
		r.Issues = append(r.Issues, Issue{Row: row, Reason: reason})
	}
}

// Warn logs a summary if any rows were dropped.
func (r *Report) Warn(log logging.Logger) {
	if r.Skipped == 0 {
		return
	}
	log.Warn("dropped rows while indexing",
		zap.String("table", r.Table),
		zap.Int("kept", r.Rows),
		zap.Int("skipped", r.Skipped),
	)
	for _, issue := range r.Issues {
		log.Debug("dropped row",
			zap.String("table", r.Table),
			zap.Int("row", issue.Row),
			zap.String("reason", issue.Reason),
		)
	}
}
