// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package normalize turns raw public releases into the canonical tables the
// generator loads. All header sniffing and column-position guessing lives
// here; the canonical files carry exact headers so nothing downstream ever
// infers column meaning.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

var (
	errUnknownProcessor = errors.New("unknown processor")
	errNoHeader         = errors.New("header row not found")
	errNoDataRows       = errors.New("no usable data rows")
)

// Env carries the directories and logger a processor run needs.
type Env struct {
	// RawDir holds the fetched source files.
	RawDir string

	// OutDir receives the canonical CSVs.
	OutDir string

	Log logging.Logger
}

// Processor converts one raw source into canonical tables.
type Processor struct {
	// Name is the key used by the process command.
	Name string

	// Output names the canonical tables written, for run summaries.
	Output string

	Run func(ctx context.Context, env Env) error
}

// All returns the processors in run order.
func All() []Processor {
	return []Processor{
		{Name: "postcodes", Output: "postcodes", Run: processPostcodes},
		{Name: "licences", Output: "driver_age_sex", Run: processLicences},
		{Name: "maritalstatus", Output: "marital_status", Run: processMaritalStatus},
		{Name: "occupations", Output: "occupations", Run: processOccupations},
		{Name: "babynames", Output: "first_names", Run: processBabyNames},
		{Name: "vehicles", Output: "vehicle_fleet", Run: processVehicles},
		{Name: "claims", Output: "claim_rates", Run: processClaims},
		{Name: "mot", Output: "mileage_by_age, annual_mileage_by_age", Run: processMOT},
	}
}

// Status records the outcome of one processor in a run.
type Status struct {
	Processor string
	Err       error
	Elapsed   time.Duration
}

// Run executes each named processor, or all of them when [names] is empty.
// A processor failure is recorded and the run continues; cancellation stops
// it. One entry per attempted processor is returned.
func Run(ctx context.Context, env Env, names []string) ([]Status, error) {
	all := All()
	var selected []Processor
	if len(names) == 0 {
		selected = all
	} else {
		byName := make(map[string]Processor, len(all))
		for _, p := range all {
			byName[p.Name] = p
		}
		for _, name := range names {
			p, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", errUnknownProcessor, name)
			}
			selected = append(selected, p)
		}
	}

	var (
		statuses []Status
		failed   int
	)
	for _, p := range selected {
		if err := ctx.Err(); err != nil {
			return statuses, err
		}

		env.Log.Info("processing source",
			zap.String("processor", p.Name),
			zap.String("output", p.Output),
		)
		start := time.Now()
		err := p.Run(ctx, env)
		elapsed := time.Since(start)
		statuses = append(statuses, Status{Processor: p.Name, Err: err, Elapsed: elapsed})
		if err != nil {
			if ctx.Err() != nil {
				return statuses, ctx.Err()
			}
			failed++
			env.Log.Warn("processor failed",
				zap.String("processor", p.Name),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
			continue
		}
		env.Log.Info("processor finished",
			zap.String("processor", p.Name),
			zap.Duration("elapsed", elapsed),
		)
	}

	env.Log.Info("process run complete",
		zap.Int("succeeded", len(statuses)-failed),
		zap.Int("failed", failed),
	)
	return statuses, nil
}

// snakeCase lowercases [s] and joins alphanumeric runs with underscores, so
// published labels become stable categorical keys.
func snakeCase(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
