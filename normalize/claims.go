// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package normalize

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/datasets"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// claimAgeLows are the driver-age band edges; each band runs to the next
// edge exclusive, with the last capped at 100.
var claimAgeLows = []int{17, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 75}

// processClaims derives the canonical per-age claim rate from the freMTPL2
// frequency dataset: exposure-weighted claims per policy-year in each driver
// age band. The severity dataset, when present, gets a log-normal fit logged
// for calibrating the assumption amount parameters.
func processClaims(ctx context.Context, env Env) error {
	freqFile := datasets.Filename("fremtpl2_freq")
	freq, err := openARFF(filepath.Join(env.RawDir, freqFile))
	if err != nil {
		return err
	}
	defer freq.Close()

	ageCol := freq.Column("DrivAge")
	claimsCol := freq.Column("ClaimNb")
	exposureCol := freq.Column("Exposure")
	if ageCol < 0 || claimsCol < 0 || exposureCol < 0 {
		return fmt.Errorf("%w: %s lacks DrivAge/ClaimNb/Exposure", errNoHeader, freqFile)
	}

	claims := make([]float64, len(claimAgeLows))
	exposure := make([]float64, len(claimAgeLows))
	policies := 0
	for rows := 0; ; rows++ {
		if rows%50_000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		record, ok := freq.Next()
		if !ok {
			break
		}
		age, errA := strconv.Atoi(field(record, ageCol))
		n, errN := strconv.ParseFloat(field(record, claimsCol), 64)
		exp, errE := strconv.ParseFloat(field(record, exposureCol), 64)
		if errA != nil || errN != nil || errE != nil || exp <= 0 {
			continue
		}
		band := ageBand(age)
		if band < 0 {
			continue
		}
		claims[band] += n
		exposure[band] += exp
		policies++
	}
	if policies == 0 {
		return fmt.Errorf("%w: %s", errNoDataRows, freqFile)
	}

	var outRows [][]string
	for i, lo := range claimAgeLows {
		if exposure[i] == 0 {
			continue
		}
		hi := 100
		if i+1 < len(claimAgeLows) {
			hi = claimAgeLows[i+1] - 1
		}
		// An exposure-weighted rate can nudge past 1 in a sparse band; the
		// builders reject rates outside [0, 1].
		rate := math.Min(claims[i]/exposure[i], 1)
		outRows = append(outRows, []string{
			strconv.Itoa(lo),
			strconv.Itoa(hi),
			strconv.FormatFloat(rate, 'f', 6, 64),
		})
	}

	path := filepath.Join(env.OutDir, tables.ClaimRates.Filename())
	if err := tables.WriteCSV(path, tables.ClaimRates, outRows); err != nil {
		return err
	}
	env.Log.Info("claim rates normalized",
		zap.Int("policies", policies),
		zap.Int("bands", len(outRows)),
	)

	logSeverityFit(env)
	return nil
}

// logSeverityFit fits a log-normal to the severity dataset when it is
// present. The fit is informational; amount parameters ship as assumptions.
func logSeverityFit(env Env) {
	sevFile := datasets.Filename("fremtpl2_sev")
	path := filepath.Join(env.RawDir, sevFile)
	if _, err := os.Stat(path); err != nil {
		env.Log.Warn("severity dataset missing, skipping fit", zap.String("file", sevFile))
		return
	}
	sev, err := openARFF(path)
	if err != nil {
		env.Log.Warn("severity dataset unreadable", zap.Error(err))
		return
	}
	defer sev.Close()

	amountCol := sev.Column("ClaimAmount")
	if amountCol < 0 {
		env.Log.Warn("severity dataset lacks ClaimAmount")
		return
	}

	// Welford accumulation of log-amounts.
	var n, mean, m2 float64
	for {
		record, ok := sev.Next()
		if !ok {
			break
		}
		amount, err := strconv.ParseFloat(field(record, amountCol), 64)
		if err != nil || amount <= 0 {
			continue
		}
		x := math.Log(amount)
		n++
		delta := x - mean
		mean += delta / n
		m2 += delta * (x - mean)
	}
	if n < 2 {
		return
	}
	env.Log.Info("severity log-normal fit",
		zap.Float64("location", mean),
		zap.Float64("scale", math.Sqrt(m2/(n-1))),
		zap.Int("claims", int(n)),
	)
}

func ageBand(age int) int {
	if age < claimAgeLows[0] || age > 100 {
		return -1
	}
	band := 0
	for i, lo := range claimAgeLows {
		if age >= lo {
			band = i
		}
	}
	return band
}

// field returns record[i] or "" when the record is short.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
