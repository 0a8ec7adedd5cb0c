// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package normalize

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// motMonths are the complete monthly result files; the year-end extract is
// truncated mid-December and would skew the averages.
var motMonths = []string{
	"test_result_202407.csv",
	"test_result_202408.csv",
	"test_result_202409.csv",
}

const motSubdir = "MOT testing data results (2024)"

const (
	motMinAge, motMaxAge         = 3, 30
	motMinMileage, motMaxMileage = 100, 300_000
)

// welford accumulates a running mean and variance.
type welford struct {
	n    float64
	mean float64
	m2   float64
}

func (w *welford) observe(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / w.n
	w.m2 += delta * (x - w.mean)
}

func (w *welford) std() float64 {
	if w.n < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / (w.n - 1))
}

// processMOT streams the MOT test results into the two canonical mileage
// tables: odometer reading by vehicle age, and the per-year estimate
// (odometer over age). Ages under 3 never appear because vehicles are only
// tested from their third year; the banded index clamps younger vehicles to
// the age-3 parameters.
func processMOT(ctx context.Context, env Env) error {
	dir := filepath.Join(env.RawDir, "mot", motSubdir)

	odometer := map[int]*welford{}
	annual := map[int]*welford{}
	records := 0
	for _, name := range motMonths {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			env.Log.Warn("mot month missing", zap.String("file", name))
			continue
		}
		n, err := accumulateMOTFile(ctx, path, odometer, annual)
		if err != nil {
			return fmt.Errorf("%s: %s", name, err)
		}
		records += n
		env.Log.Debug("mot month read", zap.String("file", name), zap.Int("records", n))
	}
	if records == 0 {
		return fmt.Errorf("%w: %s", errNoDataRows, dir)
	}

	if err := writeMileageTable(env, tables.MileageByAge, odometer); err != nil {
		return err
	}
	if err := writeMileageTable(env, tables.AnnualMileageByAge, annual); err != nil {
		return err
	}
	env.Log.Info("mileage normalized",
		zap.Int("records", records),
		zap.Int("ages", len(odometer)),
	)
	return nil
}

func accumulateMOTFile(ctx context.Context, path string, odometer, annual map[int]*welford) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	header, err := r.Read()
	if err != nil {
		return 0, err
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"test_mileage", "first_use_date", "test_date"} {
		if _, ok := cols[required]; !ok {
			return 0, fmt.Errorf("%w: missing column %q", errNoHeader, required)
		}
	}

	kept := 0
	for rows := 0; ; rows++ {
		if rows%100_000 == 0 {
			if err := ctx.Err(); err != nil {
				return kept, err
			}
		}
		record, err := r.Read()
		if err == io.EOF {
			return kept, nil
		}
		if err != nil {
			continue
		}

		mileage, err := strconv.ParseFloat(cell(record, cols["test_mileage"]), 64)
		if err != nil || mileage < motMinMileage || mileage > motMaxMileage {
			continue
		}
		firstUse, err := parseMOTDate(cell(record, cols["first_use_date"]))
		if err != nil {
			continue
		}
		tested, err := parseMOTDate(cell(record, cols["test_date"]))
		if err != nil {
			continue
		}

		age := int(math.Round(tested.Sub(firstUse).Hours() / 24 / 365.25))
		if age < motMinAge || age > motMaxAge {
			continue
		}

		if odometer[age] == nil {
			odometer[age] = &welford{}
			annual[age] = &welford{}
		}
		odometer[age].observe(mileage)
		annual[age].observe(mileage / float64(age))
		kept++
	}
}

// parseMOTDate reads the date prefix of a timestamp cell.
func parseMOTDate(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

func writeMileageTable(env Env, schema tables.Schema, byAge map[int]*welford) error {
	ages := make([]int, 0, len(byAge))
	for age := range byAge {
		ages = append(ages, age)
	}
	sort.Ints(ages)

	rows := make([][]string, 0, len(ages))
	for _, age := range ages {
		w := byAge[age]
		rows = append(rows, []string{
			strconv.Itoa(age),
			strconv.FormatFloat(w.mean, 'f', 2, 64),
			strconv.FormatFloat(w.std(), 'f', 2, 64),
		})
	}
	return tables.WriteCSV(filepath.Join(env.OutDir, schema.Filename()), schema, rows)
}
