// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package normalize

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/datasets"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// quarterPattern matches DfT quarter columns like "2025 Q2". The newest
// quarter is published leftmost.
var quarterPattern = regexp.MustCompile(`^\d{4} Q\d$`)

// fuelNames folds DfT fuel labels onto the canonical fuel keys. Engine
// sizes are only sampled for petrol and diesel, and the rating-group offset
// keys on electric and plug_in_hybrid, so these spellings are load-bearing.
func fuelName(raw string) string {
	switch l := strings.ToLower(strings.TrimSpace(raw)); {
	case l == "petrol":
		return "petrol"
	case l == "diesel":
		return "diesel"
	case strings.Contains(l, "battery electric"), strings.Contains(l, "range extended"):
		return "electric"
	case strings.Contains(l, "plug-in hybrid"):
		return "plug_in_hybrid"
	case strings.Contains(l, "hybrid"):
		return "hybrid"
	case l == "gas", strings.Contains(l, "lpg"):
		return "gas"
	default:
		return "other"
	}
}

// processVehicles streams the VEH0120 make/model/fuel release into the
// canonical fleet table, keeping licensed cars in the latest quarter.
func processVehicles(ctx context.Context, env Env) error {
	file := datasets.Filename("veh0120_uk")
	f, err := os.Open(filepath.Join(env.RawDir, file))
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	header, err := r.Read()
	if err != nil {
		return err
	}

	cols := map[string]int{}
	quarterCol := -1
	var quarter string
	for i, name := range header {
		name = strings.TrimSpace(name)
		cols[name] = i
		if quarterCol < 0 && quarterPattern.MatchString(name) {
			quarterCol = i
			quarter = name
		}
	}
	for _, required := range []string{"BodyType", "LicenceStatus", "Make", "GenModel", "Model", "Fuel"} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("%w: %s lacks column %q", errNoHeader, file, required)
		}
	}
	if quarterCol < 0 {
		return fmt.Errorf("%w: %s has no quarter column", errNoHeader, file)
	}
	env.Log.Debug("using quarter", zap.String("quarter", quarter))

	out, err := tables.NewWriter(filepath.Join(env.OutDir, tables.VehicleFleet.Filename()), tables.VehicleFleet)
	if err != nil {
		return err
	}

	var total float64
	for rows := 0; ; rows++ {
		if rows%20_000 == 0 {
			if err := ctx.Err(); err != nil {
				_ = out.Close()
				return err
			}
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		if cell(record, cols["BodyType"]) != "Cars" ||
			cell(record, cols["LicenceStatus"]) != "Licensed" {
			continue
		}
		count, ok := cellFloat(record, quarterCol)
		if !ok || count <= 0 {
			continue
		}
		makeName := cell(record, cols["Make"])
		genModel := cell(record, cols["GenModel"])
		model := cell(record, cols["Model"])
		if makeName == "" || model == "" {
			continue
		}

		if err := out.WriteRow([]string{
			makeName,
			genModel,
			model,
			fuelName(cell(record, cols["Fuel"])),
			strconv.FormatFloat(count, 'f', -1, 64),
		}); err != nil {
			_ = out.Close()
			return err
		}
		total += count
	}
	written := out.Rows()
	if err := out.Close(); err != nil {
		return err
	}
	if written == 0 {
		return fmt.Errorf("%w: %s", errNoDataRows, file)
	}

	env.Log.Info("vehicle fleet normalized",
		zap.String("quarter", quarter),
		zap.Int("rows", written),
		zap.Float64("licensedCars", total),
	)
	return nil
}
