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
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// regionNames maps ONSPD region and country codes to canonical region keys.
// Scotland, Wales and Northern Ireland carry pseudo-codes in the region
// field, so both spellings appear.
var regionNames = map[string]string{
	"E12000001": "north_east",
	"E12000002": "north_west",
	"E12000003": "yorkshire_and_the_humber",
	"E12000004": "east_midlands",
	"E12000005": "west_midlands",
	"E12000006": "east_of_england",
	"E12000007": "london",
	"E12000008": "south_east",
	"E12000009": "south_west",
	"W92000004": "wales",
	"S92000003": "scotland",
	"N92000002": "northern_ireland",
	"S99999999": "scotland",
	"W99999999": "wales",
	"N99999999": "northern_ireland",
}

// gbCountries keeps Channel Islands and Isle of Man postcodes out.
var gbCountries = map[string]bool{
	"E92000001": true,
	"W92000004": true,
	"S92000003": true,
	"N92000002": true,
}

// urbanCodes is the RUC11 codes counted as urban; everything else is rural.
var urbanCodes = map[string]bool{"A1": true, "B1": true, "C1": true, "C2": true}

// processPostcodes streams the ONSPD multi-CSV split into the canonical
// postcode table, keeping live GB postcodes with their region and a coarse
// urban/rural kind.
func processPostcodes(ctx context.Context, env Env) error {
	pattern := filepath.Join(env.RawDir, "onspd", "Data", "multi_csv", "ONSPD_*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no files match %s", os.ErrNotExist, pattern)
	}
	sort.Strings(files)

	out, err := tables.NewWriter(filepath.Join(env.OutDir, tables.Postcodes.Filename()), tables.Postcodes)
	if err != nil {
		return err
	}

	kept, dropped := 0, 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			_ = out.Close()
			return err
		}
		k, d, err := appendPostcodeFile(ctx, file, out)
		if err != nil {
			_ = out.Close()
			return err
		}
		kept += k
		dropped += d
		env.Log.Debug("postcode file read",
			zap.String("file", filepath.Base(file)),
			zap.Int("kept", k),
			zap.Int("dropped", d),
		)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if kept == 0 {
		return fmt.Errorf("%w: %s", errNoDataRows, pattern)
	}

	env.Log.Info("postcodes normalized",
		zap.Int("files", len(files)),
		zap.Int("kept", kept),
		zap.Int("dropped", dropped),
	)
	return nil
}

func appendPostcodeFile(ctx context.Context, path string, out *tables.Writer) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return 0, 0, err
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"pcd", "rgn", "ctry", "doterm", "ru11ind"} {
		if _, ok := cols[required]; !ok {
			return 0, 0, fmt.Errorf("%w: %s lacks column %q", errNoHeader, filepath.Base(path), required)
		}
	}

	kept, dropped := 0, 0
	for rows := 0; ; rows++ {
		if rows%50_000 == 0 {
			if err := ctx.Err(); err != nil {
				return kept, dropped, err
			}
		}
		record, err := r.Read()
		if err == io.EOF {
			return kept, dropped, nil
		}
		if err != nil {
			// A torn row in one area file; skip it.
			dropped++
			continue
		}

		// doterm set means the postcode was terminated.
		if cell(record, cols["doterm"]) != "" {
			dropped++
			continue
		}
		if !gbCountries[cell(record, cols["ctry"])] {
			dropped++
			continue
		}
		region, ok := regionNames[cell(record, cols["rgn"])]
		if !ok {
			dropped++
			continue
		}
		postcode := cell(record, cols["pcd"])
		if postcode == "" {
			dropped++
			continue
		}

		areaKind := "rural"
		if urbanCodes[cell(record, cols["ru11ind"])] {
			areaKind = "urban"
		}
		if err := out.WriteRow([]string{postcode, region, areaKind}); err != nil {
			return kept, dropped, err
		}
		kept++
	}
}
