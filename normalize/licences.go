// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package normalize

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"github.com/xuri/excelize/v2"

	"github.com/PricingFrontier/synthetic-insurance-data/datasets"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// processLicences parses the DVLA DRL0101 sheet (licence holders by single
// year of age and sex) into the canonical driver age table. Only full
// licences count; provisional holders can't be proposers.
func processLicences(ctx context.Context, env Env) error {
	licencesFile := datasets.Filename("dvla_licences")
	f, err := excelize.OpenFile(filepath.Join(env.RawDir, licencesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := sheetRows(f, "DRL0101")
	if err != nil {
		return err
	}
	// The header names the provisional block first; full-licence counts sit
	// in the following three columns.
	headerIdx, ok := findRow(rows, func(row []string) bool {
		return rowContains(row, "Provisional Licences - Male")
	})
	if !ok {
		return fmt.Errorf("%w: %s", errNoHeader, licencesFile)
	}

	var outRows [][]string
	total := 0
	// Skip the header and the "Age" label row under it.
	for _, row := range rows[headerIdx+2:] {
		if err := ctx.Err(); err != nil {
			return err
		}
		age, ok := cellInt(row, 0)
		if !ok || age < 17 || age > 100 {
			// Totals and note rows fall out here.
			continue
		}
		male, okM := cellInt(row, 4)
		female, okF := cellInt(row, 5)
		if !okM || !okF {
			continue
		}
		outRows = append(outRows, []string{
			strconv.Itoa(age),
			strconv.Itoa(male),
			strconv.Itoa(female),
		})
		total += male + female
	}
	if len(outRows) == 0 {
		return fmt.Errorf("%w: %s", errNoDataRows, licencesFile)
	}

	path := filepath.Join(env.OutDir, tables.DriverAgeSex.Filename())
	if err := tables.WriteCSV(path, tables.DriverAgeSex, outRows); err != nil {
		return err
	}
	env.Log.Info("driver ages normalized",
		zap.Int("ages", len(outRows)),
		zap.Int("holders", total),
	)
	return nil
}
