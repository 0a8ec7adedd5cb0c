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
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/datasets"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

var nomisSexLabels = map[string]string{
	"All persons": "all",
	"Male":        "male",
	"Female":      "female",
}

// processOccupations parses the Nomis APS occupation extract into the
// canonical occupation table. Only 4-digit SOC unit groups are kept; the
// aggregate rows the API returns alongside them would double-count.
func processOccupations(ctx context.Context, env Env) error {
	file := datasets.Filename("nomis_aps_occupation")
	f, err := os.Open(filepath.Join(env.RawDir, file))
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// date_name, c_sex_name, soc2020_full_name, obs_value
	if _, err := r.Read(); err != nil {
		return err
	}

	var outRows [][]string
	for rows := 0; ; rows++ {
		if rows%10_000 == 0 {
			if err := ctx.Err(); err != nil {
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
		if len(record) < 4 {
			continue
		}

		sex, ok := nomisSexLabels[strings.TrimSpace(record[1])]
		if !ok {
			continue
		}
		code, name, ok := splitSOC(record[2])
		if !ok || len(code) != 4 {
			continue
		}
		count, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil || count <= 0 {
			continue
		}

		outRows = append(outRows, []string{
			sex,
			code,
			snakeCase(name),
			strconv.FormatFloat(count, 'f', -1, 64),
		})
	}
	if len(outRows) == 0 {
		return fmt.Errorf("%w: %s", errNoDataRows, file)
	}

	path := filepath.Join(env.OutDir, tables.Occupations.Filename())
	if err := tables.WriteCSV(path, tables.Occupations, outRows); err != nil {
		return err
	}
	env.Log.Info("occupations normalized", zap.Int("rows", len(outRows)))
	return nil
}

// splitSOC splits "1111 : Chief executives and senior officials" into the
// code and name.
func splitSOC(full string) (string, string, bool) {
	code, name, found := strings.Cut(full, ":")
	if !found {
		return "", "", false
	}
	code = strings.TrimSpace(code)
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return code, strings.TrimSpace(name), code != ""
}
