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

// processBabyNames parses the ONS baby-name releases (one workbook per sex)
// into the canonical first-name table. Table_1 lists the top 100 for the
// latest year, which is plenty of variety for synthetic proposers.
func processBabyNames(ctx context.Context, env Env) error {
	var outRows [][]string
	for _, in := range []struct {
		source string
		sex    string
	}{
		{"ons_baby_names_boys", "male"},
		{"ons_baby_names_girls", "female"},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		file := datasets.Filename(in.source)
		rows, err := parseNamesSheet(filepath.Join(env.RawDir, file), in.sex)
		if err != nil {
			return fmt.Errorf("%s: %s", file, err)
		}
		env.Log.Debug("names parsed",
			zap.String("sex", in.sex),
			zap.Int("names", len(rows)),
		)
		outRows = append(outRows, rows...)
	}

	path := filepath.Join(env.OutDir, tables.FirstNames.Filename())
	if err := tables.WriteCSV(path, tables.FirstNames, outRows); err != nil {
		return err
	}
	env.Log.Info("first names normalized", zap.Int("rows", len(outRows)))
	return nil
}

func parseNamesSheet(path, sex string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := sheetRows(f, "Table_1")
	if err != nil {
		return nil, err
	}
	headerIdx, ok := findRow(rows, func(row []string) bool {
		return rowContains(row, "Rank") && rowContains(row, "Name")
	})
	if !ok {
		return nil, errNoHeader
	}
	header := rows[headerIdx]
	rankCol, okRank := findColumn(header, func(c string) bool { return c == "Rank" })
	nameCol, okName := findColumn(header, func(c string) bool { return c == "Name" })
	countCol, okCount := findColumn(header, func(c string) bool { return c == "Count" })
	if !okRank || !okName || !okCount {
		return nil, errNoHeader
	}

	var out [][]string
	for _, row := range rows[headerIdx+1:] {
		rank, okR := cellInt(row, rankCol)
		count, okC := cellInt(row, countCol)
		name := cell(row, nameCol)
		if !okR || !okC || name == "" {
			continue
		}
		out = append(out, []string{
			sex,
			titleCase(name),
			strconv.Itoa(rank),
			strconv.Itoa(count),
		})
	}
	if len(out) == 0 {
		return nil, errNoDataRows
	}
	return out, nil
}

// titleCase renders an upper-cased published name ("OLIVER") as a record
// value ("Oliver"). Names are ASCII in this release.
func titleCase(s string) string {
	b := []byte(s)
	for i := range b {
		c := b[i]
		switch {
		case i == 0 || b[i-1] == '-' || b[i-1] == ' ':
			if c >= 'a' && c <= 'z' {
				b[i] = c - 'a' + 'A'
			}
		default:
			if c >= 'A' && c <= 'Z' {
				b[i] = c - 'A' + 'a'
			}
		}
	}
	return string(b)
}
