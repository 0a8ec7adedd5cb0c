// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package normalize

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"github.com/xuri/excelize/v2"

	"github.com/PricingFrontier/synthetic-insurance-data/datasets"
	"github.com/PricingFrontier/synthetic-insurance-data/tables"
)

// ONS age groups with their inclusive bounds. The open-ended top band is
// capped at the oldest quotable age.
var maritalAgeBands = []struct {
	label     string
	low, high int
}{
	{"16 to 19", 16, 19},
	{"20 to 24", 20, 24},
	{"25 to 29", 25, 29},
	{"30 to 34", 30, 34},
	{"35 to 39", 35, 39},
	{"40 to 44", 40, 44},
	{"45 to 49", 45, 49},
	{"50 to 54", 50, 54},
	{"55 to 59", 55, 59},
	{"60 to 64", 60, 64},
	{"65 to 69", 65, 69},
	{"70 to 74", 70, 74},
	{"75 to 79", 75, 79},
	{"80 to 84", 80, 84},
	{"85 and over", 85, 100},
}

// Published labels carry trailing spaces and [note N] annotations, so the
// mapping matches on prefix.
var maritalCategories = []struct {
	prefix   string
	category string
}{
	{"Never married", "single"},
	{"Married", "married"},
	{"Civil Partnered", "civil_partnership"},
	{"Separated", "separated"},
	{"Divorced", "divorced"},
	{"Widowed", "widowed"},
}

// processMaritalStatus parses the ONS marital status sheets (one per sex)
// into the canonical conditional table keyed by sex and age band.
func processMaritalStatus(ctx context.Context, env Env) error {
	file := datasets.Filename("ons_marital_status")
	f, err := excelize.OpenFile(filepath.Join(env.RawDir, file))
	if err != nil {
		return err
	}
	defer f.Close()

	var outRows [][]string
	for _, sheet := range []struct {
		prefix string
		sex    string
	}{
		{"Table_2_Marital_Status_Males", "male"},
		{"Table_3_Marital_Status_Females", "female"},
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := parseMaritalSheet(f, sheet.prefix, sheet.sex, env)
		if err != nil {
			return fmt.Errorf("%s: %s", sheet.prefix, err)
		}
		outRows = append(outRows, rows...)
	}
	if len(outRows) == 0 {
		return fmt.Errorf("%w: %s", errNoDataRows, file)
	}

	path := filepath.Join(env.OutDir, tables.MaritalStatus.Filename())
	if err := tables.WriteCSV(path, tables.MaritalStatus, outRows); err != nil {
		return err
	}
	env.Log.Info("marital status normalized", zap.Int("rows", len(outRows)))
	return nil
}

func parseMaritalSheet(f *excelize.File, prefix, sex string, env Env) ([][]string, error) {
	rows, err := sheetRows(f, prefix)
	if err != nil {
		return nil, err
	}

	headerIdx, ok := findRow(rows, func(row []string) bool {
		return rowContains(row, "Marital status") && rowContains(row, "Estimate")
	})
	if !ok {
		return nil, errNoHeader
	}
	header := rows[headerIdx]

	statusCol, ok := findColumn(header, func(c string) bool {
		return strings.Contains(c, "Marital status")
	})
	if !ok {
		return nil, fmt.Errorf("%w: no marital status column", errNoHeader)
	}
	ageCol, ok := findColumn(header, func(c string) bool {
		return strings.Contains(c, "Age group")
	})
	if !ok {
		return nil, fmt.Errorf("%w: no age group column", errNoHeader)
	}

	// Estimate columns repeat per year; the lexically largest label is the
	// latest edition.
	var estimates []string
	estimateCols := map[string]int{}
	for i, c := range header {
		c = strings.TrimSpace(c)
		if strings.Contains(c, "Estimate") {
			estimates = append(estimates, c)
			estimateCols[c] = i
		}
	}
	if len(estimates) == 0 {
		return nil, fmt.Errorf("%w: no estimate columns", errNoHeader)
	}
	sort.Strings(estimates)
	latest := estimates[len(estimates)-1]
	countCol := estimateCols[latest]
	env.Log.Debug("using estimate column",
		zap.String("sheet", prefix),
		zap.String("column", latest),
	)

	var out [][]string
	for _, row := range rows[headerIdx+1:] {
		category, ok := maritalCategory(cell(row, statusCol))
		if !ok {
			continue
		}
		low, high, ok := maritalBand(cell(row, ageCol))
		if !ok {
			continue
		}
		count, ok := cellFloat(row, countCol)
		if !ok || count <= 0 {
			continue
		}
		out = append(out, []string{
			sex,
			strconv.Itoa(low),
			strconv.Itoa(high),
			category,
			strconv.FormatFloat(count, 'f', -1, 64),
		})
	}
	return out, nil
}

func maritalCategory(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, m := range maritalCategories {
		if strings.HasPrefix(label, m.prefix) {
			return m.category, true
		}
	}
	return "", false
}

func maritalBand(label string) (int, int, bool) {
	label = strings.TrimSpace(label)
	for _, b := range maritalAgeBands {
		if label == b.label {
			return b.low, b.high, true
		}
	}
	return 0, 0, false
}
