// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var errNoSheet = errors.New("sheet not found")

// sheetRows returns every row of the first sheet whose name starts with
// [prefix]. Statistical releases suffix sheet names with the edition, so a
// prefix match survives updates.
func sheetRows(f *excelize.File, prefix string) ([][]string, error) {
	for _, name := range f.GetSheetList() {
		if strings.HasPrefix(name, prefix) {
			return f.GetRows(name)
		}
	}
	return nil, fmt.Errorf("%w: %q*", errNoSheet, prefix)
}

// findRow returns the index of the first row matching [match].
func findRow(rows [][]string, match func(row []string) bool) (int, bool) {
	for i, row := range rows {
		if match(row) {
			return i, true
		}
	}
	return 0, false
}

// rowContains reports whether any cell of [row] contains [sub].
func rowContains(row []string, sub string) bool {
	for _, c := range row {
		if strings.Contains(c, sub) {
			return true
		}
	}
	return false
}

// findColumn returns the index of the first cell in [row] whose trimmed
// value satisfies [match].
func findColumn(row []string, match func(cell string) bool) (int, bool) {
	for i, c := range row {
		if match(strings.TrimSpace(c)) {
			return i, true
		}
	}
	return 0, false
}

// cell returns the trimmed cell at [i], or "" past the row's end. Excel rows
// drop trailing empty cells, so short rows are routine.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// cellInt parses the cell at [i] as an integer, tolerating the comma
// grouping and ".0" float rendering Excel applies to counts.
func cellInt(row []string, i int) (int, bool) {
	s := strings.ReplaceAll(cell(row, i), ",", "")
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// cellFloat parses the cell at [i] as a float, tolerating comma grouping.
func cellFloat(row []string, i int) (float64, bool) {
	s := strings.ReplaceAll(cell(row, i), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
