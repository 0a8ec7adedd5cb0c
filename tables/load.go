// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package tables

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DataDog/zstd"
	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

// Issues are reported individually up to this cap; past it only the count
// grows.
const maxReportedIssues = 20

// LoadReport records the rows a load dropped. Dropped rows are recoverable;
// the caller decides whether the table that remains is usable.
type LoadReport struct {
	Table   string
	Rows    int
	Skipped int
	Issues  []RowIssue
}

type RowIssue struct {
	Line   int
	Reason string
}

func (r *LoadReport) skip(line int, reason string) {
	r.Skipped++
	if len(r.Issues) < maxReportedIssues {
		r.Issues = append(r.Issues, RowIssue{Line: line, Reason: reason})
	}
}

// Warn logs a summary if any rows were dropped.
func (r *LoadReport) Warn(log logging.Logger) {
	if r.Skipped == 0 {
		return
	}
	log.Warn("dropped malformed rows",
		zap.String("table", r.Table),
		zap.Int("kept", r.Rows),
		zap.Int("skipped", r.Skipped),
	)
	for _, issue := range r.Issues {
		log.Debug("dropped row",
			zap.String("table", r.Table),
			zap.Int("line", issue.Line),
			zap.String("reason", issue.Reason),
		)
	}
}

// Load reads the canonical table at [path]. Files ending in .gz or .zst are
// decompressed transparently. A missing file or a header that does not match
// [schema] is an ErrConstruction; malformed rows are dropped and reported.
func Load(path string, schema Schema) (*Table, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{Table: schema.Name}, fmt.Errorf("%w: %q: %s", ErrConstruction, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, LoadReport{Table: schema.Name}, fmt.Errorf("%w: %q: %s", ErrConstruction, path, err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".zst"):
		zr := zstd.NewReader(r)
		defer zr.Close()
		r = zr
	}
	return Read(r, schema)
}

// Read parses a canonical table from [r] against [schema].
func Read(r io.Reader, schema Schema) (*Table, LoadReport, error) {
	report := LoadReport{Table: schema.Name}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: reading header: %s", ErrConstruction, schema.Name, err)
	}

	// Columns may appear in any order and unknown columns are ignored, but
	// every declared column must be present.
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}
	colPos := make([]int, len(schema.Columns))
	for i, col := range schema.Columns {
		p, ok := pos[col.Name]
		if !ok {
			return nil, report, fmt.Errorf("%w: %s: missing column %q", ErrConstruction, schema.Name, col.Name)
		}
		colPos[i] = p
	}

	tbl := &Table{
		schema: schema,
		strs:   make(map[string][]string),
		ints:   make(map[string][]int),
		floats: make(map[string][]float64),
	}
	for _, col := range schema.Columns {
		switch col.Kind {
		case String:
			tbl.strs[col.Name] = nil
		case Int:
			tbl.ints[col.Name] = nil
		case Float:
			tbl.floats[col.Name] = nil
		}
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.skip(line, "malformed row")
			continue
		}
		if reason, ok := tbl.appendRow(record, colPos); !ok {
			report.skip(line, reason)
		}
	}
	report.Rows = tbl.numRows
	return tbl, report, nil
}

// appendRow parses [record] into the table's typed columns. Nothing is
// appended unless every cell parses.
func (t *Table) appendRow(record []string, colPos []int) (string, bool) {
	var (
		strVals   []string
		intVals   []int
		floatVals []float64
	)
	for i, col := range t.schema.Columns {
		if colPos[i] >= len(record) {
			return "short row", false
		}
		cell := strings.TrimSpace(record[colPos[i]])
		switch col.Kind {
		case String:
			strVals = append(strVals, cell)
		case Int:
			v, err := strconv.Atoi(cell)
			if err != nil {
				return fmt.Sprintf("column %q is not an integer", col.Name), false
			}
			intVals = append(intVals, v)
		case Float:
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return fmt.Sprintf("column %q is not a number", col.Name), false
			}
			floatVals = append(floatVals, v)
		}
	}

	si, ii, fi := 0, 0, 0
	for _, col := range t.schema.Columns {
		switch col.Kind {
		case String:
			t.strs[col.Name] = append(t.strs[col.Name], strVals[si])
			si++
		case Int:
			t.ints[col.Name] = append(t.ints[col.Name], intVals[ii])
			ii++
		case Float:
			t.floats[col.Name] = append(t.floats[col.Name], floatVals[fi])
			fi++
		}
	}
	t.numRows++
	return "", true
}
