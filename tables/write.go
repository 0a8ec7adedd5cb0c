// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/perms"
)

// Writer streams canonical rows to disk. Processors with large inputs write
// row by row instead of accumulating the table in memory.
type Writer struct {
	schema Schema
	f      *os.File
	w      *csv.Writer
	rows   int
}

// NewWriter creates the canonical file for [schema] at [path] and writes its
// header, creating parent directories as needed.
func NewWriter(path string, schema Schema) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
		return nil, err
	}
	f, err := perms.Create(path, perms.ReadWrite)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(schema.Header()); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{schema: schema, f: f, w: w}, nil
}

// WriteRow appends one row, which must have one cell per schema column. Cell
// contents are not re-validated; the next Load is the gatekeeper.
func (w *Writer) WriteRow(row []string) error {
	if len(row) != len(w.schema.Columns) {
		return fmt.Errorf("%s row %d: %d cells for %d columns",
			w.schema.Name, w.rows, len(row), len(w.schema.Columns))
	}
	w.rows++
	return w.w.Write(row)
}

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}

// WriteCSV writes [rows] as the canonical table for [schema] in one call.
func WriteCSV(path string, schema Schema, rows [][]string) error {
	w, err := NewWriter(path, schema)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			_ = w.f.Close()
			return err
		}
	}
	return w.Close()
}
