// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package tables

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Name:    "test_weights",
	Version: 1,
	Columns: []Column{
		StringColumn("category"),
		IntColumn("band"),
		FloatColumn("weight"),
	},
}

func TestReadTypedColumns(t *testing.T) {
	require := require.New(t)

	tbl, report, err := Read(strings.NewReader(
		"category,band,weight\n"+
			"a,1,0.5\n"+
			"b,2,1.5\n",
	), testSchema)
	require.NoError(err)
	require.Zero(report.Skipped)
	require.Equal(2, tbl.Len())
	require.Equal([]string{"a", "b"}, tbl.Strings("category"))
	require.Equal([]int{1, 2}, tbl.Ints("band"))
	require.Equal([]float64{0.5, 1.5}, tbl.Floats("weight"))
}

func TestReadColumnOrderIrrelevant(t *testing.T) {
	require := require.New(t)

	tbl, _, err := Read(strings.NewReader(
		"weight,extra,category,band\n"+
			"2.0,ignored,a,3\n",
	), testSchema)
	require.NoError(err)
	require.Equal([]string{"a"}, tbl.Strings("category"))
	require.Equal([]int{3}, tbl.Ints("band"))
	require.Equal([]float64{2}, tbl.Floats("weight"))
}

func TestReadMissingColumn(t *testing.T) {
	_, _, err := Read(strings.NewReader("category,band\na,1\n"), testSchema)
	require.ErrorIs(t, err, ErrConstruction)
	require.ErrorContains(t, err, "weight")
}

func TestReadSkipsMalformedRows(t *testing.T) {
	require := require.New(t)

	tbl, report, err := Read(strings.NewReader(
		"category,band,weight\n"+
			"a,1,0.5\n"+
			"b,two,0.5\n"+
			"c,3,heavy\n"+
			"d,4\n"+
			"e,5,1.0\n",
	), testSchema)
	require.NoError(err)
	require.Equal(2, tbl.Len())
	require.Equal(3, report.Skipped)
	require.Len(report.Issues, 3)
	require.Equal([]string{"a", "e"}, tbl.Strings("category"))
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.csv"), testSchema)
	require.ErrorIs(t, err, ErrConstruction)
}

func TestLoadGzip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "test_weights.csv.gz")
	f, err := os.Create(path)
	require.NoError(err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("category,band,weight\na,1,1.0\n"))
	require.NoError(err)
	require.NoError(gz.Close())
	require.NoError(f.Close())

	tbl, report, err := Load(path, testSchema)
	require.NoError(err)
	require.Zero(report.Skipped)
	require.Equal(1, tbl.Len())
}

func TestWriteReadRoundTrip(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "out", testSchema.Filename())
	rows := [][]string{
		{"a", "1", "0.25"},
		{"b", "2", "0.75"},
	}
	require.NoError(WriteCSV(path, testSchema, rows))

	tbl, report, err := Load(path, testSchema)
	require.NoError(err)
	require.Zero(report.Skipped)
	require.Equal(2, tbl.Len())
	require.Equal([]float64{0.25, 0.75}, tbl.Floats("weight"))
}

func TestWriteRejectsRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), testSchema.Filename())
	err := WriteCSV(path, testSchema, [][]string{{"a", "1"}})
	require.ErrorContains(t, err, "cells")
}
