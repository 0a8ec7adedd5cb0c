// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tables defines the canonical distribution table contract shared by
// the normalize stage, the embedded assumption data, and the generator. A
// canonical table is a CSV file with an explicit schema: named, typed columns
// and a version. Loading validates the header and parses every cell, so the
// rest of the program never guesses what a column means.
package tables

import "errors"

// ErrConstruction marks a table or index that cannot be used at all. Callers
// treat it as fatal at startup.
var ErrConstruction = errors.New("unusable distribution table")

type Kind int

const (
	String Kind = iota
	Int
	Float
)

type Column struct {
	Name string
	Kind Kind
}

func StringColumn(name string) Column {
	return Column{Name: name, Kind: String}
}

func IntColumn(name string) Column {
	return Column{Name: name, Kind: Int}
}

func FloatColumn(name string) Column {
	return Column{Name: name, Kind: Float}
}

type Schema struct {
	Name    string
	Version int
	Columns []Column
}

func (s Schema) Filename() string {
	return s.Name + ".csv"
}

func (s Schema) Header() []string {
	header := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = c.Name
	}
	return header
}

// Table holds the typed columns of one loaded canonical table. Rows that
// failed to parse were dropped at load, so every column slice has the same
// length. Tables are never modified after load.
type Table struct {
	schema  Schema
	numRows int
	strs    map[string][]string
	ints    map[string][]int
	floats  map[string][]float64
}

func (t *Table) Schema() Schema {
	return t.schema
}

func (t *Table) Len() int {
	return t.numRows
}

// Strings returns the column named [col], or nil if the schema does not
// declare it as a string column.
func (t *Table) Strings(col string) []string {
	return t.strs[col]
}

func (t *Table) Ints(col string) []int {
	return t.ints[col]
}

func (t *Table) Floats(col string) []float64 {
	return t.floats[col]
}
