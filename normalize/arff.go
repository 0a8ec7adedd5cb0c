// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package normalize

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var errNotARFF = errors.New("no @data section")

// arff streams the data section of an ARFF file. Only the comma-separated
// relational layout the OpenML exports use is supported.
type arff struct {
	attributes []string
	f          *os.File
	scanner    *bufio.Scanner
}

// openARFF reads the attribute declarations and positions the reader at the
// first data record.
func openARFF(path string) (*arff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	a := &arff{f: f, scanner: bufio.NewScanner(f)}
	for a.scanner.Scan() {
		line := strings.TrimSpace(a.scanner.Text())
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "@attribute"):
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				a.attributes = append(a.attributes, strings.Trim(fields[1], "'"))
			}
		case lower == "@data":
			return a, nil
		}
	}
	_ = f.Close()
	if err := a.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", errNotARFF, path)
}

// Column returns the index of [name], or -1.
func (a *arff) Column(name string) int {
	for i, attr := range a.attributes {
		if attr == name {
			return i
		}
	}
	return -1
}

// Next returns the next data record with single quotes stripped, or false at
// the end of the file. Blank and comment lines are skipped.
func (a *arff) Next() ([]string, bool) {
	for a.scanner.Scan() {
		line := strings.TrimSpace(a.scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Split(line, ",")
		for i, field := range fields {
			fields[i] = strings.Trim(strings.TrimSpace(field), "'")
		}
		return fields, true
	}
	return nil, false
}

func (a *arff) Close() error {
	return a.f.Close()
}
