// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package json holds the streaming helpers shared by batch encoders.
package json

import (
	"encoding/json"
	"io"
)

// Indent is the indentation unit for pretty-printed output.
const Indent = "  "

// WriteLines encodes each element of [vals] as one JSON object per line.
func WriteLines[T any](w io.Writer, vals []T) error {
	enc := json.NewEncoder(w)
	for _, v := range vals {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// WriteArray encodes [vals] as a single JSON array, indented when [pretty].
func WriteArray[T any](w io.Writer, vals []T, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", Indent)
	}
	return enc.Encode(vals)
}
