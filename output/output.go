// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package output encodes generated quote batches. Encoding is plain
// encoding/json over fixed struct definitions, so a batch from a fixed seed
// and config always serializes to identical bytes.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PricingFrontier/synthetic-insurance-data/quote"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/json"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/perms"
)

var errUnknownFormat = errors.New("unknown output format")

// Format selects the batch encoding.
type Format string

const (
	// FormatJSONL writes one JSON object per line, the default for feeding
	// downstream pipelines.
	FormatJSONL Format = "jsonl"

	// FormatJSON writes a single JSON array.
	FormatJSON Format = "json"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSONL, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", errUnknownFormat, s, FormatJSONL, FormatJSON)
	}
}

// Encode writes [quotes] to [w] in [format]. Pretty printing indents the
// JSON array form; JSONL stays one record per line regardless.
func Encode(w io.Writer, quotes []quote.Quote, format Format, pretty bool) error {
	switch format {
	case FormatJSONL:
		return json.WriteLines(w, quotes)
	case FormatJSON:
		return json.WriteArray(w, quotes, pretty)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// Write encodes [quotes] to the file at [path], creating parent directories
// with restricted permissions. An empty path writes to stdout.
func Write(path string, quotes []quote.Quote, format Format, pretty bool) error {
	if path == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := Encode(w, quotes, format, pretty); err != nil {
			return err
		}
		return w.Flush()
	}

	if err := os.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
		return err
	}
	f, err := perms.Create(path, perms.ReadWrite)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, quotes, format, pretty); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
