// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generator

import (
	"runtime"
	"time"
)

// DefaultMaxCount bounds a single batch unless the caller raises the limit.
const DefaultMaxCount = 5_000_000

type Config struct {
	// ProcessedDir holds the canonical measured tables produced by the
	// process command.
	ProcessedDir string

	// Seed fixes the whole batch: record i draws from a stream derived from
	// (Seed, i), so output is independent of worker count and scheduling.
	Seed uint64

	// Region restricts sampled addresses to one region. Empty samples
	// nationally.
	Region string

	// ReferenceDate anchors every generated date: ages, policy start dates,
	// and vehicle registration years are all relative to it. It must be set;
	// defaulting to the wall clock would silently break reproducibility.
	ReferenceDate time.Time

	// Workers is the number of composing goroutines. Zero means NumCPU.
	Workers int

	// MaxCount rejects oversized batch requests before any work happens.
	// Zero means DefaultMaxCount.
	MaxCount int
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxCount <= 0 {
		c.MaxCount = DefaultMaxCount
	}
	return c
}
