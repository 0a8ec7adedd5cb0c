// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generatecmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/PricingFrontier/synthetic-insurance-data/generator"
	"github.com/PricingFrontier/synthetic-insurance-data/output"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	AddFlags(fs)
	return ParseFlags(fs, args)
}

func TestParseFlagsDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := parse(t)
	require.NoError(err)

	require.Equal(1000, cfg.Count)
	require.Equal(output.FormatJSONL, cfg.Format)
	require.False(cfg.Pretty)
	require.Empty(cfg.Output)
	require.Zero(cfg.HTTPPort)
	require.Zero(cfg.Generator.Seed)
	require.Empty(cfg.Generator.Region)
	require.Equal(generator.DefaultMaxCount, cfg.Generator.MaxCount)

	// The default reference date is today at midnight UTC.
	ref := cfg.Generator.ReferenceDate
	require.Equal(time.UTC, ref.Location())
	require.Zero(ref.Hour())
	require.Zero(ref.Minute())
	require.False(ref.IsZero())
}

func TestParseFlagsExplicit(t *testing.T) {
	require := require.New(t)

	cfg, err := parse(t,
		"--count", "250",
		"--seed", "42",
		"--output", "/tmp/batch.json",
		"--format", "json",
		"--pretty",
		"--processed-dir", "/srv/tables",
		"--region", "wales",
		"--reference-date", "2026-06-01",
		"--workers", "4",
		"--max-count", "500",
		"--http-port", "8090",
		"--log-level", "debug",
	)
	require.NoError(err)

	require.Equal(250, cfg.Count)
	require.Equal(uint64(42), cfg.Generator.Seed)
	require.Equal("/tmp/batch.json", cfg.Output)
	require.Equal(output.FormatJSON, cfg.Format)
	require.True(cfg.Pretty)
	require.Equal("/srv/tables", cfg.Generator.ProcessedDir)
	require.Equal("wales", cfg.Generator.Region)
	require.Equal(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), cfg.Generator.ReferenceDate)
	require.Equal(4, cfg.Generator.Workers)
	require.Equal(500, cfg.Generator.MaxCount)
	require.Equal(uint16(8090), cfg.HTTPPort)
	require.Equal(logging.Debug, cfg.Logging.LogLevel)
}

func TestParseFlagsBadFormat(t *testing.T) {
	_, err := parse(t, "--format", "xml")
	require.Error(t, err)
}

func TestParseFlagsBadReferenceDate(t *testing.T) {
	_, err := parse(t, "--reference-date", "01/06/2026")
	require.Error(t, err)
}

func TestProcessedDirFollowsDataDir(t *testing.T) {
	require := require.New(t)

	cfg, err := parse(t, "--data-dir", "/srv/synth")
	require.NoError(err)
	require.Equal(filepath.Join("/srv/synth", "processed"), cfg.Generator.ProcessedDir)
	require.Equal(filepath.Join("/srv/synth", "logs"), cfg.Logging.Directory)
}
