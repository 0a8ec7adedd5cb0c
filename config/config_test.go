// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

func testFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddCommonFlags(fs)
	return fs
}

func TestViperizeDefaults(t *testing.T) {
	require := require.New(t)

	v, err := Viperize(testFlagSet(), nil)
	require.NoError(err)
	require.Equal(DefaultDataDir, v.GetString(DataDirKey))
	require.Equal(logging.Info.String(), v.GetString(LogLevelKey))
}

func TestViperizeFlagOverride(t *testing.T) {
	require := require.New(t)

	v, err := Viperize(testFlagSet(), []string{"--log-level", "debug"})
	require.NoError(err)

	cfg, err := GetLogConfig(v)
	require.NoError(err)
	require.Equal(logging.Debug, cfg.LogLevel)
}

func TestViperizeConfigFile(t *testing.T) {
	require := require.New(t)

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(file, []byte(`{"log-level": "warn"}`), 0o640))

	v, err := Viperize(testFlagSet(), []string{"--config-file", file})
	require.NoError(err)

	cfg, err := GetLogConfig(v)
	require.NoError(err)
	require.Equal(logging.Warn, cfg.LogLevel)
}

func TestFlagBeatsConfigFile(t *testing.T) {
	require := require.New(t)

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(file, []byte(`{"log-level": "warn"}`), 0o640))

	v, err := Viperize(testFlagSet(), []string{"--config-file", file, "--log-level", "error"})
	require.NoError(err)

	cfg, err := GetLogConfig(v)
	require.NoError(err)
	require.Equal(logging.Error, cfg.LogLevel)
}

func TestViperizeMissingConfigFile(t *testing.T) {
	require := require.New(t)

	_, err := Viperize(testFlagSet(), []string{"--config-file", filepath.Join(t.TempDir(), "nope.json")})
	require.Error(err)
}

func TestGetLogConfigBadLevel(t *testing.T) {
	require := require.New(t)

	v, err := Viperize(testFlagSet(), []string{"--log-level", "chatty"})
	require.NoError(err)

	_, err = GetLogConfig(v)
	require.Error(err)
}

func TestGetSubdir(t *testing.T) {
	require := require.New(t)

	v, err := Viperize(testFlagSet(), []string{"--data-dir", "/tmp/synth"})
	require.NoError(err)

	dir, err := GetSubdir(v, LogDirKey, "logs")
	require.NoError(err)
	require.Equal(filepath.Join("/tmp/synth", "logs"), dir)

	v, err = Viperize(testFlagSet(), []string{"--log-dir", "/var/log/synth"})
	require.NoError(err)
	dir, err = GetSubdir(v, LogDirKey, "logs")
	require.NoError(err)
	require.Equal("/var/log/synth", dir)
}

func TestExpandPath(t *testing.T) {
	require := require.New(t)

	t.Setenv("SYNTH_TEST_DIR", "/srv/data")
	dir, err := ExpandPath("$SYNTH_TEST_DIR/raw")
	require.NoError(err)
	require.Equal("/srv/data/raw", dir)
}
