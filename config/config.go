// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the flag and config-file machinery shared by the
// subcommands: the common keys, the viper environment they are read
// through, and the directory defaults everything hangs off.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/constants"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

// DefaultDataDir is the dot directory raw downloads, canonical tables and
// logs default into. Expanded against $HOME when read.
var DefaultDataDir = fmt.Sprintf("~/.%s", constants.AppName)

// AddCommonFlags registers the flags every subcommand carries.
func AddCommonFlags(fs *pflag.FlagSet) {
	fs.String(ConfigFileKey, "", "Config file to load flag values from")
	fs.String(DataDirKey, DefaultDataDir, "Directory raw datasets, canonical tables and logs default into")
	fs.String(LogLevelKey, logging.Info.String(), "Log level written to the log file")
	fs.String(LogDirKey, "", "Logging directory (default <data-dir>/logs)")
}

// Viperize parses [args] against [fs] and binds the result into a fresh
// viper environment, layering in the config file when one is named.
func Viperize(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if v.IsSet(ConfigFileKey) {
		file, err := ExpandPath(v.GetString(ConfigFileKey))
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ExpandPath resolves ~ and environment variables in a path flag.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("couldn't expand %q: %w", path, err)
	}
	return os.ExpandEnv(expanded), nil
}

// GetDataDir returns the expanded data directory.
func GetDataDir(v *viper.Viper) (string, error) {
	return ExpandPath(v.GetString(DataDirKey))
}

// GetSubdir resolves a directory flag that defaults to a subdirectory of
// the data dir when left empty.
func GetSubdir(v *viper.Viper, key, subdir string) (string, error) {
	if dir := v.GetString(key); dir != "" {
		return ExpandPath(dir)
	}
	dataDir, err := GetDataDir(v)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, subdir), nil
}

// GetLogConfig assembles the logging config from the common flags.
func GetLogConfig(v *viper.Viper) (logging.Config, error) {
	cfg, err := logging.DefaultConfig()
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return cfg, fmt.Errorf("couldn't parse %s: %w", LogLevelKey, err)
	}
	cfg.Directory, err = GetSubdir(v, LogDirKey, "logs")
	if err != nil {
		return cfg, err
	}
	cfg.LoggerName = constants.AppName
	return cfg, nil
}
