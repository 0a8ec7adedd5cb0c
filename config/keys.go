// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package config

// Flag keys shared by every subcommand. Command-specific keys live next to
// the command that owns them.
const (
	ConfigFileKey = "config-file"
	DataDirKey    = "data-dir"
	LogLevelKey   = "log-level"
	LogDirKey     = "log-dir"
)
