// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package processcmd

import (
	"github.com/spf13/pflag"

	"github.com/PricingFrontier/synthetic-insurance-data/config"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

const (
	OnlyKey         = "only"
	ListKey         = "list"
	RawDirKey       = "raw-dir"
	ProcessedDirKey = "processed-dir"
)

func AddFlags(flags *pflag.FlagSet) {
	config.AddCommonFlags(flags)
	flags.StringSlice(OnlyKey, nil, "Run only the named processors (repeatable; default all)")
	flags.Bool(ListKey, false, "List the processors and exit")
	flags.String(RawDirKey, "", "Directory of fetched source files (default <data-dir>/raw)")
	flags.String(ProcessedDirKey, "", "Directory canonical tables are written to (default <data-dir>/processed)")
}

type Config struct {
	RawDir       string
	ProcessedDir string
	Only         []string
	List         bool
	Logging      logging.Config
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	v, err := config.Viperize(flags, args)
	if err != nil {
		return nil, err
	}

	logCfg, err := config.GetLogConfig(v)
	if err != nil {
		return nil, err
	}

	rawDir, err := config.GetSubdir(v, RawDirKey, "raw")
	if err != nil {
		return nil, err
	}

	processedDir, err := config.GetSubdir(v, ProcessedDirKey, "processed")
	if err != nil {
		return nil, err
	}

	return &Config{
		RawDir:       rawDir,
		ProcessedDir: processedDir,
		Only:         v.GetStringSlice(OnlyKey),
		List:         v.GetBool(ListKey),
		Logging:      logCfg,
	}, nil
}
