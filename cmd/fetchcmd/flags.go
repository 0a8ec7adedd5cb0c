// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package fetchcmd

import (
	"github.com/spf13/pflag"

	"github.com/PricingFrontier/synthetic-insurance-data/config"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

const (
	DatasetKey = "dataset"
	ListKey    = "list"
	RawDirKey  = "raw-dir"
)

func AddFlags(flags *pflag.FlagSet) {
	config.AddCommonFlags(flags)
	flags.StringSlice(DatasetKey, nil, "Fetch only the named sources (repeatable; default every automatic source)")
	flags.Bool(ListKey, false, "List the registered sources and exit")
	flags.String(RawDirKey, "", "Directory downloads land in (default <data-dir>/raw)")
}

type Config struct {
	RawDir   string
	Datasets []string
	List     bool
	Logging  logging.Config
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

	return &Config{
		RawDir:   rawDir,
		Datasets: v.GetStringSlice(DatasetKey),
		List:     v.GetBool(ListKey),
		Logging:  logCfg,
	}, nil
}
