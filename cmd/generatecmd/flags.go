// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generatecmd

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/PricingFrontier/synthetic-insurance-data/config"
	"github.com/PricingFrontier/synthetic-insurance-data/generator"
	"github.com/PricingFrontier/synthetic-insurance-data/output"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

const (
	CountKey         = "count"
	SeedKey          = "seed"
	OutputKey        = "output"
	FormatKey        = "format"
	PrettyKey        = "pretty"
	ProcessedDirKey  = "processed-dir"
	RegionKey        = "region"
	ReferenceDateKey = "reference-date"
	WorkersKey       = "workers"
	MaxCountKey      = "max-count"
	HTTPPortKey      = "http-port"
)

const referenceDateLayout = "2006-01-02"

func AddFlags(flags *pflag.FlagSet) {
	config.AddCommonFlags(flags)
	flags.Int(CountKey, 1000, "Number of quote records to generate")
	flags.Uint64(SeedKey, 0, "Batch seed; a fixed (seed, count) always yields the same records")
	flags.String(OutputKey, "", "Output file (default stdout)")
	flags.String(FormatKey, string(output.FormatJSONL), "Output format: jsonl or json")
	flags.Bool(PrettyKey, false, "Indent json array output")
	flags.String(ProcessedDirKey, "", "Directory of canonical tables (default <data-dir>/processed)")
	flags.String(RegionKey, "", "Restrict addresses to one region (default national)")
	flags.String(ReferenceDateKey, "", "Quote reference date, YYYY-MM-DD (default today, UTC)")
	flags.Int(WorkersKey, 0, "Composing goroutines (0 = one per CPU)")
	flags.Int(MaxCountKey, generator.DefaultMaxCount, "Largest batch accepted without raising this limit")
	flags.Uint16(HTTPPortKey, 0, "Local port for the status server (0 = no server)")
}

type Config struct {
	Generator generator.Config
	Count     int
	Output    string
	Format    output.Format
	Pretty    bool
	HTTPPort  uint16
	Logging   logging.Config
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

	format, err := output.ParseFormat(v.GetString(FormatKey))
	if err != nil {
		return nil, err
	}

	processedDir, err := config.GetSubdir(v, ProcessedDirKey, "processed")
	if err != nil {
		return nil, err
	}

	// Without an explicit date the batch keys off today, so reruns on a
	// later day shift every age and date field.
	year, month, day := time.Now().UTC().Date()
	referenceDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if s := v.GetString(ReferenceDateKey); s != "" {
		referenceDate, err = time.Parse(referenceDateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("couldn't parse %s %q: want %s", ReferenceDateKey, s, referenceDateLayout)
		}
	}

	outputPath := v.GetString(OutputKey)
	if outputPath != "" {
		outputPath, err = config.ExpandPath(outputPath)
		if err != nil {
			return nil, err
		}
	}

	return &Config{
		Generator: generator.Config{
			ProcessedDir:  processedDir,
			Seed:          v.GetUint64(SeedKey),
			Region:        v.GetString(RegionKey),
			ReferenceDate: referenceDate,
			Workers:       v.GetInt(WorkersKey),
			MaxCount:      v.GetInt(MaxCountKey),
		},
		Count:    v.GetInt(CountKey),
		Output:   outputPath,
		Format:   format,
		Pretty:   v.GetBool(PrettyKey),
		HTTPPort: v.GetUint16(HTTPPortKey),
		Logging:  logCfg,
	}, nil
}
