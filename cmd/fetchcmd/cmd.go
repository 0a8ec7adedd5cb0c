// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package fetchcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PricingFrontier/synthetic-insurance-data/datasets"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "fetch",
		Short: "Download the public source datasets",
		RunE:  fetchFunc,
	}
	AddFlags(c.Flags())
	return c
}

func fetchFunc(c *cobra.Command, args []string) error {
	cfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	if cfg.List {
		for _, src := range datasets.Sources() {
			manual := ""
			if src.Manual {
				manual = " (manual download)"
			}
			fmt.Fprintf(os.Stdout, "%-26s %s%s\n", src.Name, src.Filename, manual)
			fmt.Fprintf(os.Stdout, "%26s %s\n", "", src.Description)
		}
		return nil
	}

	logFactory := logging.NewFactory(cfg.Logging)
	defer logFactory.Close()
	log, err := logFactory.Make("fetch")
	if err != nil {
		return err
	}

	client := datasets.NewClient(cfg.RawDir, log)
	results, err := client.FetchAll(c.Context(), cfg.Datasets)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(results))
	}
	return nil
}
