// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package processcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PricingFrontier/synthetic-insurance-data/normalize"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "process",
		Short: "Normalize fetched datasets into the canonical tables",
		RunE:  processFunc,
	}
	AddFlags(c.Flags())
	return c
}

func processFunc(c *cobra.Command, args []string) error {
	cfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	if cfg.List {
		for _, p := range normalize.All() {
			fmt.Fprintf(os.Stdout, "%-16s writes %s\n", p.Name, p.Output)
		}
		return nil
	}

	logFactory := logging.NewFactory(cfg.Logging)
	defer logFactory.Close()
	log, err := logFactory.Make("process")
	if err != nil {
		return err
	}

	statuses, err := normalize.Run(c.Context(), normalize.Env{
		RawDir: cfg.RawDir,
		OutDir: cfg.ProcessedDir,
		Log:    log,
	}, cfg.Only)
	if err != nil {
		return err
	}

	failed := 0
	for _, status := range statuses {
		if status.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d processors failed", failed, len(statuses))
	}
	return nil
}
