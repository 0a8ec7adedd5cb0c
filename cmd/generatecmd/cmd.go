// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package generatecmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PricingFrontier/synthetic-insurance-data/api/server"
	"github.com/PricingFrontier/synthetic-insurance-data/generator"
	"github.com/PricingFrontier/synthetic-insurance-data/metrics"
	"github.com/PricingFrontier/synthetic-insurance-data/output"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/constants"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/logging"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "generate",
		Short: "Compose a batch of synthetic quote records",
		RunE:  generateFunc,
	}
	AddFlags(c.Flags())
	return c
}

func generateFunc(c *cobra.Command, args []string) error {
	cfg, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	logFactory := logging.NewFactory(cfg.Logging)
	defer logFactory.Close()
	log, err := logFactory.Make("generate")
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	mtr, err := metrics.New(constants.QuoteNamespace, registry)
	if err != nil {
		return err
	}

	if cfg.HTTPPort > 0 {
		srv := server.New(fmt.Sprintf("127.0.0.1:%d", cfg.HTTPPort), registry, log)
		if _, err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			if err := srv.Stop(); err != nil {
				log.Warn("stopping status server", zap.Error(err))
			}
		}()
	}

	gen, err := generator.New(cfg.Generator, log, mtr)
	if err != nil {
		return err
	}

	quotes, err := gen.Generate(c.Context(), cfg.Count)
	if err != nil {
		return err
	}

	if err := output.Write(cfg.Output, quotes, cfg.Format, cfg.Pretty); err != nil {
		return err
	}

	destination := cfg.Output
	if destination == "" {
		destination = "stdout"
	}
	log.Info("batch written",
		zap.Int("quotes", len(quotes)),
		zap.String("format", string(cfg.Format)),
		zap.String("destination", destination),
	)
	return nil
}
