// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PricingFrontier/synthetic-insurance-data/app"
	"github.com/PricingFrontier/synthetic-insurance-data/cmd/fetchcmd"
	"github.com/PricingFrontier/synthetic-insurance-data/cmd/generatecmd"
	"github.com/PricingFrontier/synthetic-insurance-data/cmd/processcmd"
	"github.com/PricingFrontier/synthetic-insurance-data/utils/constants"
	"github.com/PricingFrontier/synthetic-insurance-data/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Synthesizes statistically realistic motor insurance quote records",
	}
	rootCmd.AddCommand(
		fetchcmd.Command(),
		processcmd.Command(),
		generatecmd.Command(),
		versionCommand(),
	)

	os.Exit(app.Run(app.New(func(ctx context.Context) error {
		return rootCmd.ExecuteContext(ctx)
	})))
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version details",
		RunE: func(*cobra.Command, []string) error {
			msg := version.Current.String()
			if len(version.GitCommit) > 0 {
				msg += ", commit=" + version.GitCommit
			}
			fmt.Fprintln(os.Stdout, msg)
			return nil
		},
	}
}
