package main

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dirctl",
	Short:         "Operate the provider directory",
	Long:          "dirctl seeds reference data and mints session tokens for local testing.\nSettings come from the same environment variables as the server.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logging.Setup(config.Load().LogLevel)
	},
}
