package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"infoprom/poaudit/pkg/config"
	"infoprom/poaudit/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "poaudit",
	Short: "Compliance analysis for purchase-order event logs",
	Long: `Poaudit analyzes BPI Challenge 2019 purchase-order event logs.

It checks every case against the compliance rules of its procurement
category (3-way match before/after goods receipt, 2-way match,
consignment), partitions the logs into compliant and non-compliant cases
with per-reason statistics, and provides the surrounding preprocessing and
analysis steps: category splitting, variant filtering, and role handover
statistics.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration with environment overrides and
// installs the configured default logger. The --verbose flag forces debug
// logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if _, err := logging.Setup(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}
