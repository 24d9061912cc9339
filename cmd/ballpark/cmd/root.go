// Package cmd provides the offline commands of the ballpark CLI.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cromos/ballpark/internal/logger"
	"github.com/cromos/ballpark/internal/rates"
)

var (
	ratesFile string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "ballpark",
	Short: "Ballpark budgets for clinical trials",
	Long: `ballpark prices a clinical trial from a handful of project parameters
and a versioned rate card, without running the HTTP service.

Examples:
  ballpark estimate request.json
  ballpark estimate --format xlsx --output budget.xlsx request.json
  ballpark rates`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "rate card YAML (default is the embedded card)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(ratesCmd)
}

func newLogger() zerolog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.NewWithWriter(os.Stderr, "development", level)
}

func loadRates() (*rates.Table, error) {
	if ratesFile == "" {
		return rates.Default()
	}
	return rates.LoadFile(ratesFile)
}
