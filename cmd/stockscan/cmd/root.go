package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yedidiaSch/stockScanner/config"
)

var rootCmd = &cobra.Command{
	Use:   "stockscan",
	Short: "Daily breakout scanner and position simulator",
	Long: `Stockscan watches daily OHLCV candles for volume-confirmed breakouts.

It provides tools for:
  - Downloading daily stock history from Yahoo Finance
  - Scanning a watchlist for fresh breakout signals and emailing alerts
  - Backtesting signals with an ATR trailing-stop position simulator
  - Aggregating simulated trade results by ticker, market and year

Complete documentation is available at https://github.com/yedidiaSch/stockScanner`,
}

var (
	cfgPath string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig reads the configured file, falling back to defaults when
// the default path does not exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if !rootCmd.PersistentFlags().Changed("config") {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file not found: %s", cfgPath)
	}
	return config.LoadFromFile(cfgPath)
}

// newLogger builds the process logger, debug level when -v is set.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}
