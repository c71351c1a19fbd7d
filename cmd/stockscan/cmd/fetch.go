package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yedidiaSch/stockScanner/fetch"
	"github.com/yedidiaSch/stockScanner/market"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download daily candle history for the watchlist",
	Long: `Fetch downloads daily OHLCV history from Yahoo Finance for every
ticker in the watchlist file and stores one CSV per ticker in the data
directory, named <TICKER>_<range>.csv.

Example:
  stockscan fetch -c config.yaml --range 5y`,
	RunE: runFetch,
}

var (
	fetchRange   string
	fetchTickers string
	fetchDataDir string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchRange, "range", "", "history span (2mo, 6mo, 1y, 5y); overrides config")
	fetchCmd.Flags().StringVar(&fetchTickers, "tickers", "", "watchlist file; overrides config")
	fetchCmd.Flags().StringVar(&fetchDataDir, "data", "", "output directory; overrides config")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	rng := cfg.Fetch.Range
	if fetchRange != "" {
		rng = fetchRange
	}
	tickerFile := cfg.Fetch.TickerFile
	if fetchTickers != "" {
		tickerFile = fetchTickers
	}
	dataDir := cfg.Backtest.DataDir
	if fetchDataDir != "" {
		dataDir = fetchDataDir
	}

	tickers, err := fetch.LoadTickers(tickerFile)
	if err != nil {
		return fmt.Errorf("load tickers: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	client := fetch.NewClient("")
	ctx := context.Background()

	var failed int
	for _, ticker := range tickers {
		series, err := client.Daily(ctx, ticker, fetch.Range(rng))
		if err != nil {
			log.Warn("fetch failed", zap.String("ticker", ticker), zap.Error(err))
			failed++
			continue
		}

		path := filepath.Join(dataDir, fmt.Sprintf("%s_%s.csv", ticker, rng))
		if err := market.WriteCSV(path, series); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info("saved history",
			zap.String("ticker", ticker),
			zap.Int("bars", len(series)),
			zap.String("path", path))
	}

	fmt.Printf("Fetched %d/%d tickers into %s\n", len(tickers)-failed, len(tickers), dataDir)
	if failed > 0 {
		return fmt.Errorf("%d tickers failed", failed)
	}
	return nil
}
