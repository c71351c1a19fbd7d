package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yedidiaSch/stockScanner/config"
	"github.com/yedidiaSch/stockScanner/journal"
	"github.com/yedidiaSch/stockScanner/market"
	"github.com/yedidiaSch/stockScanner/pkg/id"
	"github.com/yedidiaSch/stockScanner/scanner"
	"github.com/yedidiaSch/stockScanner/sim"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay stored history through the scanner and simulator",
	Long: `Backtest runs breakout detection over every CSV in the data
directory, simulates a position for each signal, and journals the
results for later aggregation with the report command.

Unlike scan, backtest keeps every historical signal; the recency window
only applies to live alerting.

Example:
  stockscan backtest -c config.yaml`,
	RunE: runBacktest,
}

var (
	btDataDir string
	btDBPath  string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVar(&btDataDir, "data", "", "history CSV directory; overrides config")
	backtestCmd.Flags().StringVar(&btDBPath, "db", "", "SQLite journal path; overrides config")
}

func openJournal(cfg *config.Config) (journal.Journal, string, error) {
	jc := cfg.Backtest.Journal
	if btDBPath != "" {
		jc = config.JournalConfig{Type: "sqlite", DBPath: btDBPath}
	}
	switch jc.Type {
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		return j, jc.DBPath, err
	default:
		path := filepath.Join(jc.ResultsDir, fmt.Sprintf("positions_%s.csv", id.New()))
		j, err := journal.NewCSV(path)
		return j, path, err
	}
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	dataDir := cfg.Backtest.DataDir
	if btDataDir != "" {
		dataDir = btDataDir
	}
	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no history CSVs in %s", dataDir)
	}

	start, err := cfg.StartDate()
	if err != nil {
		return err
	}

	j, journalPath, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	// Historical runs keep every signal; recency bounds live alerts only.
	opts := cfg.ScannerOptions()
	opts.MaxDaysOld = nil
	simOpts := cfg.SimOptions()

	var total, closed int
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), ".csv")
		ticker := base
		if i := strings.IndexByte(base, '_'); i > 0 {
			ticker = base[:i]
		}
		mkt := market.MarketForTicker(base)
		tlog := log.With(zap.String("ticker", ticker))

		series, err := market.ReadCSV(file)
		if err != nil {
			tlog.Warn("skipping file", zap.String("path", file), zap.Error(err))
			continue
		}
		if !start.IsZero() {
			series = series.FilterFrom(start)
		}
		if len(series) == 0 {
			continue
		}

		signals, err := scanner.Detect(series, opts, tlog)
		if err != nil {
			tlog.Warn("detection failed", zap.Error(err))
			continue
		}
		positions, err := sim.Simulate(signals, series, mkt, simOpts, tlog)
		if err != nil {
			tlog.Warn("simulation failed", zap.Error(err))
			continue
		}

		for _, p := range positions {
			rec := journal.FromPosition(ticker, p)
			if err := j.RecordPosition(rec); err != nil {
				return fmt.Errorf("record position: %w", err)
			}
			total++
			if rec.Closed() {
				closed++
			}
		}
	}

	fmt.Printf("Backtest complete: %d positions (%d closed) from %d files\n",
		total, closed, len(files))
	fmt.Printf("  Journal: %s\n", journalPath)
	return nil
}
