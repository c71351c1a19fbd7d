package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yedidiaSch/stockScanner/journal"
	"github.com/yedidiaSch/stockScanner/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate journaled backtest results",
	Long: `Report reads every journaled position and prints win statistics
grouped by ticker, market and exit year, plus the final amount an evenly
split starting capital would have reached.

Examples:
  stockscan report -c config.yaml
  stockscan report --market India
  stockscan report --clean`,
	RunE: runReport,
}

var (
	reportMarket string
	reportClean  bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportMarket, "market", "", "only include positions from this market")
	reportCmd.Flags().BoolVar(&reportClean, "clean", false, "delete journaled CSV result files after aggregating")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var records []journal.Record
	var resultFiles []string

	switch cfg.Backtest.Journal.Type {
	case "sqlite":
		j, err := journal.NewSQLite(cfg.Backtest.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()

		if reportMarket != "" {
			records, err = j.ListByMarket(reportMarket)
		} else {
			records, err = j.ListPositions()
		}
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}

	default:
		resultFiles, err = filepath.Glob(filepath.Join(cfg.Backtest.Journal.ResultsDir, "positions_*.csv"))
		if err != nil {
			return err
		}
		for _, file := range resultFiles {
			recs, err := journal.ReadCSVRecords(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			for _, r := range recs {
				if reportMarket != "" && r.Market != reportMarket {
					continue
				}
				records = append(records, r)
			}
		}
	}

	if len(records) == 0 {
		fmt.Println("No journaled positions found.")
		return nil
	}

	summary := report.Build(records, cfg.Backtest.TotalCapital)
	fmt.Print(summary.String())

	if reportClean {
		for _, file := range resultFiles {
			if err := os.Remove(file); err != nil {
				return fmt.Errorf("clean %s: %w", file, err)
			}
		}
		if len(resultFiles) > 0 {
			fmt.Printf("\nRemoved %d result file(s)\n", len(resultFiles))
		}
	}
	return nil
}
