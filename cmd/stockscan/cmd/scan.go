package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yedidiaSch/stockScanner/config"
	"github.com/yedidiaSch/stockScanner/fetch"
	"github.com/yedidiaSch/stockScanner/market"
	"github.com/yedidiaSch/stockScanner/notify"
	"github.com/yedidiaSch/stockScanner/report"
	"github.com/yedidiaSch/stockScanner/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the watchlist for fresh breakout signals",
	Long: `Scan downloads recent history for every watchlist ticker, runs
breakout detection, and emails an HTML alert when any ticker has a
signal within the recency window.

Credentials come from the environment (or a .env file):
  SENDER_EMAIL, EMAIL_PASSWORD, RECIPIENT_EMAIL

Example:
  stockscan scan -c config.yaml
  stockscan scan --dry-run`,
	RunE: runScan,
}

var (
	scanDryRun  bool
	scanWorkers int
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "print the alert instead of emailing it")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 4, "concurrent ticker fetches")
}

type scanResult struct {
	ticker  string
	signals []scanner.Signal
	err     error
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	var creds *config.Credentials
	if !scanDryRun {
		creds, err = config.LoadCredentials(cfg)
		if err != nil {
			return fmt.Errorf("credentials: %w", err)
		}
	}

	tickers, err := fetch.LoadTickers(cfg.Fetch.TickerFile)
	if err != nil {
		return fmt.Errorf("load tickers: %w", err)
	}

	results := scanTickers(context.Background(), cfg, tickers, log)

	var hits []report.TickerSignals
	var failed int
	for _, res := range results {
		if res.err != nil {
			log.Warn("scan failed", zap.String("ticker", res.ticker), zap.Error(res.err))
			failed++
			continue
		}
		if len(res.signals) == 0 {
			continue
		}
		hits = append(hits, report.TickerSignals{
			Ticker:  res.ticker,
			Market:  market.MarketForTicker(res.ticker),
			Signals: res.signals,
		})
	}

	fmt.Printf("Scanned %d tickers, %d with signals, %d failed\n",
		len(tickers), len(hits), failed)
	if len(hits) == 0 {
		return nil
	}

	html, err := report.AlertHTML(hits)
	if err != nil {
		return fmt.Errorf("render alert: %w", err)
	}
	text := report.AlertText(hits)
	subject := fmt.Sprintf("Breakout alert: %d ticker(s) on %s",
		len(hits), time.Now().Format(market.DateLayout))

	if scanDryRun {
		fmt.Println(text)
		return nil
	}

	mailer := notify.Mailer{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Sender:   creds.SenderEmail,
		Password: creds.EmailPassword,
	}
	if err := mailer.Send(creds.Recipient, subject, text, html); err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	log.Info("alert sent",
		zap.String("recipient", creds.Recipient),
		zap.Int("tickers", len(hits)))
	return nil
}

// scanTickers fetches and scans tickers concurrently, preserving
// watchlist order in the returned slice.
func scanTickers(ctx context.Context, cfg *config.Config, tickers []string, log *zap.Logger) []scanResult {
	client := fetch.NewClient("")
	opts := cfg.ScannerOptions()

	results := make([]scanResult, len(tickers))
	jobs := make(chan int)

	workers := scanWorkers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ticker := tickers[i]
				series, err := client.Daily(ctx, ticker, fetch.Range(cfg.Fetch.Range))
				if err != nil {
					results[i] = scanResult{ticker: ticker, err: err}
					continue
				}
				signals, err := scanner.Detect(series, opts, log.With(zap.String("ticker", ticker)))
				results[i] = scanResult{ticker: ticker, signals: signals, err: err}
			}
		}()
	}
	for i := range tickers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
