// Package config loads and validates the scanner's configuration from
// YAML or JSON files, with email credentials supplied via the
// environment, never the config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yedidiaSch/stockScanner/market"
	"github.com/yedidiaSch/stockScanner/scanner"
	"github.com/yedidiaSch/stockScanner/sim"
)

// Config is the complete application configuration.
type Config struct {
	Scan     ScanConfig     `json:"scan" yaml:"scan"`
	Sim      SimConfig      `json:"sim" yaml:"sim"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Email    EmailConfig    `json:"email" yaml:"email"`
}

// ScanConfig holds breakout detection parameters.
type ScanConfig struct {
	VolumeMultiplier float64 `json:"volume_multiplier" yaml:"volume_multiplier"`
	BreakoutDays     int     `json:"breakout_days" yaml:"breakout_days"`
	// MaxDaysOld bounds alerting to recent signals; null scans unbounded.
	MaxDaysOld   *int `json:"max_days_old" yaml:"max_days_old"`
	ATRPeriod    int  `json:"atr_period" yaml:"atr_period"`
	VolumePeriod int  `json:"volume_period" yaml:"volume_period"`
}

// SimConfig holds position simulation constants.
type SimConfig struct {
	ATRMultiple        float64 `json:"atr_multiple" yaml:"atr_multiple"`
	TakeProfitMultiple float64 `json:"take_profit_multiple" yaml:"take_profit_multiple"`
	ExpiryDays         int     `json:"expiry_days" yaml:"expiry_days"`
}

// BacktestConfig holds backtest orchestration parameters.
type BacktestConfig struct {
	StartDate    string        `json:"start_date" yaml:"start_date"`
	DataDir      string        `json:"data_dir" yaml:"data_dir"`
	TotalCapital float64       `json:"total_capital" yaml:"total_capital"`
	Journal      JournalConfig `json:"journal" yaml:"journal"`
}

// JournalConfig selects where backtest results are persisted.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	ResultsDir string `json:"results_dir,omitempty" yaml:"results_dir,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// FetchConfig holds data download parameters.
type FetchConfig struct {
	Range      string `json:"range" yaml:"range"`
	TickerFile string `json:"ticker_file" yaml:"ticker_file"`
}

// EmailConfig holds alert delivery settings. Sender address and password
// come from the environment (see Credentials).
type EmailConfig struct {
	SMTPHost  string `json:"smtp_host" yaml:"smtp_host"`
	SMTPPort  int    `json:"smtp_port" yaml:"smtp_port"`
	Recipient string `json:"recipient,omitempty" yaml:"recipient,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on
// content; YAML is tried first).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, YAML for .yaml/.yml paths and
// indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every section against the positive-parameter rules; the
// scanner and simulator re-check their own options, but a config error
// should surface at load time, not mid-run.
func (c *Config) Validate() error {
	if c.Scan.VolumeMultiplier <= 0 {
		return fmt.Errorf("scan.volume_multiplier must be positive")
	}
	if c.Scan.BreakoutDays <= 0 {
		return fmt.Errorf("scan.breakout_days must be positive")
	}
	if c.Scan.MaxDaysOld != nil && *c.Scan.MaxDaysOld <= 0 {
		return fmt.Errorf("scan.max_days_old must be positive or null")
	}
	if c.Scan.ATRPeriod <= 0 || c.Scan.VolumePeriod <= 0 {
		return fmt.Errorf("scan.atr_period and scan.volume_period must be positive")
	}
	if c.Sim.ATRMultiple <= 0 {
		return fmt.Errorf("sim.atr_multiple must be positive")
	}
	if c.Sim.TakeProfitMultiple <= 0 {
		return fmt.Errorf("sim.take_profit_multiple must be positive")
	}
	if c.Sim.ExpiryDays <= 0 {
		return fmt.Errorf("sim.expiry_days must be positive")
	}
	if c.Backtest.StartDate != "" {
		if _, err := time.Parse(market.DateLayout, c.Backtest.StartDate); err != nil {
			return fmt.Errorf("backtest.start_date: %w", err)
		}
	}
	if c.Backtest.DataDir == "" {
		return fmt.Errorf("backtest.data_dir is required")
	}
	if c.Backtest.TotalCapital <= 0 {
		return fmt.Errorf("backtest.total_capital must be positive")
	}
	switch c.Backtest.Journal.Type {
	case "csv":
		if c.Backtest.Journal.ResultsDir == "" {
			return fmt.Errorf("backtest.journal.results_dir required for CSV journal")
		}
	case "sqlite":
		if c.Backtest.Journal.DBPath == "" {
			return fmt.Errorf("backtest.journal.db_path required for SQLite journal")
		}
	default:
		return fmt.Errorf("backtest.journal.type must be 'csv' or 'sqlite'")
	}
	if c.Fetch.Range == "" {
		return fmt.Errorf("fetch.range is required")
	}
	if c.Fetch.TickerFile == "" {
		return fmt.Errorf("fetch.ticker_file is required")
	}
	if c.Email.SMTPHost == "" || c.Email.SMTPPort <= 0 {
		return fmt.Errorf("email.smtp_host and email.smtp_port are required")
	}
	return nil
}

// StartDate parses the backtest start date; the zero time means no
// filter.
func (c *Config) StartDate() (time.Time, error) {
	if c.Backtest.StartDate == "" {
		return time.Time{}, nil
	}
	return time.Parse(market.DateLayout, c.Backtest.StartDate)
}

// ScannerOptions converts the scan section into detector options.
func (c *Config) ScannerOptions() scanner.Options {
	return scanner.Options{
		VolumeMultiplier: c.Scan.VolumeMultiplier,
		BreakoutDays:     c.Scan.BreakoutDays,
		MaxDaysOld:       c.Scan.MaxDaysOld,
		ATRPeriod:        c.Scan.ATRPeriod,
		VolumePeriod:     c.Scan.VolumePeriod,
	}
}

// SimOptions converts the sim section into simulator options.
func (c *Config) SimOptions() sim.Options {
	return sim.Options{
		ATRMultiple:        c.Sim.ATRMultiple,
		TakeProfitMultiple: c.Sim.TakeProfitMultiple,
		ExpiryDays:         c.Sim.ExpiryDays,
	}
}

// Default returns the standard configuration.
func Default() *Config {
	five := 5
	return &Config{
		Scan: ScanConfig{
			VolumeMultiplier: 8.0,
			BreakoutDays:     30,
			MaxDaysOld:       &five,
			ATRPeriod:        20,
			VolumePeriod:     20,
		},
		Sim: SimConfig{
			ATRMultiple:        2.0,
			TakeProfitMultiple: 4.0,
			ExpiryDays:         10,
		},
		Backtest: BacktestConfig{
			StartDate:    "2020-07-07",
			DataDir:      "data",
			TotalCapital: 50000,
			Journal: JournalConfig{
				Type:       "csv",
				ResultsDir: ".",
			},
		},
		Fetch: FetchConfig{
			Range:      "5y",
			TickerFile: "tickers.txt",
		},
		Email: EmailConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 465,
		},
	}
}
