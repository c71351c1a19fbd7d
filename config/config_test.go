package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 8.0, cfg.Scan.VolumeMultiplier)
	assert.Equal(t, 30, cfg.Scan.BreakoutDays)
	require.NotNil(t, cfg.Scan.MaxDaysOld)
	assert.Equal(t, 5, *cfg.Scan.MaxDaysOld)
	assert.Equal(t, 2.0, cfg.Sim.ATRMultiple)
	assert.Equal(t, 4.0, cfg.Sim.TakeProfitMultiple)
	assert.Equal(t, 10, cfg.Sim.ExpiryDays)
	assert.Equal(t, "smtp.gmail.com", cfg.Email.SMTPHost)
	assert.Equal(t, 465, cfg.Email.SMTPPort)
}

func TestSaveLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Scan.VolumeMultiplier = 6.5
	cfg.Scan.MaxDaysOld = nil
	cfg.Backtest.Journal = JournalConfig{Type: "sqlite", DBPath: "positions.db"}
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6.5, loaded.Scan.VolumeMultiplier)
	assert.Nil(t, loaded.Scan.MaxDaysOld)
	assert.Equal(t, "sqlite", loaded.Backtest.Journal.Type)
	assert.Equal(t, "positions.db", loaded.Backtest.Journal.DBPath)
}

func TestSaveLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Sim.ExpiryDays = 15
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 15, loaded.Sim.ExpiryDays)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Scan.BreakoutDays = 0
	require.NoError(t, cfg.SaveToFile(path))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "breakout_days")
}

func TestValidateErrors(t *testing.T) {
	zero := 0
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative multiplier", func(c *Config) { c.Scan.VolumeMultiplier = -1 }, "volume_multiplier"},
		{"zero max days old", func(c *Config) { c.Scan.MaxDaysOld = &zero }, "max_days_old"},
		{"bad start date", func(c *Config) { c.Backtest.StartDate = "07/07/2020" }, "start_date"},
		{"zero capital", func(c *Config) { c.Backtest.TotalCapital = 0 }, "total_capital"},
		{"bad journal type", func(c *Config) { c.Backtest.Journal.Type = "postgres" }, "journal.type"},
		{"csv without dir", func(c *Config) { c.Backtest.Journal = JournalConfig{Type: "csv"} }, "results_dir"},
		{"sqlite without path", func(c *Config) { c.Backtest.Journal = JournalConfig{Type: "sqlite"} }, "db_path"},
		{"missing range", func(c *Config) { c.Fetch.Range = "" }, "range"},
		{"missing smtp host", func(c *Config) { c.Email.SMTPHost = "" }, "smtp_host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestStartDate(t *testing.T) {
	cfg := Default()
	d, err := cfg.StartDate()
	require.NoError(t, err)
	assert.Equal(t, 2020, d.Year())

	cfg.Backtest.StartDate = ""
	d, err = cfg.StartDate()
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestScannerAndSimOptions(t *testing.T) {
	cfg := Default()
	so := cfg.ScannerOptions()
	assert.Equal(t, cfg.Scan.VolumeMultiplier, so.VolumeMultiplier)
	assert.Equal(t, cfg.Scan.BreakoutDays, so.BreakoutDays)
	assert.Equal(t, cfg.Scan.MaxDaysOld, so.MaxDaysOld)

	po := cfg.SimOptions()
	assert.Equal(t, cfg.Sim.ATRMultiple, po.ATRMultiple)
	assert.Equal(t, cfg.Sim.ExpiryDays, po.ExpiryDays)
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("SENDER_EMAIL", "alerts@example.com")
	t.Setenv("EMAIL_PASSWORD", "hunter2")
	t.Setenv("RECIPIENT_EMAIL", "me@example.com")

	creds, err := LoadCredentials(nil)
	require.NoError(t, err)
	assert.Equal(t, "alerts@example.com", creds.SenderEmail)
	assert.Equal(t, "me@example.com", creds.Recipient)

	cfg := Default()
	cfg.Email.Recipient = "override@example.com"
	creds, err = LoadCredentials(cfg)
	require.NoError(t, err)
	assert.Equal(t, "override@example.com", creds.Recipient)

	t.Setenv("EMAIL_PASSWORD", "")
	_, err = LoadCredentials(nil)
	assert.ErrorContains(t, err, "EMAIL_PASSWORD")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config file")
}
