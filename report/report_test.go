package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yedidiaSch/stockScanner/journal"
	"github.com/yedidiaSch/stockScanner/scanner"
	"github.com/yedidiaSch/stockScanner/sim"
)

func closedRec(ticker, mkt string, exitYear int, pct float64) journal.Record {
	exit := time.Date(exitYear, 7, 15, 0, 0, 0, 0, time.UTC)
	return journal.Record{
		ID:        ticker + exit.Format("20060102"),
		Ticker:    ticker,
		Market:    mkt,
		EntryDate: exit.AddDate(0, 0, -5),
		Status:    sim.StatusStopLoss,
		ExitDate:  exit,
		PctChange: pct,
	}
}

func TestBuildSummary(t *testing.T) {
	recs := []journal.Record{
		closedRec("AAPL", "USA", 2021, 20),
		closedRec("AAPL", "USA", 2021, -10),
		closedRec("RELIANCE.NS", "India", 2021, 5),
		closedRec("RELIANCE.NS", "India", 2022, -10),
		{ID: "open", Ticker: "VOD.L", Market: "UK", Status: sim.StatusOpen},
	}

	s := Build(recs, 50000)

	assert.Equal(t, 4, s.Trades)
	assert.InDelta(t, 1.25, s.AvgPct, 1e-9) // (20-10+5-10)/4

	// 12500 per trade: 15000 + 11250 + 13125 + 11250 = 50625.
	assert.InDelta(t, 50625.0, s.FinalAmount, 1e-6)

	require.Len(t, s.ByTicker, 2)
	assert.Equal(t, TickerStat{Ticker: "AAPL", Trades: 2, AvgPct: 5}, s.ByTicker[0])

	require.Len(t, s.ByMarket, 2)
	assert.Equal(t, "India", s.ByMarket[0].Market)
	assert.InDelta(t, -2.5, s.ByMarket[0].AvgPct, 1e-9)

	require.Len(t, s.ByYear, 2)
	assert.Equal(t, 2021, s.ByYear[0].Year)
	assert.Equal(t, 3, s.ByYear[0].Trades)
	assert.InDelta(t, 5.0, s.ByYear[0].AvgPct, 1e-9)

	require.Len(t, s.ByYearMarket, 3)
	assert.Equal(t, 2021, s.ByYearMarket[0].Year)
	assert.Equal(t, "India", s.ByYearMarket[0].Market)
	assert.Equal(t, 2022, s.ByYearMarket[2].Year)
}

func TestBuildNoClosedTrades(t *testing.T) {
	recs := []journal.Record{
		{ID: "open", Ticker: "VOD.L", Market: "UK", Status: sim.StatusOpen},
	}

	s := Build(recs, 50000)
	assert.Equal(t, 0, s.Trades)
	assert.InDelta(t, 0.0, s.AvgPct, 1e-9)
	assert.InDelta(t, 50000.0, s.FinalAmount, 1e-9)
	assert.Empty(t, s.ByMarket)

	// Still renders.
	assert.Contains(t, s.String(), "Total trades")
}

func TestSummaryString(t *testing.T) {
	s := Build([]journal.Record{
		closedRec("AAPL", "USA", 2021, 10),
	}, 1000)

	out := s.String()
	assert.Contains(t, out, "Performance by Market")
	assert.Contains(t, out, "USA")
	assert.Contains(t, out, "2021")
}

func TestAlertHTML(t *testing.T) {
	hits := []TickerSignals{
		{
			Ticker: "RELIANCE.NS",
			Market: "India",
			Signals: []scanner.Signal{{
				Date:         time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
				Action:       scanner.Buy,
				Price:        105.5,
				BreakoutHigh: 100,
				ATR:          2.25,
				VolumeRatio:  1.8,
			}},
		},
	}

	html, err := AlertHTML(hits)
	require.NoError(t, err)
	assert.Contains(t, html, "RELIANCE.NS")
	assert.Contains(t, html, "2024-05-02")
	assert.Contains(t, html, "105.50")
	assert.True(t, strings.HasPrefix(html, "<html>"))

	assert.Equal(t, "Signals: RELIANCE.NS", AlertText(hits))
}
