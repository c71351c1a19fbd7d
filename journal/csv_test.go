package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yedidiaSch/stockScanner/sim"
)

func sampleRecord(status sim.Status) Record {
	entry := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{
		ID:         "01HTEST00000000000000000RE",
		Ticker:     "RELIANCE.NS",
		Market:     "India",
		EntryDate:  entry,
		EntryPrice: 100,
		ATR:        5,
		MaxPrice:   110,
		StopLoss:   100,
		TakeProfit: 120,
		ExpiryDate: entry.AddDate(0, 0, 10),
		Status:     status,
	}
	if status.Terminal() {
		rec.ExitDate = entry.AddDate(0, 0, 4)
		rec.ExitPrice = 90
		rec.PctChange = -10
	}
	return rec
}

func TestCSVJournalHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(data)))
	got, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, header, got)
}

func TestCSVJournalRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	closed := sampleRecord(sim.StatusStopLoss)
	open := sampleRecord(sim.StatusOpen)
	open.ID = "01HTEST00000000000000000OP"

	require.NoError(t, j.RecordPosition(closed))
	require.NoError(t, j.RecordPosition(open))
	require.NoError(t, j.Close())

	recs, err := ReadCSVRecords(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, closed.ID, recs[0].ID)
	assert.Equal(t, sim.StatusStopLoss, recs[0].Status)
	assert.True(t, recs[0].Closed())
	assert.InDelta(t, -10.0, recs[0].PctChange, 1e-6)
	assert.True(t, recs[0].ExitDate.Equal(closed.ExitDate))

	assert.Equal(t, sim.StatusOpen, recs[1].Status)
	assert.False(t, recs[1].Closed())
	assert.True(t, recs[1].ExitDate.IsZero())
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	// A directory is not creatable as a file.
	j, err := NewCSV(t.TempDir())
	assert.Error(t, err)
	assert.Nil(t, j)
}

func TestNewCSVHeaderWriteError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	j, err := NewCSV("/dev/full")
	assert.Error(t, err)
	assert.Nil(t, j)
}

func TestFromPositionAssignsID(t *testing.T) {
	p := sim.Position{
		EntryDate:  time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		EntryPrice: 100,
		Status:     sim.StatusOpen,
		Market:     "USA",
	}
	a := FromPosition("AAPL", p)
	b := FromPosition("AAPL", p)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "AAPL", a.Ticker)
	assert.Equal(t, "USA", a.Market)
}
