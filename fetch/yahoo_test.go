package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartJSON(timestamps []int64, closes []string) string {
	ts := ""
	opens, highs, lows, vols := "", "", "", ""
	for i, t := range timestamps {
		sep := ""
		if i > 0 {
			sep = ","
		}
		ts += fmt.Sprintf("%s%d", sep, t)
		opens += sep + "100"
		highs += sep + "110"
		lows += sep + "95"
		vols += sep + "1000"
	}
	cl := ""
	for i, c := range closes {
		if i > 0 {
			cl += ","
		}
		cl += c
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"open":[%s],"high":[%s],"low":[%s],"close":[%s],"volume":[%s]}]}}],"error":null}}`,
		ts, opens, highs, lows, cl, vols)
}

func TestDaily(t *testing.T) {
	day0 := time.Date(2024, 2, 5, 14, 30, 0, 0, time.UTC)
	timestamps := []int64{day0.Unix(), day0.AddDate(0, 0, 1).Unix(), day0.AddDate(0, 0, 2).Unix()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "5y", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartJSON(timestamps, []string{"101", "102", "103"}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	s, err := c.Daily(context.Background(), "AAPL", Range5Y)
	require.NoError(t, err)
	require.Len(t, s, 3)

	// Bars are normalized to calendar dates.
	assert.True(t, s[0].Date.Equal(time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)))
	assert.InDelta(t, 101.0, s[0].Close, 1e-9)
	assert.InDelta(t, 103.0, s[2].Close, 1e-9)
}

func TestDailyDropsNullBars(t *testing.T) {
	day0 := time.Date(2024, 2, 5, 14, 30, 0, 0, time.UTC)
	timestamps := []int64{day0.Unix(), day0.AddDate(0, 0, 1).Unix(), day0.AddDate(0, 0, 2).Unix()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON(timestamps, []string{"101", "null", "103"}))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	s, err := c.Daily(context.Background(), "AAPL", Range5Y)
	require.NoError(t, err)
	assert.Len(t, s, 2)
}

func TestDailyAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Daily(context.Background(), "NOPE", Range5Y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestDailyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Daily(context.Background(), "AAPL", Range5Y)
	assert.Error(t, err)
}

func TestLoadTickers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	data := "AAPL\n\n# european names\nVOD.L\nRELIANCE.NS\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	tickers, err := LoadTickers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "VOD.L", "RELIANCE.NS"}, tickers)
}

func TestLoadTickersEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

	_, err := LoadTickers(path)
	assert.Error(t, err)
}
