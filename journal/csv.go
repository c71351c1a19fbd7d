package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/yedidiaSch/stockScanner/market"
	"github.com/yedidiaSch/stockScanner/sim"
)

var header = []string{
	"id", "ticker", "market",
	"entry_date", "entry_price", "atr",
	"max_price", "stop_loss", "take_profit", "expiry_date",
	"status", "exit_date", "exit_price", "pct_change",
}

// CSVJournal appends position records to a single CSV results file.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordPosition(r Record) error {
	// Exit columns stay blank for positions the backtest never closed.
	exitDate, exitPrice, pct := "", "", ""
	if r.Closed() {
		exitDate = r.ExitDate.Format(market.DateLayout)
		exitPrice = f(r.ExitPrice)
		pct = f(r.PctChange)
	}

	err := j.w.Write([]string{
		r.ID,
		r.Ticker,
		r.Market,
		r.EntryDate.Format(market.DateLayout),
		f(r.EntryPrice),
		f(r.ATR),
		f(r.MaxPrice),
		f(r.StopLoss),
		f(r.TakeProfit),
		r.ExpiryDate.Format(market.DateLayout),
		string(r.Status),
		exitDate,
		exitPrice,
		pct,
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

// ReadCSVRecords loads a results file written by CSVJournal, for the
// aggregate report.
func ReadCSVRecords(path string) ([]Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty results file", path)
	}

	var out []Record
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%s row %d: want %d columns, got %d", path, i+2, len(header), len(row))
		}
		rec := Record{
			ID:     row[0],
			Ticker: row[1],
			Market: row[2],
			Status: sim.Status(row[10]),
		}
		if rec.EntryDate, err = time.Parse(market.DateLayout, row[3]); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if rec.EntryPrice, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if rec.ATR, err = strconv.ParseFloat(row[5], 64); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if rec.MaxPrice, err = strconv.ParseFloat(row[6], 64); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if rec.StopLoss, err = strconv.ParseFloat(row[7], 64); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if rec.TakeProfit, err = strconv.ParseFloat(row[8], 64); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if rec.ExpiryDate, err = time.Parse(market.DateLayout, row[9]); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if row[11] != "" {
			if rec.ExitDate, err = time.Parse(market.DateLayout, row[11]); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
			}
			if rec.ExitPrice, err = strconv.ParseFloat(row[12], 64); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
			}
			if rec.PctChange, err = strconv.ParseFloat(row[13], 64); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
