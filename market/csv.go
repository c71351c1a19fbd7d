package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"date", "open", "high", "low", "close", "volume"}

// WriteCSV saves the series to path with a header row. Dates are written
// as calendar dates; times of day are not preserved.
func WriteCSV(path string, s Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, b := range s {
		row := []string{
			b.Date.Format(DateLayout),
			fmtPrice(b.Open),
			fmtPrice(b.High),
			fmtPrice(b.Low),
			fmtPrice(b.Close),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// ReadCSV loads a series previously written by WriteCSV. Rows that fail to
// parse are an input error, not silently skipped.
func ReadCSV(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	start := 0
	if rows[0][0] == csvHeader[0] || rows[0][0] == "Date" {
		start = 1
	}

	s := make(Series, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 6 {
			return nil, fmt.Errorf("%s row %d: need 6 columns, got %d", path, i+1, len(row))
		}
		date, err := time.Parse(DateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q: %w", path, i+1, row[0], err)
		}
		vals := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: bad %s %q: %w", path, i+1, csvHeader[j], row[j], err)
			}
			vals[j-1] = v
		}
		s = append(s, Bar{
			Date:   date,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return s, nil
}

func fmtPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
