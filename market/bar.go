// Package market provides daily OHLCV bar series and market classification.
package market

import (
	"fmt"
	"sort"
	"time"
)

// Bar represents one calendar day's OHLCV record.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an ordered sequence of daily bars, strictly increasing by date.
// The scanner and simulator treat it as an immutable snapshot.
type Series []Bar

// Validate checks the series invariants: non-empty, strictly ascending
// unique dates, positive prices, non-negative volume, low <= high.
func (s Series) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("series is empty")
	}
	for i, b := range s {
		if b.Date.IsZero() {
			return fmt.Errorf("bar %d: missing date", i)
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): prices must be positive", i, b.Date.Format(DateLayout))
		}
		if b.Low > b.High {
			return fmt.Errorf("bar %d (%s): low %.4f above high %.4f", i, b.Date.Format(DateLayout), b.Low, b.High)
		}
		if b.Volume < 0 {
			return fmt.Errorf("bar %d (%s): negative volume", i, b.Date.Format(DateLayout))
		}
		if i > 0 && !s[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bar %d (%s): dates must be strictly increasing", i, b.Date.Format(DateLayout))
		}
	}
	return nil
}

// Sort orders the series by date ascending in place.
func (s Series) Sort() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// FilterFrom returns the sub-series of bars dated at or after start.
// The result aliases the receiver's backing array.
func (s Series) FilterFrom(start time.Time) Series {
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(start) })
	return s[i:]
}

// DateLayout is the calendar-date format used throughout: CSV files,
// log fields and error messages.
const DateLayout = "2006-01-02"
