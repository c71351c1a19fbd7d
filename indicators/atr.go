package indicators

import (
	"math"

	"github.com/yedidiaSch/stockScanner/market"
)

// TrueRange calculates the True Range of a bar given the previous bar:
// the largest of high-low, |high-prevClose| and |low-prevClose|.
func TrueRange(cur, prev market.Bar) float64 {
	highLow := cur.High - cur.Low
	highClose := math.Abs(cur.High - prev.Close)
	lowClose := math.Abs(cur.Low - prev.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}

// ATRSeries computes the Average True Range for every bar as the rolling
// mean of True Range over `period` bars. The result is parallel to the
// series; the first bar has no True Range, so entries before index
// `period` are NaN.
func ATRSeries(s market.Series, period int) []float64 {
	out := make([]float64, len(s))
	mean := NewRollingMean(period)
	for i := range s {
		tr := math.NaN()
		if i > 0 {
			tr = TrueRange(s[i], s[i-1])
		}
		mean.Update(tr)
		out[i] = mean.Value()
	}
	return out
}

// AvgVolumeSeries computes the rolling mean of volume over `period` bars,
// parallel to the series, NaN until the window fills.
func AvgVolumeSeries(s market.Series, period int) []float64 {
	out := make([]float64, len(s))
	mean := NewRollingMean(period)
	for i := range s {
		mean.Update(s[i].Volume)
		out[i] = mean.Value()
	}
	return out
}
