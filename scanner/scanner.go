// Package scanner detects breakout buy signals in daily OHLCV series:
// days whose close exceeds the prior-window high while volume exceeds a
// multiple of its rolling average.
package scanner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yedidiaSch/stockScanner/indicators"
	"github.com/yedidiaSch/stockScanner/market"
)

// Action is the side of a signal. Only buy signals exist today; the
// simulator ignores anything else.
type Action string

const Buy Action = "BUY"

// Signal is one detected breakout. It is immutable once emitted.
type Signal struct {
	Date               time.Time
	Action             Action
	Price              float64 // triggering close
	ATR                float64 // volatility estimate at the signal date
	BreakoutHigh       float64 // prior-window high that was exceeded
	Volume             float64
	AvgVolumeThreshold float64 // rolling average volume * multiplier
	VolumeRatio        float64 // Volume / AvgVolumeThreshold
}

// Options configures a detection pass. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// VolumeMultiplier scales the rolling average volume into the
	// threshold a breakout day's volume must exceed.
	VolumeMultiplier float64
	// BreakoutDays is the lookback window for the prior high, excluding
	// the current bar.
	BreakoutDays int
	// MaxDaysOld bounds returned signals to the last N bars of the
	// series. nil returns every breakout in the series; the full scan
	// runs either way so a bounded call still logs historic breakouts.
	MaxDaysOld *int
	// ATRPeriod and VolumePeriod are the rolling-statistic windows.
	ATRPeriod    int
	VolumePeriod int
}

// DefaultOptions returns the standard scan parameters: 30-day breakout
// lookback, 8x volume threshold, 20-day ATR and volume windows, signals
// from the last 5 bars.
func DefaultOptions() Options {
	five := 5
	return Options{
		VolumeMultiplier: 8.0,
		BreakoutDays:     30,
		MaxDaysOld:       &five,
		ATRPeriod:        20,
		VolumePeriod:     20,
	}
}

func (o Options) validate() error {
	if o.VolumeMultiplier <= 0 {
		return fmt.Errorf("volume multiplier must be positive, got %g", o.VolumeMultiplier)
	}
	if o.BreakoutDays <= 0 {
		return fmt.Errorf("breakout days must be positive, got %d", o.BreakoutDays)
	}
	if o.MaxDaysOld != nil && *o.MaxDaysOld <= 0 {
		return fmt.Errorf("max days old must be positive when set, got %d", *o.MaxDaysOld)
	}
	if o.ATRPeriod <= 0 {
		return fmt.Errorf("atr period must be positive, got %d", o.ATRPeriod)
	}
	if o.VolumePeriod <= 0 {
		return fmt.Errorf("volume period must be positive, got %d", o.VolumePeriod)
	}
	return nil
}

// Detect scans the series and returns breakout signals in ascending date
// order. Bars whose ATR, average volume or prior high are still undefined
// are skipped without error. Signals older than Options.MaxDaysOld are
// logged but withheld from the result, so one pass serves both daily
// alerting and full-history backtesting.
func Detect(s market.Series, opts Options, log *zap.Logger) ([]Signal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("scanner options: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scanner input: %w", err)
	}

	atr := indicators.ATRSeries(s, opts.ATRPeriod)
	avgVol := indicators.AvgVolumeSeries(s, opts.VolumePeriod)
	priorHigh := indicators.NewRollingMax(opts.BreakoutDays)

	cutoff := 0
	if opts.MaxDaysOld != nil {
		cutoff = len(s) - *opts.MaxDaysOld
	}

	var signals []Signal
	for i, bar := range s {
		// The prior-window high excludes the current bar, so read the
		// max before pushing this bar's high.
		high := priorHigh.Value()
		priorHigh.Update(bar.High)

		if indicators.IsMissing(high) || indicators.IsMissing(atr[i]) || indicators.IsMissing(avgVol[i]) {
			continue
		}

		threshold := avgVol[i] * opts.VolumeMultiplier
		if bar.Close <= high || bar.Volume <= threshold {
			continue
		}

		log.Info("breakout detected",
			zap.String("date", bar.Date.Format(market.DateLayout)),
			zap.Float64("close", bar.Close),
			zap.Float64("breakout_high", high),
			zap.Float64("volume", bar.Volume),
			zap.Float64("volume_threshold", threshold),
		)

		if i < cutoff {
			log.Debug("breakout outside recency bound, not emitted",
				zap.String("date", bar.Date.Format(market.DateLayout)),
				zap.Intp("max_days_old", opts.MaxDaysOld),
			)
			continue
		}

		signals = append(signals, Signal{
			Date:               bar.Date,
			Action:             Buy,
			Price:              bar.Close,
			ATR:                atr[i],
			BreakoutHigh:       high,
			Volume:             bar.Volume,
			AvgVolumeThreshold: threshold,
			VolumeRatio:        bar.Volume / threshold,
		})
	}
	return signals, nil
}
