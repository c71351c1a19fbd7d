package sim

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/yedidiaSch/stockScanner/market"
	"github.com/yedidiaSch/stockScanner/scanner"
)

// Options configures the simulation constants fixed at entry.
type Options struct {
	// ATRMultiple sizes the trailing stop distance below the high-water
	// mark.
	ATRMultiple float64
	// TakeProfitMultiple sizes the take-profit distance above the entry.
	TakeProfitMultiple float64
	// ExpiryDays is the holding horizon; a position still open when a bar
	// dated past entry+ExpiryDays arrives exits at that bar's close.
	ExpiryDays int
}

// DefaultOptions returns the standard simulation constants: 2 ATR trailing
// stop, 4 ATR take-profit, 10-day horizon.
func DefaultOptions() Options {
	return Options{
		ATRMultiple:        2.0,
		TakeProfitMultiple: 4.0,
		ExpiryDays:         10,
	}
}

func (o Options) validate() error {
	if o.ATRMultiple <= 0 {
		return fmt.Errorf("atr multiple must be positive, got %g", o.ATRMultiple)
	}
	if o.TakeProfitMultiple <= 0 {
		return fmt.Errorf("take profit multiple must be positive, got %g", o.TakeProfitMultiple)
	}
	if o.ExpiryDays <= 0 {
		return fmt.Errorf("expiry days must be positive, got %d", o.ExpiryDays)
	}
	return nil
}

// Simulate opens one position per BUY signal and replays the series
// bar-by-bar, evaluating every open position independently. Evaluation of
// a position begins the bar strictly after its entry date; the entry bar
// itself cannot trigger its own exit. Positions are returned in signal
// order; those the series never closes remain OPEN, which is a valid
// outcome, not an error.
func Simulate(signals []scanner.Signal, series market.Series, mkt string, opts Options, log *zap.Logger) ([]Position, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("sim options: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("sim input: series is empty")
	}

	positions := make([]Position, 0, len(signals))
	for _, sig := range signals {
		if sig.Action != scanner.Buy {
			continue
		}
		if math.IsNaN(sig.ATR) {
			log.Warn("signal has no ATR, skipping trade",
				zap.String("date", sig.Date.Format(market.DateLayout)),
			)
			continue
		}
		if series[len(series)-1].Date.Before(sig.Date) {
			return nil, fmt.Errorf("sim input: no bars at or after signal date %s", sig.Date.Format(market.DateLayout))
		}
		positions = append(positions, Position{
			EntryDate:  sig.Date,
			EntryPrice: sig.Price,
			ATR:        sig.ATR,
			MaxPrice:   sig.Price,
			StopLoss:   sig.Price - opts.ATRMultiple*sig.ATR,
			TakeProfit: sig.Price + opts.TakeProfitMultiple*sig.ATR,
			ExpiryDate: sig.Date.AddDate(0, 0, opts.ExpiryDays),
			Status:     StatusOpen,
			Market:     mkt,
		})
	}

	for _, bar := range series {
		for i := range positions {
			p := &positions[i]
			if p.Status.Terminal() {
				continue
			}
			// Entry bar and anything earlier never touches the position.
			if !bar.Date.After(p.EntryDate) {
				continue
			}
			p.observe(bar, opts.ATRMultiple)
			if p.Status.Terminal() {
				log.Info("position closed",
					zap.String("entry_date", p.EntryDate.Format(market.DateLayout)),
					zap.String("exit_date", p.ExitDate.Format(market.DateLayout)),
					zap.String("status", string(p.Status)),
					zap.Float64("pct_change", p.PctChange),
				)
			}
		}
	}

	return positions, nil
}
