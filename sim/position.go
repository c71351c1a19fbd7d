// Package sim replays price history against breakout signals to determine
// when each hypothetical trade would have exited and what it returned.
package sim

import (
	"time"

	"github.com/yedidiaSch/stockScanner/market"
)

// Status is a position's lifecycle state. A position is created OPEN and
// transitions to exactly one terminal status, after which it never mutates.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusStopLoss   Status = "STOP_LOSS"
	StatusTakeProfit Status = "TAKE_PROFIT"
	StatusExitTime   Status = "EXIT_TIME"
)

// Terminal reports whether the status is an exit state.
func (s Status) Terminal() bool {
	return s != StatusOpen
}

// Position is one simulated trade opened from a breakout signal.
type Position struct {
	EntryDate  time.Time
	EntryPrice float64
	ATR        float64
	MaxPrice   float64 // high-water mark since entry, never decreases
	StopLoss   float64 // trails MaxPrice, ratchets up only
	TakeProfit float64 // fixed at entry
	ExpiryDate time.Time
	Status     Status
	ExitDate   time.Time
	ExitPrice  float64
	PctChange  float64 // defined once Status is terminal
	Market     string
}

// observe applies one bar to an open position: raise the high-water mark
// and trailing stop first, then evaluate exits in fixed priority. Time
// expiry outranks the stop, which outranks the take-profit; the first hit
// closes the position and the rest are not evaluated. The stop fills at
// the stop price, the take at the take price, expiry at the bar's close.
func (p *Position) observe(bar market.Bar, atrMultiple float64) {
	if p.Status.Terminal() {
		return
	}

	if bar.High > p.MaxPrice {
		p.MaxPrice = bar.High
		p.StopLoss = p.MaxPrice - atrMultiple*p.ATR
	}

	switch {
	case bar.Date.After(p.ExpiryDate):
		p.close(bar.Date, bar.Close, StatusExitTime)
	case bar.Low <= p.StopLoss:
		p.close(bar.Date, p.StopLoss, StatusStopLoss)
	case bar.High >= p.TakeProfit:
		p.close(bar.Date, p.TakeProfit, StatusTakeProfit)
	}
}

func (p *Position) close(date time.Time, price float64, status Status) {
	p.Status = status
	p.ExitDate = date
	p.ExitPrice = price
	p.PctChange = (price - p.EntryPrice) / p.EntryPrice * 100
}
