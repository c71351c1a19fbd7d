// Package journal persists simulated position records for later
// aggregation, either as per-run CSV files or a SQLite database.
package journal

import (
	"time"

	"github.com/yedidiaSch/stockScanner/pkg/id"
	"github.com/yedidiaSch/stockScanner/sim"
)

// Record is one simulated position as persisted: the position plus the
// ticker it was traded on and a sortable identifier.
type Record struct {
	ID         string
	Ticker     string
	Market     string
	EntryDate  time.Time
	EntryPrice float64
	ATR        float64
	MaxPrice   float64
	StopLoss   float64
	TakeProfit float64
	ExpiryDate time.Time
	Status     sim.Status
	ExitDate   time.Time // zero while the position is still open
	ExitPrice  float64
	PctChange  float64
}

// Closed reports whether the record describes an exited position.
func (r Record) Closed() bool {
	return r.Status.Terminal()
}

// FromPosition builds a persistable record from a simulated position,
// assigning it a fresh ULID.
func FromPosition(ticker string, p sim.Position) Record {
	return Record{
		ID:         id.New(),
		Ticker:     ticker,
		Market:     p.Market,
		EntryDate:  p.EntryDate,
		EntryPrice: p.EntryPrice,
		ATR:        p.ATR,
		MaxPrice:   p.MaxPrice,
		StopLoss:   p.StopLoss,
		TakeProfit: p.TakeProfit,
		ExpiryDate: p.ExpiryDate,
		Status:     p.Status,
		ExitDate:   p.ExitDate,
		ExitPrice:  p.ExitPrice,
		PctChange:  p.PctChange,
	}
}

// Journal receives position records as a backtest produces them.
type Journal interface {
	RecordPosition(Record) error
	Close() error
}
