package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yedidiaSch/stockScanner/market"
	"github.com/yedidiaSch/stockScanner/sim"
)

// SQLite is a position journal backed by a SQLite database. Dates are
// stored as calendar-date text so SQLite's date functions group them
// directly.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordPosition(r Record) error {
	var exitDate, exitPrice, pct any
	if r.Closed() {
		exitDate = r.ExitDate.Format(market.DateLayout)
		exitPrice = r.ExitPrice
		pct = r.PctChange
	}

	_, err := j.db.Exec(`
		INSERT INTO positions
		(id, ticker, market, entry_date, entry_price, atr, max_price, stop_loss, take_profit, expiry_date, status, exit_date, exit_price, pct_change)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Ticker, r.Market,
		r.EntryDate.Format(market.DateLayout), r.EntryPrice, r.ATR,
		r.MaxPrice, r.StopLoss, r.TakeProfit,
		r.ExpiryDate.Format(market.DateLayout), string(r.Status),
		exitDate, exitPrice, pct,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var entry, expiry string
	var status string
	var exitDate sql.NullString
	var exitPrice, pct sql.NullFloat64

	err := rows.Scan(
		&rec.ID, &rec.Ticker, &rec.Market,
		&entry, &rec.EntryPrice, &rec.ATR,
		&rec.MaxPrice, &rec.StopLoss, &rec.TakeProfit,
		&expiry, &status,
		&exitDate, &exitPrice, &pct,
	)
	if err != nil {
		return Record{}, err
	}

	rec.Status = sim.Status(status)
	if rec.EntryDate, err = time.Parse(market.DateLayout, entry); err != nil {
		return Record{}, err
	}
	if rec.ExpiryDate, err = time.Parse(market.DateLayout, expiry); err != nil {
		return Record{}, err
	}
	if exitDate.Valid {
		if rec.ExitDate, err = time.Parse(market.DateLayout, exitDate.String); err != nil {
			return Record{}, err
		}
		rec.ExitPrice = exitPrice.Float64
		rec.PctChange = pct.Float64
	}
	return rec, nil
}
