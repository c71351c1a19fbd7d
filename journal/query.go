package journal

import "fmt"

const recordColumns = `id, ticker, market, entry_date, entry_price, atr, max_price, stop_loss, take_profit, expiry_date, status, exit_date, exit_price, pct_change`

// ListPositions returns every record ordered by entry date, then ID.
func (j *SQLite) ListPositions() ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT ` + recordColumns + `
		FROM positions
		ORDER BY entry_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListByMarket returns every record for one market, ordered by entry date.
func (j *SQLite) ListByMarket(mkt string) ([]Record, error) {
	rows, err := j.db.Query(`
		SELECT `+recordColumns+`
		FROM positions
		WHERE market = ?
		ORDER BY entry_date ASC, id ASC`, mkt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GroupStat is one aggregation row: trade count and average percentage
// change over the closed positions in the group.
type GroupStat struct {
	Market string // empty when grouping by year only
	Year   int    // 0 when grouping by market only
	Trades int
	AvgPct float64
}

// SummaryByMarket aggregates closed positions per market.
func (j *SQLite) SummaryByMarket() ([]GroupStat, error) {
	return j.groupStats(`
		SELECT market, 0, COUNT(*), AVG(pct_change)
		FROM positions
		WHERE pct_change IS NOT NULL
		GROUP BY market
		ORDER BY market`)
}

// SummaryByYear aggregates closed positions per exit year.
func (j *SQLite) SummaryByYear() ([]GroupStat, error) {
	return j.groupStats(`
		SELECT '', CAST(strftime('%Y', exit_date) AS INTEGER), COUNT(*), AVG(pct_change)
		FROM positions
		WHERE pct_change IS NOT NULL
		GROUP BY strftime('%Y', exit_date)
		ORDER BY 2`)
}

// SummaryByYearMarket aggregates closed positions per exit year and market.
func (j *SQLite) SummaryByYearMarket() ([]GroupStat, error) {
	return j.groupStats(`
		SELECT market, CAST(strftime('%Y', exit_date) AS INTEGER), COUNT(*), AVG(pct_change)
		FROM positions
		WHERE pct_change IS NOT NULL
		GROUP BY strftime('%Y', exit_date), market
		ORDER BY 2, market`)
}

func (j *SQLite) groupStats(query string) ([]GroupStat, error) {
	rows, err := j.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GroupStat
	for rows.Next() {
		var g GroupStat
		if err := rows.Scan(&g.Market, &g.Year, &g.Trades, &g.AvgPct); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
