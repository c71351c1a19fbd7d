// Package report aggregates simulated position records into portfolio
// summaries: per ticker, per market, per exit year and year-by-market,
// plus an even-split capital projection. Aggregation is a pure fold over
// the records; persistence and printing stay at the edges.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yedidiaSch/stockScanner/journal"
)

// TickerStat is the per-ticker summary row.
type TickerStat struct {
	Ticker string
	Trades int
	AvgPct float64
}

// Summary is the aggregate view over one backtest's position records.
// Only closed positions contribute; a summary over zero closed trades is
// valid and renders as such.
type Summary struct {
	Trades       int
	AvgPct       float64
	TotalCapital float64
	FinalAmount  float64
	ByTicker     []TickerStat
	ByMarket     []journal.GroupStat
	ByYear       []journal.GroupStat
	ByYearMarket []journal.GroupStat
}

type bucket struct {
	trades int
	sumPct float64
}

func (b bucket) avg() float64 {
	if b.trades == 0 {
		return 0
	}
	return b.sumPct / float64(b.trades)
}

// Build folds the records into a Summary. Capital is split evenly across
// closed trades; each slice grows by its trade's percentage change.
func Build(records []journal.Record, totalCapital float64) Summary {
	byTicker := map[string]*bucket{}
	byMarket := map[string]*bucket{}
	byYear := map[int]*bucket{}
	type ym struct {
		year   int
		market string
	}
	byYearMarket := map[ym]*bucket{}

	add := func(m map[string]*bucket, k string, pct float64) {
		b := m[k]
		if b == nil {
			b = &bucket{}
			m[k] = b
		}
		b.trades++
		b.sumPct += pct
	}

	s := Summary{TotalCapital: totalCapital}
	var sumPct float64
	for _, r := range records {
		if !r.Closed() {
			continue
		}
		s.Trades++
		sumPct += r.PctChange

		add(byTicker, r.Ticker, r.PctChange)
		add(byMarket, r.Market, r.PctChange)

		year := r.ExitDate.Year()
		if b := byYear[year]; b != nil {
			b.trades++
			b.sumPct += r.PctChange
		} else {
			byYear[year] = &bucket{trades: 1, sumPct: r.PctChange}
		}
		k := ym{year, r.Market}
		if b := byYearMarket[k]; b != nil {
			b.trades++
			b.sumPct += r.PctChange
		} else {
			byYearMarket[k] = &bucket{trades: 1, sumPct: r.PctChange}
		}
	}

	if s.Trades > 0 {
		s.AvgPct = sumPct / float64(s.Trades)
		perTrade := totalCapital / float64(s.Trades)
		for _, r := range records {
			if r.Closed() {
				s.FinalAmount += perTrade * (1 + r.PctChange/100)
			}
		}
	} else {
		s.FinalAmount = totalCapital
	}

	for ticker, b := range byTicker {
		s.ByTicker = append(s.ByTicker, TickerStat{Ticker: ticker, Trades: b.trades, AvgPct: b.avg()})
	}
	sort.Slice(s.ByTicker, func(i, j int) bool { return s.ByTicker[i].Ticker < s.ByTicker[j].Ticker })

	for mkt, b := range byMarket {
		s.ByMarket = append(s.ByMarket, journal.GroupStat{Market: mkt, Trades: b.trades, AvgPct: b.avg()})
	}
	sort.Slice(s.ByMarket, func(i, j int) bool { return s.ByMarket[i].Market < s.ByMarket[j].Market })

	for year, b := range byYear {
		s.ByYear = append(s.ByYear, journal.GroupStat{Year: year, Trades: b.trades, AvgPct: b.avg()})
	}
	sort.Slice(s.ByYear, func(i, j int) bool { return s.ByYear[i].Year < s.ByYear[j].Year })

	for k, b := range byYearMarket {
		s.ByYearMarket = append(s.ByYearMarket, journal.GroupStat{
			Market: k.market, Year: k.year, Trades: b.trades, AvgPct: b.avg(),
		})
	}
	sort.Slice(s.ByYearMarket, func(i, j int) bool {
		a, b := s.ByYearMarket[i], s.ByYearMarket[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Market < b.Market
	})

	return s
}

// String renders the summary tables for terminal output.
func (s Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Global Summary:\n")
	fmt.Fprintf(&b, "  Total trades:         %6d\n", s.Trades)
	fmt.Fprintf(&b, "  Average %% per trade:  %6.2f%%\n", s.AvgPct)
	fmt.Fprintf(&b, "  Final amount (from %.0f): %.2f\n", s.TotalCapital, s.FinalAmount)

	if len(s.ByMarket) > 0 {
		fmt.Fprintf(&b, "\nPerformance by Market:\n")
		fmt.Fprintf(&b, "  %-15s %6s %8s\n", "Market", "Trades", "Avg %")
		for _, g := range s.ByMarket {
			fmt.Fprintf(&b, "  %-15s %6d %7.2f%%\n", g.Market, g.Trades, g.AvgPct)
		}
	}

	if len(s.ByYear) > 0 {
		fmt.Fprintf(&b, "\nPerformance by Year:\n")
		fmt.Fprintf(&b, "  %-6s %6s %8s\n", "Year", "Trades", "Avg %")
		for _, g := range s.ByYear {
			fmt.Fprintf(&b, "  %-6d %6d %7.2f%%\n", g.Year, g.Trades, g.AvgPct)
		}
	}

	if len(s.ByYearMarket) > 0 {
		fmt.Fprintf(&b, "\nPerformance by Year & Market:\n")
		fmt.Fprintf(&b, "  %-6s %-12s %6s %8s\n", "Year", "Market", "Trades", "Avg %")
		for _, g := range s.ByYearMarket {
			fmt.Fprintf(&b, "  %-6d %-12s %6d %7.2f%%\n", g.Year, g.Market, g.Trades, g.AvgPct)
		}
	}

	return b.String()
}
