package report

import (
	"html/template"
	"strings"

	"github.com/yedidiaSch/stockScanner/market"
	"github.com/yedidiaSch/stockScanner/scanner"
)

// TickerSignals pairs a ticker with its detected breakout signals, one
// entry per ticker with at least one signal.
type TickerSignals struct {
	Ticker  string
	Market  string
	Signals []scanner.Signal
}

var alertTmpl = template.Must(template.New("alert").Funcs(template.FuncMap{
	"date": func(s scanner.Signal) string { return s.Date.Format(market.DateLayout) },
}).Parse(`<html>
<head>
<style>
  body { font-family: Arial, sans-serif; }
  table { border-collapse: collapse; margin-bottom: 20px; }
  th, td { border: 1px solid #ddd; padding: 6px; }
  th { background-color: #4CAF50; color: white; }
</style>
</head>
<body>
<h2>Buy Signals Alert</h2>
<p><b>Symbols with signals:</b></p>
<ul>
{{- range .}}
  <li>{{.Ticker}} ({{.Market}})</li>
{{- end}}
</ul>
<hr>
{{- range .}}
<h3>{{.Ticker}}</h3>
<table>
  <tr><th>Date</th><th>Price</th><th>Breakout High</th><th>ATR</th><th>Volume Ratio</th></tr>
{{- range .Signals}}
  <tr><td>{{date .}}</td><td>{{printf "%.2f" .Price}}</td><td>{{printf "%.2f" .BreakoutHigh}}</td><td>{{printf "%.2f" .ATR}}</td><td>{{printf "%.1fx" .VolumeRatio}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>`))

// AlertHTML renders the email body for an alert run.
func AlertHTML(hits []TickerSignals) (string, error) {
	var b strings.Builder
	if err := alertTmpl.Execute(&b, hits); err != nil {
		return "", err
	}
	return b.String(), nil
}

// AlertText is the plain-text alternative part: just the ticker list.
func AlertText(hits []TickerSignals) string {
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.Ticker
	}
	return "Signals: " + strings.Join(names, ", ")
}
