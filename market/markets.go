package market

import "strings"

// DefaultMarket is assumed for tickers without an exchange suffix.
const DefaultMarket = "USA"

// UnknownMarket labels suffixes missing from the table.
const UnknownMarket = "Unknown"

// marketSuffixes maps Yahoo exchange suffixes to market labels.
var marketSuffixes = map[string]string{
	"NS": "India",
	"DE": "Germany",
	"PA": "France",
	"MI": "Italy",
	"AS": "Netherlands",
	"L":  "UK",
	"SS": "China",
	"SZ": "China",
	"T":  "Japan",
	"HK": "Hong Kong",
	"TW": "Taiwan",
	"KS": "South Korea",
	"TA": "Tel Aviv",
	"IL": "Israel",
}

// MarketForTicker maps a ticker's exchange suffix to its market label.
// Anything after the first underscore is ignored, so data filenames like
// "RELIANCE.NS_5y" classify the same as the bare ticker. A ticker with no
// suffix belongs to DefaultMarket; an unrecognized suffix yields
// UnknownMarket rather than an error.
func MarketForTicker(ticker string) string {
	if i := strings.IndexByte(ticker, '_'); i >= 0 {
		ticker = ticker[:i]
	}
	i := strings.LastIndexByte(ticker, '.')
	if i < 0 {
		return DefaultMarket
	}
	suffix := strings.ToUpper(ticker[i+1:])
	if m, ok := marketSuffixes[suffix]; ok {
		return m
	}
	return UnknownMarket
}
