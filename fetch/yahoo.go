// Package fetch retrieves daily OHLCV history from Yahoo Finance and
// loads ticker watchlists. It is a collaborator of the scanner, not part
// of it: the scanner only ever sees a validated market.Series.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yedidiaSch/stockScanner/market"
)

// DefaultBaseURL is Yahoo Finance's chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Range is the history span requested from Yahoo (its "range" values).
type Range string

const (
	Range2Mo Range = "2mo"
	Range6Mo Range = "6mo"
	Range1Y  Range = "1y"
	Range5Y  Range = "5y"
)

// Client fetches daily candles from the Yahoo Finance chart endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Yahoo Finance client. An empty baseURL selects the
// public endpoint; tests point it at a local server.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// chartResp mirrors the slice of Yahoo's chart JSON we consume. OHLCV
// arrays are parallel to the timestamp array; individual entries may be
// null on halted days.
type chartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Daily fetches rng worth of daily bars for ticker, sorted ascending by
// date. Days Yahoo reports with null prices are dropped.
func (c *Client) Daily(ctx context.Context, ticker string, rng Range) (market.Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("range", string(rng))
	q.Set("interval", "1d")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "stockScanner/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", ticker, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d: %s", ticker, resp.StatusCode, truncate(body))
	}

	var cr chartResp
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("fetch %s: decode: %w", ticker, err)
	}
	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("fetch %s: %s: %s", ticker, cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("fetch %s: no data", ticker)
	}

	res := cr.Chart.Result[0]
	quote := res.Indicators.Quote[0]

	s := make(market.Series, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		t := time.Unix(ts, 0).UTC()
		s = append(s, market.Bar{
			Date:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: *quote.Volume[i],
		})
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("fetch %s: no usable bars", ticker)
	}

	s.Sort()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	return s, nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
