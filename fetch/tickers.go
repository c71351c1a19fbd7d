package fetch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTickers reads a watchlist file: one ticker per line, blank lines and
// lines starting with '#' skipped. An empty watchlist is an error.
func LoadTickers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ticker file: %w", err)
	}
	defer f.Close()

	var tickers []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tickers = append(tickers, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%s: no tickers found", path)
	}
	return tickers, nil
}
