package main

import (
	"os"

	"github.com/yedidiaSch/stockScanner/cmd/stockscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
