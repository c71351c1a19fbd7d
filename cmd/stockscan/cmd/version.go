package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the stockscan CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stockscan version %s\n", version)
		fmt.Println("Daily breakout scanner and position simulator")
		fmt.Println("https://github.com/yedidiaSch/stockScanner")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
