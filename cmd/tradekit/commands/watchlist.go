package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/report"
)

var watchlistName string

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Review watchlist tickers with pre-market data",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()

		PrintInfo(fmt.Sprintf("Scanning watchlist '%s'...", watchlistName))

		candidates, err := d.scanner.ScanWatchlist(context.Background(), watchlistName)
		if err != nil {
			return err
		}

		report.PrintScanResults(candidates, "Watchlist: "+watchlistName)
		return nil
	},
}

func init() {
	watchlistCmd.Flags().StringVar(&watchlistName, "name", "default", "watchlist name from config")
	rootCmd.AddCommand(watchlistCmd)
}
