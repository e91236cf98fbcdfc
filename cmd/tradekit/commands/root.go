// Package commands holds the tradekit CLI command tree.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	sourceFlag string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tradekit",
	Short: "Pre-market screening and technical analysis toolkit",
	Long: `tradekit — Pre-market screening and technical analysis for US equities.

Scan pre-market movers, score them on momentum, trend and volume, and
find support/resistance levels before the opening bell.

Usage:
  go run ./cmd/tradekit [command]

Examples:
  go run ./cmd/tradekit scan
  go run ./cmd/tradekit analyze AAPL
  go run ./cmd/tradekit morning --top-n 5
  go run ./cmd/tradekit serve`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		printSessionBanner()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "data source (yahoo|flatfile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// printSessionBanner shows the current US market session in Eastern Time.
func printSessionBanner() {
	et, err := time.LoadLocation("America/New_York")
	if err != nil {
		return
	}
	now := time.Now().In(et)
	fmt.Printf("%s ET — %s\n", now.Format("Mon Jan 02, 03:04 PM"), marketSession(now))
}

// marketSession names the session for a given Eastern Time moment.
func marketSession(t time.Time) string {
	mins := t.Hour()*60 + t.Minute()
	switch {
	case mins < 4*60:
		return "Overnight (market closed)"
	case mins < 9*60+30:
		return "Pre-market"
	case mins < 16*60:
		return "Market open"
	case mins < 20*60:
		return "After-hours"
	default:
		return "Overnight (market closed)"
	}
}
