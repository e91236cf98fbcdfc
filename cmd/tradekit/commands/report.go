package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/report"
)

var (
	reportPreset    string
	reportOutputDir string
)

// reportRankLimit caps how many scan candidates get ranked for the report.
const reportRankLimit = 10

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and save a daily report",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()
		ctx := context.Background()

		PrintInfo("Generating daily report...")

		candidates, err := d.scanner.ScanPremarket(ctx, reportPreset, nil)
		if err != nil {
			return err
		}

		var ranked []market.RankedCandidate
		if len(candidates) > 0 {
			top := candidates
			if len(top) > reportRankLimit {
				top = top[:reportRankLimit]
			}
			tickers := make([]string, len(top))
			for i, c := range top {
				tickers[i] = c.Ticker
			}
			PrintInfo(fmt.Sprintf("Ranking top %d candidates...", len(tickers)))

			ranked, err = d.ranker.Rank(ctx, tickers)
			if err != nil {
				return err
			}
		}

		now := d.cfg.Now()
		content := report.DailyReport(candidates, ranked, now)
		path, err := report.SaveReport(content, reportOutputDir, "", now)
		if err != nil {
			return err
		}

		PrintSuccess("Report saved: " + path)
		fmt.Println(content)

		if len(ranked) > 0 {
			if err := d.alerter.AlertHighScores(ctx, ranked); err != nil {
				d.logger.WithError(err).Warn("Failed to send high-score alerts")
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportPreset, "preset", "premarket_gap", "screener preset")
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "", "report output directory")
	rootCmd.AddCommand(reportCmd)
}
