package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/analysis"
	"github.com/wonny/tradekit/internal/report"
)

var levelsPeriod string

var levelsCmd = &cobra.Command{
	Use:   "levels TICKER",
	Short: "Show support and resistance levels for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()
		ctx := context.Background()

		ticker := strings.ToUpper(args[0])
		PrintInfo(fmt.Sprintf("Support/Resistance for %s...", ticker))

		series, err := d.provider.History(ctx, ticker, levelsPeriod, "1d")
		if err != nil {
			return err
		}
		if len(series) == 0 {
			PrintError("No data for " + ticker)
			return nil
		}

		price := series[len(series)-1].Close
		if q, err := d.provider.Quote(ctx, ticker); err == nil && q.Price != 0 {
			price = q.Price
		}

		sr := analysis.FindSupportResistance(series, srOrder, srTolerancePct)
		nearest := analysis.NearestLevels(price, sr, nearestLevels)

		fmt.Printf("\n  Current: $%.2f\n\n", price)

		for _, r := range nearest.Resistance {
			dist := (r.Price - price) / price * 100
			fmt.Printf("  R $%.2f  (+%.1f%%)  strength: %d\n", r.Price, dist, r.Strength)
		}
		fmt.Printf("  → $%.2f\n", price)
		for _, s := range nearest.Support {
			dist := (price - s.Price) / price * 100
			fmt.Printf("  S $%.2f  (-%.1f%%)  strength: %d\n", s.Price, dist, s.Strength)
		}

		last := series[len(series)-1]
		report.PrintPivots(ticker, analysis.PivotPoints(last.High, last.Low, last.Close))

		if hvn := analysis.HighVolumeNodes(series.Closes(), series.Volumes(), 20, 3); len(hvn) > 0 {
			parts := make([]string, len(hvn))
			for i, p := range hvn {
				parts[i] = fmt.Sprintf("$%.2f", p)
			}
			fmt.Printf("  High Volume Nodes: %s\n\n", strings.Join(parts, "  "))
		}
		return nil
	},
}

func init() {
	levelsCmd.Flags().StringVar(&levelsPeriod, "period", "3mo", "history period for level detection")
	rootCmd.AddCommand(levelsCmd)
}
