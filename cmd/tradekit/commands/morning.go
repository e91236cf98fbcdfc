package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/analysis"
	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/report"
	"github.com/wonny/tradekit/pkg/config"
)

var (
	morningPreset string
	morningTopN   int
)

var morningCmd = &cobra.Command{
	Use:   "morning",
	Short: "Full morning pre-market workflow: scan + analyze top picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()
		ctx := context.Background()

		PrintHeader("Step 1: Pre-Market Scan")
		candidates, err := d.scanner.ScanPremarket(ctx, morningPreset, nil)
		if err != nil {
			return err
		}
		report.PrintScanResults(candidates, "Pre-Market Scanner")

		if len(candidates) == 0 {
			PrintWarning("No candidates found. Check back closer to market open.")
			return nil
		}

		top := candidates
		if len(top) > morningTopN {
			top = top[:morningTopN]
		}
		PrintHeader(fmt.Sprintf("Step 2: Analyzing Top %d Picks", len(top)))

		presets, err := d.cfg.LoadIndicatorPresets()
		if err != nil {
			return err
		}

		for _, c := range top {
			if err := analyzePick(ctx, d, c.Ticker, presets); err != nil {
				PrintError(fmt.Sprintf("Error analyzing %s: %v", c.Ticker, err))
			}
		}

		PrintSuccess("Morning workflow complete.")
		return nil
	},
}

func analyzePick(ctx context.Context, d *deps, ticker string, presets config.IndicatorPresets) error {
	ticker = strings.ToUpper(ticker)

	series, err := d.provider.History(ctx, ticker, "3mo", "1d")
	if err != nil {
		return err
	}
	if len(series) == 0 {
		PrintWarning("Skipping " + ticker + " — no data")
		return nil
	}

	columns := analysis.Compute(series, presets).AddVolume()
	snap, ok := columns.Latest()
	if !ok {
		return nil
	}
	score := analysis.CompositeScore(snap, presets.Weights())

	price := snap.Close
	var quote *market.Quote
	if q, err := d.provider.Quote(ctx, ticker); err == nil {
		quote = q
		if q.Price != 0 {
			price = q.Price
		}
	}

	sr := analysis.FindSupportResistance(series, srOrder, srTolerancePct)
	nearest := analysis.NearestLevels(price, sr, nearestLevels)

	report.PrintAnalysis(ticker, score, nearest, quote)
	return nil
}

func init() {
	morningCmd.Flags().StringVar(&morningPreset, "preset", "premarket_gap", "screener preset")
	morningCmd.Flags().IntVar(&morningTopN, "top-n", 5, "number of top picks to analyze in detail")
	rootCmd.AddCommand(morningCmd)
}
