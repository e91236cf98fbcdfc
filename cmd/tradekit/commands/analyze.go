package commands

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/analysis"
	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/report"
)

// Level detection defaults shared across commands.
const (
	srOrder        = 5
	srTolerancePct = 1.5
	nearestLevels  = 3
)

var analyzePeriod string

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER",
	Short: "Run deep technical analysis on a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()
		ctx := context.Background()

		ticker := strings.ToUpper(args[0])
		PrintInfo(fmt.Sprintf("Analyzing %s...", ticker))

		presets, err := d.cfg.LoadIndicatorPresets()
		if err != nil {
			return err
		}

		series, err := d.provider.History(ctx, ticker, analyzePeriod, "1d")
		if err != nil {
			return err
		}
		if len(series) == 0 {
			PrintError("No data available for " + ticker)
			return nil
		}

		columns := analysis.Compute(series, presets).AddVolume()
		snap, ok := columns.Latest()
		if !ok {
			PrintError("No data available for " + ticker)
			return nil
		}
		score := analysis.CompositeScore(snap, presets.Weights())

		price := snap.Close
		var quote *market.Quote
		if q, err := d.provider.Quote(ctx, ticker); err != nil {
			d.logger.WithError(err).WithField("ticker", ticker).Debug("Quote unavailable")
		} else {
			quote = q
			if q.Price != 0 {
				price = q.Price
			}
		}

		sr := analysis.FindSupportResistance(series, srOrder, srTolerancePct)
		nearest := analysis.NearestLevels(price, sr, nearestLevels)

		report.PrintAnalysis(ticker, score, nearest, quote)
		printVolatility(snap, price)
		printIndicators(snap)
		if last, ok := series.Last(); ok {
			printCandle(last)
		}
		return nil
	},
}

func printVolatility(snap market.Snapshot, price float64) {
	fmt.Println("Volatility & Volume:")
	if rvol := snap.RelVolume; !math.IsNaN(rvol) {
		fmt.Printf("  RVOL: %.2fx  %s\n", rvol, rvolLabel(rvol))
	}
	if !math.IsNaN(snap.ATR) {
		fmt.Printf("  ATR(14): $%.2f  (%.1f%% of price)\n", snap.ATR, snap.ATRPct)
	}
	if vwap := snap.VWAP; !math.IsNaN(vwap) && vwap > 0 {
		dist := (price - vwap) / vwap * 100
		fmt.Printf("  VWAP: $%.2f  (%+.1f%%)\n", vwap, dist)
	}
	fmt.Println()
}

func printIndicators(snap market.Snapshot) {
	fmt.Println("Indicator Snapshot:")
	if !math.IsNaN(snap.RSI) {
		fmt.Printf("  RSI(14): %.1f\n", snap.RSI)
	}
	if !math.IsNaN(snap.MACDHist) {
		fmt.Printf("  MACD Hist: %.3f\n", snap.MACDHist)
	}
	if !math.IsNaN(snap.StochK) && !math.IsNaN(snap.StochD) {
		fmt.Printf("  Stochastic: %%K=%.1f  %%D=%.1f\n", snap.StochK, snap.StochD)
	}
	fmt.Println()
}

func printCandle(last market.Candle) {
	shape := analysis.ClassifyCandle(last)
	direction := "bearish"
	if shape.Bullish {
		direction = "bullish"
	}
	line := fmt.Sprintf("Last candle: %s, body %.0f%% of range", direction, shape.BodyPct)
	if shape.Doji {
		line += " (doji)"
	}
	fmt.Println(line)
	fmt.Println()
}

func rvolLabel(rvol float64) string {
	switch {
	case rvol >= 3.0:
		return "EXTREME"
	case rvol >= 2.0:
		return "HIGH"
	case rvol >= 1.5:
		return "ABOVE AVG"
	case rvol >= 1.0:
		return "NORMAL"
	default:
		return "BELOW AVG"
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePeriod, "period", "3mo", "history period (e.g. 1mo, 3mo, 6mo, 1y)")
	rootCmd.AddCommand(analyzeCmd)
}
