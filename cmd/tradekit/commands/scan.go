package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/report"
	"github.com/wonny/tradekit/pkg/config"
)

var (
	scanPreset    string
	scanMinGap    float64
	scanMinVolume int64
	scanMaxPrice  float64
	scanSave      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the pre-market stock scanner",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()
		ctx := context.Background()

		overrides := &config.ScreenerPreset{}
		if cmd.Flags().Changed("min-gap") {
			overrides.MinGapPct = &scanMinGap
		}
		if cmd.Flags().Changed("min-volume") {
			overrides.MinPremarketVolume = &scanMinVolume
		}
		if cmd.Flags().Changed("max-price") {
			overrides.MaxPrice = &scanMaxPrice
		}

		PrintInfo("Running pre-market scan...")
		candidates, err := d.scanner.ScanPremarket(ctx, scanPreset, overrides)
		if err != nil {
			return err
		}

		report.PrintScanResults(candidates, "Pre-Market Scanner")

		if len(candidates) > 0 {
			tickers := make([]string, len(candidates))
			for i, c := range candidates {
				tickers[i] = c.Ticker
			}
			PrintInfo("Tickers: " + strings.Join(tickers, ", "))
		}

		if scanSave && len(candidates) > 0 {
			db, scans, err := d.openStore()
			if err != nil {
				return err
			}
			if scans == nil {
				PrintWarning("No DATABASE_URL configured, scan not saved")
				return nil
			}
			defer db.Close()

			if err := db.EnsureSchema(ctx); err != nil {
				return err
			}
			runID, err := scans.SaveScan(ctx, "premarket", scanPreset, d.cfg.Now(), candidates)
			if err != nil {
				return err
			}
			PrintSuccess(fmt.Sprintf("Scan saved (run #%d)", runID))
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanPreset, "preset", "premarket_gap", "screener preset name")
	scanCmd.Flags().Float64Var(&scanMinGap, "min-gap", 0, "override minimum gap %")
	scanCmd.Flags().Int64Var(&scanMinVolume, "min-volume", 0, "override minimum pre-market volume")
	scanCmd.Flags().Float64Var(&scanMaxPrice, "max-price", 0, "override maximum price")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "persist results to the scan history store")
	rootCmd.AddCommand(scanCmd)
}
