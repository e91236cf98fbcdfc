package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/report"
)

var rankSave bool

var rankCmd = &cobra.Command{
	Use:   "rank TICKER [TICKER...]",
	Short: "Rank tickers by composite technical score",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()
		ctx := context.Background()

		tickers := make([]string, len(args))
		for i, t := range args {
			tickers[i] = strings.ToUpper(t)
		}

		ranked, err := d.ranker.Rank(ctx, tickers)
		if err != nil {
			return err
		}

		report.PrintRankedResults(ranked, "Ranked Candidates")

		if rankSave && len(ranked) > 0 {
			db, scans, err := d.openStore()
			if err != nil {
				return err
			}
			if scans == nil {
				PrintWarning("No DATABASE_URL configured, ranking not saved")
				return nil
			}
			defer db.Close()

			if err := db.EnsureSchema(ctx); err != nil {
				return err
			}
			if _, err := scans.SaveRanking(ctx, d.cfg.Now(), ranked); err != nil {
				return err
			}
			PrintSuccess("Ranking saved")
		}
		return nil
	},
}

func init() {
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "persist results to the scan history store")
	rootCmd.AddCommand(rankCmd)
}
