package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/report"
)

var (
	historyLimit int
	historyRunID int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse persisted scan runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()
		ctx := context.Background()

		db, scans, err := d.openStore()
		if err != nil {
			return err
		}
		if scans == nil {
			PrintError("DATABASE_URL is required for scan history")
			return nil
		}
		defer db.Close()

		if historyRunID > 0 {
			candidates, err := scans.RunCandidates(ctx, historyRunID)
			if err != nil {
				return err
			}
			report.PrintScanResults(candidates, fmt.Sprintf("Scan Run #%d", historyRunID))
			return nil
		}

		runs, err := scans.ListRuns(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			PrintInfo("No scan runs recorded yet")
			return nil
		}

		PrintHeader("Scan History")
		for _, run := range runs {
			preset := run.Preset
			if preset != "" {
				preset = " (" + preset + ")"
			}
			fmt.Printf("  #%-5d %-10s%s  %s  %d candidates\n",
				run.ID, run.Kind, preset,
				run.RanAt.In(d.cfg.Timezone).Format("2006-01-02 15:04"),
				run.Candidates)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to list")
	historyCmd.Flags().Int64Var(&historyRunID, "run", 0, "show candidates of one run")
	rootCmd.AddCommand(historyCmd)
}
