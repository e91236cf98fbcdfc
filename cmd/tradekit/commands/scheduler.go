package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/internal/scheduler"
)

var schedulerPreset string

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run scheduled jobs (weekday morning scan)",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()

		db, scans, err := d.openStore()
		if err != nil {
			// A broken store should not stop the morning scan.
			d.logger.WithError(err).Warn("Scan history store unavailable")
		}
		if db != nil {
			defer db.Close()
		}

		sched := scheduler.New(d.cfg.Timezone, d.logger)
		job := scheduler.NewMorningScanJob(d.cfg, d.scanner, d.ranker, d.alerter, scans, schedulerPreset, d.logger)
		if err := sched.Register(job); err != nil {
			return err
		}

		sched.Start()
		PrintSuccess("Scheduler running. Press Ctrl+C to stop.")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		sched.Stop()
		return nil
	},
}

func init() {
	schedulerCmd.Flags().StringVar(&schedulerPreset, "preset", "premarket_gap", "screener preset for the morning scan")
	rootCmd.AddCommand(schedulerCmd)
}
