package scheduler

import (
	"context"
	"fmt"

	"github.com/wonny/tradekit/internal/report"
	"github.com/wonny/tradekit/internal/screener"
	"github.com/wonny/tradekit/internal/store"
	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/logger"
)

// MorningScanJob runs the pre-market scan on weekday mornings, ranks
// the results and pushes high-score alerts. Persistence is skipped
// when no store is configured.
type MorningScanJob struct {
	cfg     *config.Config
	scanner *screener.Scanner
	ranker  *screener.Ranker
	alerter *report.Alerter
	scans   *store.ScanRepository
	preset  string
	logger  *logger.Logger
}

// NewMorningScanJob creates the job. scans may be nil.
func NewMorningScanJob(
	cfg *config.Config,
	scanner *screener.Scanner,
	ranker *screener.Ranker,
	alerter *report.Alerter,
	scans *store.ScanRepository,
	preset string,
	log *logger.Logger,
) *MorningScanJob {
	return &MorningScanJob{
		cfg:     cfg,
		scanner: scanner,
		ranker:  ranker,
		alerter: alerter,
		scans:   scans,
		preset:  preset,
		logger:  log,
	}
}

func (j *MorningScanJob) Name() string { return "morning-scan" }

// Schedule fires at 08:00 market time, Monday through Friday.
func (j *MorningScanJob) Schedule() string { return "0 0 8 * * 1-5" }

// Run executes the scan, scores the candidates and sends alerts.
func (j *MorningScanJob) Run(ctx context.Context) error {
	candidates, err := j.scanner.ScanPremarket(ctx, j.preset, nil)
	if err != nil {
		return fmt.Errorf("morning scan: %w", err)
	}
	if len(candidates) == 0 {
		j.logger.Info("Morning scan found no candidates")
		return nil
	}

	if j.scans != nil {
		runID, err := j.scans.SaveScan(ctx, "premarket", j.preset, j.cfg.Now(), candidates)
		if err != nil {
			j.logger.WithError(err).Warn("Failed to persist morning scan")
		} else {
			j.logger.WithField("run_id", runID).Debug("Morning scan persisted")
		}
	}

	tickers := make([]string, len(candidates))
	for i, c := range candidates {
		tickers[i] = c.Ticker
	}

	ranked, err := j.ranker.Rank(ctx, tickers)
	if err != nil {
		return fmt.Errorf("morning ranking: %w", err)
	}

	if err := j.alerter.AlertHighScores(ctx, ranked); err != nil {
		j.logger.WithError(err).Warn("Failed to send high-score alerts")
	}

	j.logger.WithFields(map[string]interface{}{
		"candidates": len(candidates),
		"ranked":     len(ranked),
	}).Info("Morning scan finished")
	return nil
}
