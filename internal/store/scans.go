package store

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tradekit/internal/market"
)

// ScanRun is one persisted scan execution.
type ScanRun struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"` // premarket, watchlist, rank
	Preset     string    `json:"preset"`
	RanAt      time.Time `json:"ran_at"`
	Candidates int       `json:"candidates"`
}

// ScanRepository persists scan runs and their results.
type ScanRepository struct {
	db *DB
}

// NewScanRepository creates a ScanRepository.
func NewScanRepository(db *DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// SaveScan stores a scan run and its candidates, returning the run ID.
func (r *ScanRepository) SaveScan(ctx context.Context, kind, preset string, ranAt time.Time, candidates []market.Candidate) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin scan save: %w", err)
	}
	defer tx.Rollback(ctx)

	var runID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO scan_runs (kind, preset, ran_at, candidates)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		kind, preset, ranAt, len(candidates),
	).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("insert scan run: %w", err)
	}

	for _, c := range candidates {
		_, err = tx.Exec(ctx,
			`INSERT INTO scan_candidates
			 (run_id, ticker, name, pre_price, prev_close, gap_pct, pre_volume, avg_volume)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			runID, c.Ticker, c.Name, c.PrePrice, c.PrevClose, c.GapPct, c.PreVolume, c.AvgVolume,
		)
		if err != nil {
			return 0, fmt.Errorf("insert scan candidate %s: %w", c.Ticker, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit scan save: %w", err)
	}
	return runID, nil
}

// SaveRanking stores a ranking run and its scored tickers.
func (r *ScanRepository) SaveRanking(ctx context.Context, ranAt time.Time, ranked []market.RankedCandidate) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin ranking save: %w", err)
	}
	defer tx.Rollback(ctx)

	var runID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO scan_runs (kind, ran_at, candidates)
		 VALUES ('rank', $1, $2) RETURNING id`,
		ranAt, len(ranked),
	).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("insert ranking run: %w", err)
	}

	for _, rc := range ranked {
		_, err = tx.Exec(ctx,
			`INSERT INTO ranked_scores
			 (run_id, rank, ticker, total, momentum, trend, volume, grade)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			runID, rc.Rank, rc.Ticker, rc.Score.Total, rc.Score.Momentum, rc.Score.Trend, rc.Score.Volume, rc.Score.Grade,
		)
		if err != nil {
			return 0, fmt.Errorf("insert ranked score %s: %w", rc.Ticker, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit ranking save: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent scan runs, newest first.
func (r *ScanRepository) ListRuns(ctx context.Context, limit int) ([]ScanRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, kind, preset, ran_at, candidates
		 FROM scan_runs ORDER BY ran_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list scan runs: %w", err)
	}
	defer rows.Close()

	var runs []ScanRun
	for rows.Next() {
		var run ScanRun
		if err := rows.Scan(&run.ID, &run.Kind, &run.Preset, &run.RanAt, &run.Candidates); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunCandidates returns the stored candidates of one scan run,
// gap magnitude first.
func (r *ScanRepository) RunCandidates(ctx context.Context, runID int64) ([]market.Candidate, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT ticker, name, pre_price, prev_close, gap_pct, pre_volume, avg_volume
		 FROM scan_candidates WHERE run_id = $1 ORDER BY abs(gap_pct) DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("run candidates: %w", err)
	}
	defer rows.Close()

	var candidates []market.Candidate
	for rows.Next() {
		var c market.Candidate
		if err := rows.Scan(&c.Ticker, &c.Name, &c.PrePrice, &c.PrevClose, &c.GapPct, &c.PreVolume, &c.AvgVolume); err != nil {
			return nil, fmt.Errorf("candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
