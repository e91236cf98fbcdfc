package screener

import (
	"context"
	"sort"

	"github.com/wonny/tradekit/internal/analysis"
	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/provider"
	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/logger"
)

// minRankingRows is the minimum history length needed to score a ticker.
const minRankingRows = 20

// Ranker orders tickers by composite technical score.
type Ranker struct {
	provider provider.Provider
	presets  config.IndicatorPresets
	logger   *logger.Logger
}

// NewRanker creates a Ranker with the given indicator presets.
func NewRanker(p provider.Provider, presets config.IndicatorPresets, log *logger.Logger) *Ranker {
	return &Ranker{provider: p, presets: presets, logger: log}
}

// Rank fetches three months of daily history per ticker, scores the
// latest bar and returns candidates sorted by total score descending.
// Tickers with insufficient data or fetch failures are skipped.
func (r *Ranker) Rank(ctx context.Context, tickers []string) ([]market.RankedCandidate, error) {
	weights := r.presets.Weights()
	results := make([]market.RankedCandidate, 0, len(tickers))

	for _, ticker := range tickers {
		series, err := r.provider.History(ctx, ticker, "3mo", "1d")
		if err != nil {
			r.logger.WithError(err).WithField("ticker", ticker).Warn("Failed to fetch history")
			continue
		}
		if len(series) < minRankingRows {
			r.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"rows":   len(series),
			}).Warn("Insufficient data for ranking")
			continue
		}

		columns := analysis.Compute(series, r.presets).AddVolume()
		snap, ok := columns.Latest()
		if !ok {
			continue
		}
		score := analysis.CompositeScore(snap, weights)

		ranked := market.RankedCandidate{
			Ticker: ticker,
			Name:   ticker,
			Price:  snap.Close,
			Score:  score,
		}
		if quote, err := r.provider.Quote(ctx, ticker); err != nil {
			r.logger.WithError(err).WithField("ticker", ticker).Debug("Quote unavailable, using history close")
		} else {
			ranked.Name = quote.Name
			if quote.Price != 0 {
				ranked.Price = quote.Price
			}
			ranked.Volume = quote.Volume
			ranked.AvgVolume = quote.AvgVolume
		}

		results = append(results, ranked)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.Total > results[j].Score.Total
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}
