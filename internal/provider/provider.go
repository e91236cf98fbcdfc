// Package provider defines the market data provider interface and
// batch helpers shared by all adapters.
package provider

import (
	"context"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/pkg/logger"
)

// Provider supplies quotes, history and pre-market data for tickers.
type Provider interface {
	// Quote returns the current quote for a ticker.
	Quote(ctx context.Context, ticker string) (*market.Quote, error)

	// History returns historical OHLCV data. Period and interval use
	// short notation: periods 1d 5d 1mo 3mo 6mo 1y 2y 5y, intervals
	// 1m 5m 15m 30m 1h 1d 1wk 1mo.
	History(ctx context.Context, ticker, period, interval string) (market.Series, error)

	// Premarket returns pre-market quote data for a ticker.
	Premarket(ctx context.Context, ticker string) (*market.Candidate, error)
}

// Premarkets fetches pre-market data for multiple tickers.
// Per-ticker failures are logged and skipped.
func Premarkets(ctx context.Context, p Provider, tickers []string, log *logger.Logger) []market.Candidate {
	results := make([]market.Candidate, 0, len(tickers))
	for _, ticker := range tickers {
		c, err := p.Premarket(ctx, ticker)
		if err != nil {
			log.WithError(err).WithField("ticker", ticker).Warn("Failed to fetch pre-market data")
			continue
		}
		results = append(results, *c)
	}
	return results
}

// Quotes fetches quotes for multiple tickers.
// Per-ticker failures are logged and skipped.
func Quotes(ctx context.Context, p Provider, tickers []string, log *logger.Logger) []market.Quote {
	results := make([]market.Quote, 0, len(tickers))
	for _, ticker := range tickers {
		q, err := p.Quote(ctx, ticker)
		if err != nil {
			log.WithError(err).WithField("ticker", ticker).Warn("Failed to fetch quote")
			continue
		}
		results = append(results, *q)
	}
	return results
}

// GapPct computes the pre-market gap percentage against the prior close,
// rounded to two decimals. A zero prior close yields zero.
func GapPct(prePrice, prevClose float64) float64 {
	if prevClose == 0 {
		return 0
	}
	gap := (prePrice - prevClose) / prevClose * 100.0
	// round half away from zero to 2dp
	if gap >= 0 {
		return float64(int64(gap*100+0.5)) / 100
	}
	return float64(int64(gap*100-0.5)) / 100
}
