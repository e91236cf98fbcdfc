package screener

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/pkg/config"
)

// trendingSeries builds n daily candles. Positive slope makes a
// bullish series, negative a bearish one.
func trendingSeries(n int, slope float64) market.Series {
	series := make(market.Series, n)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		base := 100.0 + slope*float64(i) + 2.0*math.Sin(float64(i)/4.0)
		series[i] = market.Candle{
			Time:   start.AddDate(0, 0, i),
			Open:   base - 0.3,
			High:   base + 1.0,
			Low:    base - 1.0,
			Close:  base,
			Volume: 1_000_000,
		}
	}
	return series
}

func TestRank(t *testing.T) {
	provider := &fakeProvider{
		history: map[string]market.Series{
			"BULL":  trendingSeries(80, 0.8),
			"BEAR":  trendingSeries(80, -0.8),
			"SHORT": trendingSeries(10, 0.5), // below the minimum row count
		},
		quotes: map[string]market.Quote{
			"BULL": {Ticker: "BULL", Name: "Bull Corp", Price: 164, Volume: 2_000_000, AvgVolume: 1_500_000},
			"BEAR": {Ticker: "BEAR", Name: "Bear Corp", Price: 36, Volume: 900_000, AvgVolume: 1_500_000},
		},
	}

	ranker := NewRanker(provider, config.DefaultIndicatorPresets(), testLogger())
	ranked, err := ranker.Rank(context.Background(), []string{"BEAR", "BULL", "SHORT"})
	require.NoError(t, err)

	// SHORT is skipped, the rest sorted by score descending
	require.Len(t, ranked, 2)
	assert.Equal(t, "BULL", ranked[0].Ticker)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "BEAR", ranked[1].Ticker)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Greater(t, ranked[0].Score.Total, ranked[1].Score.Total)

	// Quote enrichment
	assert.Equal(t, "Bull Corp", ranked[0].Name)
	assert.InDelta(t, 164.0, ranked[0].Price, 1e-9)
	assert.Equal(t, int64(2_000_000), ranked[0].Volume)
}

func TestRank_QuoteFailureFallsBackToHistory(t *testing.T) {
	provider := &fakeProvider{
		history: map[string]market.Series{
			"NOQ": trendingSeries(60, 0.2),
		},
	}

	ranker := NewRanker(provider, config.DefaultIndicatorPresets(), testLogger())
	ranked, err := ranker.Rank(context.Background(), []string{"NOQ"})
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "NOQ", ranked[0].Name)
	series := provider.history["NOQ"]
	assert.InDelta(t, series[len(series)-1].Close, ranked[0].Price, 1e-9)
}

func TestRank_NoData(t *testing.T) {
	ranker := NewRanker(&fakeProvider{}, config.DefaultIndicatorPresets(), testLogger())
	ranked, err := ranker.Rank(context.Background(), []string{"NONE"})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRank_ScoresBounded(t *testing.T) {
	provider := &fakeProvider{
		history: map[string]market.Series{
			"X": trendingSeries(250, 0.5),
		},
	}

	ranker := NewRanker(provider, config.DefaultIndicatorPresets(), testLogger())
	ranked, err := ranker.Rank(context.Background(), []string{"X"})
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	score := ranked[0].Score
	for _, v := range []float64{score.Total, score.Momentum, score.Trend, score.Volume} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	assert.Contains(t, []string{"A", "B", "C", "F"}, score.Grade)
}
