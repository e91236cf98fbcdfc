package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/pkg/config"
)

// synthSeries builds n daily candles with a mild uptrend and an
// oscillation so every indicator has both gains and losses to work with.
func synthSeries(n int) market.Series {
	series := make(market.Series, n)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		base := 100.0 + 0.3*float64(i) + 4.0*math.Sin(float64(i)/5.0)
		series[i] = market.Candle{
			Time:   start.AddDate(0, 0, i),
			Open:   base - 0.5,
			High:   base + 1.5,
			Low:    base - 1.5,
			Close:  base,
			Volume: 1_000_000 + 50_000*float64(i%7),
		}
	}
	return series
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := SMA(values, 3)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestEMA_SeededFromSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	out := EMA(values, 3)

	assert.True(t, math.IsNaN(out[1]))
	// First defined value is the SMA of the first window
	assert.InDelta(t, 2.0, out[2], 1e-9)
	// alpha = 2/(3+1) = 0.5
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestRSI_Bounds(t *testing.T) {
	closes := synthSeries(60).Closes()
	rsi := RSI(closes, 14)

	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(rsi[i]), "index %d should be undefined", i)
	}
	for i := 14; i < len(rsi); i++ {
		require.False(t, math.IsNaN(rsi[i]), "index %d should be defined", i)
		assert.GreaterOrEqual(t, rsi[i], 0.0)
		assert.LessOrEqual(t, rsi[i], 100.0)
	}
}

func TestRSI_AllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi := RSI(closes, 14)

	// No losses at all pins RSI to 100
	assert.InDelta(t, 100.0, rsi[len(rsi)-1], 1e-9)
}

func TestMACD_HistogramIsDifference(t *testing.T) {
	closes := synthSeries(80).Closes()
	macd, signal, hist := MACD(closes, 12, 26, 9)

	for i := range closes {
		if math.IsNaN(hist[i]) {
			continue
		}
		assert.InDelta(t, macd[i]-signal[i], hist[i], 1e-9)
	}
	// Long enough series must produce defined values at the end
	assert.False(t, math.IsNaN(hist[len(hist)-1]))
}

func TestStochastic_Bounds(t *testing.T) {
	series := synthSeries(40)
	k, d := Stochastic(series.Highs(), series.Lows(), series.Closes(), 14, 3)

	for i := range k {
		if !math.IsNaN(k[i]) {
			assert.GreaterOrEqual(t, k[i], 0.0)
			assert.LessOrEqual(t, k[i], 100.0)
		}
		if !math.IsNaN(d[i]) {
			assert.GreaterOrEqual(t, d[i], 0.0)
			assert.LessOrEqual(t, d[i], 100.0)
		}
	}
}

func TestStochastic_FlatRangeIsNeutral(t *testing.T) {
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i], lows[i], closes[i] = 50, 50, 50
	}

	k, _ := Stochastic(highs, lows, closes, 14, 3)
	assert.InDelta(t, 50.0, k[n-1], 1e-9)
}

func TestROC(t *testing.T) {
	closes := []float64{100, 0, 0, 0, 0, 0, 0, 0, 0, 0, 110}
	for i := 1; i < 10; i++ {
		closes[i] = 100
	}
	roc := ROC(closes, 10)

	assert.True(t, math.IsNaN(roc[9]))
	assert.InDelta(t, 10.0, roc[10], 1e-9)
}

func TestATR_Positive(t *testing.T) {
	series := synthSeries(40)
	atr := ATR(series.Highs(), series.Lows(), series.Closes(), 14)

	require.False(t, math.IsNaN(atr[len(atr)-1]))
	assert.Greater(t, atr[len(atr)-1], 0.0)
}

func TestCompute_Latest(t *testing.T) {
	series := synthSeries(220)
	columns := Compute(series, config.DefaultIndicatorPresets()).AddVolume()

	snap, ok := columns.Latest()
	require.True(t, ok)

	last := series[len(series)-1]
	assert.Equal(t, last.Time, snap.Time)
	assert.InDelta(t, last.Close, snap.Close, 1e-9)

	// 220 bars is enough for every default indicator including SMA 200
	assert.False(t, math.IsNaN(snap.RSI))
	assert.False(t, math.IsNaN(snap.MACDHist))
	assert.False(t, math.IsNaN(snap.StochK))
	assert.False(t, math.IsNaN(snap.SMA200))
	assert.False(t, math.IsNaN(snap.VWAP))
	assert.False(t, math.IsNaN(snap.RelVolume))
}

func TestCompute_ShortSeriesLeavesNaN(t *testing.T) {
	series := synthSeries(30)
	columns := Compute(series, config.DefaultIndicatorPresets())

	snap, ok := columns.Latest()
	require.True(t, ok)

	assert.False(t, math.IsNaN(snap.RSI))
	assert.True(t, math.IsNaN(snap.SMA200), "SMA 200 needs 200 bars")
}
