// Package analysis implements the technical indicator, level detection
// and scoring stages of the screening pipeline. All functions are pure
// transformations over in-memory OHLCV series; values that are undefined
// during indicator warmup are NaN.
package analysis

import (
	"fmt"
	"math"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/pkg/config"
)

// SMA computes a simple moving average. The first period-1 values are NaN.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes an exponential moving average seeded with the SMA of the
// first full window. Leading NaNs in the input are skipped, so EMA can
// be applied to derived series such as the MACD line.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}

	start := firstValid(values)
	if start < 0 || len(values)-start < period {
		return out
	}

	var sum float64
	for i := start; i < start+period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[start+period-1] = ema

	k := 2.0 / (float64(period) + 1.0)
	for i := start + period; i < len(values); i++ {
		ema = values[i]*k + ema*(1-k)
		out[i] = ema
	}
	return out
}

// RSI computes the Relative Strength Index with Wilder smoothing.
// Output is bounded to [0,100] wherever defined.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// MACD computes the MACD line, signal line and histogram.
func MACD(closes []float64, fast, slow, signal int) (macd, sig, hist []float64) {
	n := len(closes)
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	macd = nanSlice(n)
	for i := 0; i < n; i++ {
		if !math.IsNaN(emaFast[i]) && !math.IsNaN(emaSlow[i]) {
			macd[i] = emaFast[i] - emaSlow[i]
		}
	}

	sig = EMA(macd, signal)

	hist = nanSlice(n)
	for i := 0; i < n; i++ {
		if !math.IsNaN(macd[i]) && !math.IsNaN(sig[i]) {
			hist[i] = macd[i] - sig[i]
		}
	}
	return macd, sig, hist
}

// Stochastic computes the stochastic oscillator %K and its SMA %D.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d []float64) {
	n := len(closes)
	k = nanSlice(n)
	if kPeriod <= 0 || n < kPeriod {
		return k, nanSlice(n)
	}

	for i := kPeriod - 1; i < n; i++ {
		hh := highs[i]
		ll := lows[i]
		for j := i - kPeriod + 1; j < i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		if hh == ll {
			k[i] = 50.0
			continue
		}
		k[i] = (closes[i] - ll) / (hh - ll) * 100.0
	}

	d = smaSkipNaN(k, dPeriod)
	return k, d
}

// ROC computes the rate of change over period bars, in percent.
func ROC(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	for i := period; i < len(closes); i++ {
		if closes[i-period] != 0 {
			out[i] = (closes[i]/closes[i-period] - 1.0) * 100.0
		}
	}
	return out
}

// ATR computes the Average True Range with Wilder smoothing.
func ATR(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if period <= 0 || n < period+1 {
		return out
	}

	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	out[period-1] = atr
	for i := period; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = atr
	}
	return out
}

// Columns holds all computed indicator columns alongside the source series.
type Columns struct {
	Series market.Series

	RSI        []float64
	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64
	StochK     []float64
	StochD     []float64
	ROC10      []float64
	ATR        []float64
	ATRPct     []float64

	// MA columns keyed "ema_9", "sma_200" etc. per the preset list.
	MA map[string][]float64

	// Volume columns, filled by AddVolume.
	VWAP        []float64
	RelVolume   []float64
	VolumeSMA20 []float64
}

// Compute calculates all standard indicators for a series.
func Compute(series market.Series, presets config.IndicatorPresets) *Columns {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()

	cols := &Columns{
		Series: series,
		MA:     make(map[string][]float64),
	}

	cols.RSI = RSI(closes, presets.RSI.Period)
	cols.MACD, cols.MACDSignal, cols.MACDHist = MACD(
		closes, presets.MACD.Fast, presets.MACD.Slow, presets.MACD.Signal)
	cols.StochK, cols.StochD = Stochastic(
		highs, lows, closes, presets.Stochastic.KPeriod, presets.Stochastic.DPeriod)
	cols.ROC10 = ROC(closes, 10)

	for _, ma := range presets.MovingAverages {
		name := fmt.Sprintf("%s_%d", ma.Type, ma.Period)
		if ma.Type == "ema" {
			cols.MA[name] = EMA(closes, ma.Period)
		} else {
			cols.MA[name] = SMA(closes, ma.Period)
		}
	}

	cols.ATR = ATR(highs, lows, closes, 14)
	cols.ATRPct = nanSlice(len(series))
	for i := range series {
		if !math.IsNaN(cols.ATR[i]) && closes[i] != 0 {
			// ATR as percentage of price for cross-ticker comparison
			cols.ATRPct[i] = round2(cols.ATR[i] / closes[i] * 100.0)
		}
	}

	return cols
}

// Snapshot extracts the indicator row at index i.
func (c *Columns) Snapshot(i int) market.Snapshot {
	snap := market.Snapshot{
		Time:        c.Series[i].Time,
		Close:       c.Series[i].Close,
		RSI:         at(c.RSI, i),
		MACD:        at(c.MACD, i),
		MACDSignal:  at(c.MACDSignal, i),
		MACDHist:    at(c.MACDHist, i),
		StochK:      at(c.StochK, i),
		StochD:      at(c.StochD, i),
		ROC10:       at(c.ROC10, i),
		ATR:         at(c.ATR, i),
		ATRPct:      at(c.ATRPct, i),
		VWAP:        at(c.VWAP, i),
		RelVolume:   at(c.RelVolume, i),
		VolumeSMA20: at(c.VolumeSMA20, i),
	}
	snap.EMA9 = at(c.MA["ema_9"], i)
	snap.EMA20 = at(c.MA["ema_20"], i)
	snap.SMA50 = at(c.MA["sma_50"], i)
	snap.SMA200 = at(c.MA["sma_200"], i)
	return snap
}

// Latest returns the snapshot for the most recent candle.
func (c *Columns) Latest() (market.Snapshot, bool) {
	if len(c.Series) == 0 {
		return market.Snapshot{}, false
	}
	return c.Snapshot(len(c.Series) - 1), true
}

// smaSkipNaN is an SMA that starts at the first defined input value.
func smaSkipNaN(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	start := firstValid(values)
	if start < 0 || period <= 0 || len(values)-start < period {
		return out
	}

	var sum float64
	for i := start; i < len(values); i++ {
		sum += values[i]
		if i-start >= period {
			sum -= values[i-period]
		}
		if i-start >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func firstValid(values []float64) int {
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

func at(values []float64, i int) float64 {
	if values == nil || i < 0 || i >= len(values) {
		return math.NaN()
	}
	return values[i]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
