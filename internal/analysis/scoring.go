package analysis

import (
	"math"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/pkg/config"
)

// Grade thresholds for the composite score.
const (
	gradeA = 80.0
	gradeB = 65.0
	gradeC = 50.0
)

// ScoreMomentum scores momentum indicators on [0,100].
// Factors: RSI position, MACD histogram direction, stochastic position, ROC.
func ScoreMomentum(snap market.Snapshot) float64 {
	score := 50.0 // neutral baseline

	// RSI: favor the 40-60 consolidation band, penalize overbought
	if rsi := snap.RSI; !math.IsNaN(rsi) {
		switch {
		case rsi >= 40 && rsi <= 60:
			score += 15 // consolidating, could break either way
		case rsi >= 30 && rsi < 40:
			score += 20 // oversold bounce potential
		case rsi < 30:
			score += 10 // deeply oversold, risky but bouncy
		case rsi > 60 && rsi <= 70:
			score += 10 // strong momentum, not yet overbought
		case rsi > 70:
			score -= 10 // overbought, risk of pullback
		}
	}

	// MACD histogram: positive is bullish
	if hist := snap.MACDHist; !math.IsNaN(hist) {
		if hist > 0 {
			score += 15
		} else {
			score -= 10
		}
	}

	// Stochastic: bullish crossover zone
	if !math.IsNaN(snap.StochK) && !math.IsNaN(snap.StochD) {
		if snap.StochK > snap.StochD && snap.StochK < 80 {
			score += 10 // bullish crossover, not overbought
		} else if snap.StochK < snap.StochD && snap.StochK > 20 {
			score -= 5
		}
	}

	// ROC: positive momentum
	if roc := snap.ROC10; !math.IsNaN(roc) {
		switch {
		case roc > 5:
			score += 10
		case roc > 0:
			score += 5
		case roc < -5:
			score -= 10
		}
	}

	return clamp(score, 0, 100)
}

// ScoreTrend scores trend strength on [0,100].
// Factors: price vs moving averages, MA alignment.
func ScoreTrend(snap market.Snapshot) float64 {
	score := 50.0
	close := snap.Close
	if close == 0 || math.IsNaN(close) {
		return score
	}

	// Price above key MAs is bullish
	for _, ma := range []float64{snap.EMA9, snap.EMA20, snap.SMA50, snap.SMA200} {
		if math.IsNaN(ma) || ma <= 0 {
			continue
		}
		if close > ma {
			score += 5
		} else {
			score -= 5
		}
	}

	// EMA 9 > EMA 20 > SMA 50 alignment marks a strong uptrend
	if !math.IsNaN(snap.EMA9) && !math.IsNaN(snap.EMA20) && !math.IsNaN(snap.SMA50) {
		if snap.EMA9 > snap.EMA20 && snap.EMA20 > snap.SMA50 {
			score += 15
		} else if snap.EMA9 < snap.EMA20 && snap.EMA20 < snap.SMA50 {
			score -= 10
		}
	}

	return clamp(score, 0, 100)
}

// ScoreVolume scores volume characteristics on [0,100].
// Factors: relative volume, price vs VWAP.
func ScoreVolume(snap market.Snapshot) float64 {
	score := 50.0

	// Relative volume: higher means more interest
	if rvol := snap.RelVolume; !math.IsNaN(rvol) {
		switch {
		case rvol > 3.0:
			score += 25
		case rvol > 2.0:
			score += 20
		case rvol > 1.5:
			score += 10
		case rvol < 0.5:
			score -= 15
		}
	}

	// Price vs VWAP
	if vwap := snap.VWAP; !math.IsNaN(vwap) && vwap > 0 && snap.Close != 0 {
		if snap.Close > vwap {
			score += 10
		} else {
			score -= 5
		}
	}

	return clamp(score, 0, 100)
}

// CompositeScore combines the three sub-scores with the given weights
// and maps the total to a letter grade.
func CompositeScore(snap market.Snapshot, weights config.ScoreWeights) market.Score {
	momentum := ScoreMomentum(snap)
	trend := ScoreTrend(snap)
	volume := ScoreVolume(snap)

	total := round1(momentum*weights.Momentum + trend*weights.Trend + volume*weights.Volume)

	var grade string
	switch {
	case total >= gradeA:
		grade = "A"
	case total >= gradeB:
		grade = "B"
	case total >= gradeC:
		grade = "C"
	default:
		grade = "F"
	}

	return market.Score{
		Total:    total,
		Momentum: round1(momentum),
		Trend:    round1(trend),
		Volume:   round1(volume),
		Grade:    grade,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
