package analysis

import (
	"math"
	"sort"

	"github.com/wonny/tradekit/internal/market"
)

// PivotPoints computes standard floor-trader pivots from prior period H/L/C.
// For any high > low the result satisfies r1 > pivot > s1.
func PivotPoints(high, low, close float64) market.PivotPoints {
	pivot := (high + low + close) / 3.0
	return market.PivotPoints{
		Pivot: round2(pivot),
		R1:    round2(2*pivot - low),
		R2:    round2(pivot + (high - low)),
		R3:    round2(high + 2*(pivot-low)),
		S1:    round2(2*pivot - high),
		S2:    round2(pivot - (high - low)),
		S3:    round2(low - 2*(high-pivot)),
	}
}

// Extreme is one local extremum: its bar index and price.
type Extreme struct {
	Index int
	Price float64
}

// LocalExtremes finds local maxima and minima in a price series.
// A bar is a peak when it is the maximum of the window spanning order
// bars on each side, a trough when it is the minimum.
func LocalExtremes(values []float64, order int) (peaks, troughs []Extreme) {
	for i := order; i < len(values)-order; i++ {
		maxV, minV := values[i-order], values[i-order]
		for j := i - order + 1; j <= i+order; j++ {
			if values[j] > maxV {
				maxV = values[j]
			}
			if values[j] < minV {
				minV = values[j]
			}
		}
		if values[i] == maxV {
			peaks = append(peaks, Extreme{Index: i, Price: values[i]})
		} else if values[i] == minV {
			troughs = append(troughs, Extreme{Index: i, Price: values[i]})
		}
	}
	return peaks, troughs
}

// ClusterLevels groups nearby price levels into zones. Prices are sorted
// and a price joins the current cluster when it is within tolerancePct of
// the cluster's last element, not its centroid, so a cluster can drift up
// by tolerancePct per member. Each zone reports its mean price and the
// member count as strength.
func ClusterLevels(levels []float64, tolerancePct float64) []market.Level {
	if len(levels) == 0 {
		return nil
	}

	sorted := append([]float64(nil), levels...)
	sort.Float64s(sorted)

	var clusters [][]float64
	current := []float64{sorted[0]}

	for _, price := range sorted[1:] {
		last := current[len(current)-1]
		if math.Abs(price-last)/last*100.0 <= tolerancePct {
			current = append(current, price)
		} else {
			clusters = append(clusters, current)
			current = []float64{price}
		}
	}
	clusters = append(clusters, current)

	out := make([]market.Level, 0, len(clusters))
	for _, c := range clusters {
		var sum float64
		for _, p := range c {
			sum += p
		}
		out = append(out, market.Level{
			Price:    round2(sum / float64(len(c))),
			Strength: len(c),
		})
	}
	return out
}

// FindSupportResistance detects support and resistance zones from OHLCV
// data: close extrema plus high peaks for resistance and low troughs for
// support, clustered within tolerancePct.
func FindSupportResistance(series market.Series, order int, tolerancePct float64) market.SRLevels {
	closePeaks, closeTroughs := LocalExtremes(series.Closes(), order)
	highPeaks, _ := LocalExtremes(series.Highs(), order)
	_, lowTroughs := LocalExtremes(series.Lows(), order)

	var resistancePrices, supportPrices []float64
	for _, e := range closePeaks {
		resistancePrices = append(resistancePrices, e.Price)
	}
	for _, e := range highPeaks {
		resistancePrices = append(resistancePrices, e.Price)
	}
	for _, e := range closeTroughs {
		supportPrices = append(supportPrices, e.Price)
	}
	for _, e := range lowTroughs {
		supportPrices = append(supportPrices, e.Price)
	}

	resistance := ClusterLevels(resistancePrices, tolerancePct)
	support := ClusterLevels(supportPrices, tolerancePct)

	sort.Slice(resistance, func(i, j int) bool { return resistance[i].Price < resistance[j].Price })
	sort.Slice(support, func(i, j int) bool { return support[i].Price > support[j].Price })

	return market.SRLevels{Resistance: resistance, Support: support}
}

// NearestLevels returns up to n resistance levels above and support
// levels below the current price.
func NearestLevels(currentPrice float64, sr market.SRLevels, n int) market.SRLevels {
	var resistance []market.Level
	for _, r := range sr.Resistance {
		if r.Price > currentPrice {
			resistance = append(resistance, r)
			if len(resistance) == n {
				break
			}
		}
	}

	var support []market.Level
	for _, s := range sr.Support {
		if s.Price < currentPrice {
			support = append(support, s)
			if len(support) == n {
				break
			}
		}
	}

	return market.SRLevels{Resistance: resistance, Support: support}
}
