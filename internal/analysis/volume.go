package analysis

import (
	"math"
	"sort"
)

// vwapWindow is the rolling VWAP window in bars.
const vwapWindow = 14

// relVolumeLookback is the rolling average window for relative volume.
const relVolumeLookback = 20

// VWAP computes the rolling volume weighted average price over typical
// price (H+L+C)/3.
func VWAP(highs, lows, closes, volumes []float64, window int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if window <= 0 || n < window {
		return out
	}

	var sumPV, sumV float64
	for i := 0; i < n; i++ {
		tp := (highs[i] + lows[i] + closes[i]) / 3.0
		sumPV += tp * volumes[i]
		sumV += volumes[i]

		if i >= window {
			tpOld := (highs[i-window] + lows[i-window] + closes[i-window]) / 3.0
			sumPV -= tpOld * volumes[i-window]
			sumV -= volumes[i-window]
		}
		if i >= window-1 && sumV > 0 {
			out[i] = sumPV / sumV
		}
	}
	return out
}

// RelativeVolume computes volume divided by its rolling lookback average.
func RelativeVolume(volumes []float64, lookback int) []float64 {
	avg := SMA(volumes, lookback)
	out := nanSlice(len(volumes))
	for i := range volumes {
		if !math.IsNaN(avg[i]) && avg[i] > 0 {
			out[i] = volumes[i] / avg[i]
		}
	}
	return out
}

// AddVolume fills the volume columns: VWAP, relative volume and the
// 20-bar volume average.
func (c *Columns) AddVolume() *Columns {
	highs := c.Series.Highs()
	lows := c.Series.Lows()
	closes := c.Series.Closes()
	volumes := c.Series.Volumes()

	c.VWAP = VWAP(highs, lows, closes, volumes, vwapWindow)
	c.RelVolume = RelativeVolume(volumes, relVolumeLookback)
	c.VolumeSMA20 = SMA(volumes, relVolumeLookback)
	return c
}

// ProfileLevel is one bin of a volume profile.
type ProfileLevel struct {
	PriceLevel float64 `json:"price_level"`
	Volume     int64   `json:"volume"`
	PctOfTotal float64 `json:"pct_of_total"`
}

// VolumeProfile computes a price-at-volume histogram with the given
// number of bins, sorted by volume descending.
func VolumeProfile(closes, volumes []float64, bins int) []ProfileLevel {
	if bins <= 0 || len(closes) == 0 {
		return nil
	}

	priceMin, priceMax := closes[0], closes[0]
	for _, c := range closes {
		if c < priceMin {
			priceMin = c
		}
		if c > priceMax {
			priceMax = c
		}
	}

	var totalVol float64
	for _, v := range volumes {
		totalVol += v
	}

	width := (priceMax - priceMin) / float64(bins)
	levels := make([]ProfileLevel, bins)

	for i := 0; i < bins; i++ {
		lowEdge := priceMin + float64(i)*width
		highEdge := lowEdge + width

		var volAtLevel float64
		for j, c := range closes {
			// Upper bin edges are exclusive, so the series maximum falls
			// outside every bin; this mirrors histogram half-open intervals.
			if c >= lowEdge && c < highEdge {
				volAtLevel += volumes[j]
			}
		}

		pct := 0.0
		if totalVol > 0 {
			pct = round2(volAtLevel / totalVol * 100.0)
		}
		levels[i] = ProfileLevel{
			PriceLevel: round2((lowEdge + highEdge) / 2.0),
			Volume:     int64(volAtLevel),
			PctOfTotal: pct,
		}
	}

	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Volume > levels[j].Volume })
	return levels
}

// HighVolumeNodes returns the top-N price levels by traded volume.
func HighVolumeNodes(closes, volumes []float64, bins, topN int) []float64 {
	profile := VolumeProfile(closes, volumes, bins)
	if len(profile) > topN {
		profile = profile[:topN]
	}
	out := make([]float64, len(profile))
	for i, p := range profile {
		out[i] = p.PriceLevel
	}
	return out
}
