// Package screener implements the pre-market scan, the composable
// filter chain and multi-factor ranking.
package screener

import (
	"math"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/pkg/config"
)

// FilterFunc narrows a candidate list. Filters are pure and composable.
type FilterFunc func([]market.Candidate) []market.Candidate

// PriceFilter keeps candidates whose pre-market price is within range.
func PriceFilter(minPrice, maxPrice float64) FilterFunc {
	return func(candidates []market.Candidate) []market.Candidate {
		out := candidates[:0:0]
		for _, c := range candidates {
			if c.PrePrice >= minPrice && c.PrePrice <= maxPrice {
				out = append(out, c)
			}
		}
		return out
	}
}

// VolumeFilter keeps candidates with at least the given pre-market volume.
func VolumeFilter(minVolume int64) FilterFunc {
	return func(candidates []market.Candidate) []market.Candidate {
		out := candidates[:0:0]
		for _, c := range candidates {
			if c.PreVolume >= minVolume {
				out = append(out, c)
			}
		}
		return out
	}
}

// GapFilter keeps candidates whose absolute gap meets the minimum.
// Both gap ups and gap downs qualify.
func GapFilter(minGapPct float64) FilterFunc {
	return func(candidates []market.Candidate) []market.Candidate {
		out := candidates[:0:0]
		for _, c := range candidates {
			if math.Abs(c.GapPct) >= minGapPct {
				out = append(out, c)
			}
		}
		return out
	}
}

// AvgVolumeFilter keeps candidates with at least the given average daily
// volume. A zero average volume means the provider did not supply it,
// so the candidate passes.
func AvgVolumeFilter(minAvgVolume int64) FilterFunc {
	return func(candidates []market.Candidate) []market.Candidate {
		out := candidates[:0:0]
		for _, c := range candidates {
			if c.AvgVolume == 0 || c.AvgVolume >= minAvgVolume {
				out = append(out, c)
			}
		}
		return out
	}
}

// FloatFilter keeps candidates whose float is at most maxFloatMillions
// million shares. A zero float means unknown and passes.
func FloatFilter(maxFloatMillions float64) FilterFunc {
	return func(candidates []market.Candidate) []market.Candidate {
		maxShares := int64(maxFloatMillions * 1_000_000)
		out := candidates[:0:0]
		for _, c := range candidates {
			if c.FloatShares == 0 || c.FloatShares <= maxShares {
				out = append(out, c)
			}
		}
		return out
	}
}

// Apply runs the chain in order, stopping early once nothing is left.
func Apply(candidates []market.Candidate, filters []FilterFunc) []market.Candidate {
	result := candidates
	for _, f := range filters {
		result = f(result)
		if len(result) == 0 {
			break
		}
	}
	return result
}

// BuildChain assembles a filter chain from a screener preset. Unset
// preset fields contribute no filter.
func BuildChain(preset config.ScreenerPreset) []FilterFunc {
	var filters []FilterFunc

	if preset.MinPrice != nil || preset.MaxPrice != nil {
		minPrice := 0.0
		maxPrice := math.Inf(1)
		if preset.MinPrice != nil {
			minPrice = *preset.MinPrice
		}
		if preset.MaxPrice != nil {
			maxPrice = *preset.MaxPrice
		}
		filters = append(filters, PriceFilter(minPrice, maxPrice))
	}

	if preset.MinPremarketVolume != nil {
		filters = append(filters, VolumeFilter(*preset.MinPremarketVolume))
	}

	if preset.MinGapPct != nil {
		filters = append(filters, GapFilter(*preset.MinGapPct))
	}

	if preset.MinAvgVolume != nil {
		filters = append(filters, AvgVolumeFilter(*preset.MinAvgVolume))
	}

	if preset.MaxFloatMillions != nil {
		filters = append(filters, FloatFilter(*preset.MaxFloatMillions))
	}

	return filters
}
