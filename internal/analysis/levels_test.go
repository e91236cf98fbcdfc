package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotPoints(t *testing.T) {
	p := PivotPoints(110, 100, 105)

	assert.InDelta(t, 105.0, p.Pivot, 1e-9)
	assert.InDelta(t, 110.0, p.R1, 1e-9)
	assert.InDelta(t, 115.0, p.R2, 1e-9)
	assert.InDelta(t, 120.0, p.R3, 1e-9)
	assert.InDelta(t, 100.0, p.S1, 1e-9)
	assert.InDelta(t, 95.0, p.S2, 1e-9)
	assert.InDelta(t, 90.0, p.S3, 1e-9)
}

func TestPivotPoints_Ordering(t *testing.T) {
	cases := []struct {
		name             string
		high, low, close float64
	}{
		{"narrow range", 50.2, 49.8, 50.0},
		{"wide range", 120, 80, 95},
		{"close at high", 33, 30, 33},
		{"close at low", 33, 30, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := PivotPoints(tc.high, tc.low, tc.close)
			assert.Greater(t, p.R1, p.Pivot)
			assert.Greater(t, p.Pivot, p.S1)
			assert.GreaterOrEqual(t, p.R2, p.R1)
			assert.LessOrEqual(t, p.S2, p.S1)
		})
	}
}

func TestLocalExtremes(t *testing.T) {
	// Peak at index 3 (5.0), trough at index 7 (0.5)
	values := []float64{1, 2, 3, 5, 3, 2, 1, 0.5, 1, 2, 3}
	peaks, troughs := LocalExtremes(values, 2)

	require.Len(t, peaks, 1)
	assert.Equal(t, 3, peaks[0].Index)
	assert.InDelta(t, 5.0, peaks[0].Price, 1e-9)

	require.Len(t, troughs, 1)
	assert.Equal(t, 7, troughs[0].Index)
	assert.InDelta(t, 0.5, troughs[0].Price, 1e-9)
}

func TestLocalExtremes_ShortInput(t *testing.T) {
	peaks, troughs := LocalExtremes([]float64{1, 2}, 5)
	assert.Empty(t, peaks)
	assert.Empty(t, troughs)
}

func TestClusterLevels(t *testing.T) {
	levels := []float64{100, 100.5, 101, 110, 110.5}
	clusters := ClusterLevels(levels, 1.5)

	require.Len(t, clusters, 2)

	assert.InDelta(t, 100.5, clusters[0].Price, 1e-9)
	assert.Equal(t, 3, clusters[0].Strength)

	assert.InDelta(t, 110.25, clusters[1].Price, 1e-9)
	assert.Equal(t, 2, clusters[1].Strength)
}

func TestClusterLevels_Empty(t *testing.T) {
	assert.Nil(t, ClusterLevels(nil, 1.5))
}

func TestClusterLevels_SingleLevel(t *testing.T) {
	clusters := ClusterLevels([]float64{42.0}, 1.5)
	require.Len(t, clusters, 1)
	assert.InDelta(t, 42.0, clusters[0].Price, 1e-9)
	assert.Equal(t, 1, clusters[0].Strength)
}

func TestFindSupportResistance(t *testing.T) {
	// Oscillating series with clear tops near 110 and bottoms near 90
	series := synthSeries(120)
	sr := FindSupportResistance(series, 5, 1.5)

	require.NotEmpty(t, sr.Resistance)
	require.NotEmpty(t, sr.Support)

	// Resistance ascending, support descending
	for i := 1; i < len(sr.Resistance); i++ {
		assert.GreaterOrEqual(t, sr.Resistance[i].Price, sr.Resistance[i-1].Price)
	}
	for i := 1; i < len(sr.Support); i++ {
		assert.LessOrEqual(t, sr.Support[i].Price, sr.Support[i-1].Price)
	}

	for _, l := range append(sr.Resistance, sr.Support...) {
		assert.GreaterOrEqual(t, l.Strength, 1)
	}
}

func TestNearestLevels(t *testing.T) {
	series := synthSeries(120)
	sr := FindSupportResistance(series, 5, 1.5)

	current := series[len(series)-1].Close
	nearest := NearestLevels(current, sr, 3)

	assert.LessOrEqual(t, len(nearest.Resistance), 3)
	assert.LessOrEqual(t, len(nearest.Support), 3)
	for _, r := range nearest.Resistance {
		assert.Greater(t, r.Price, current)
	}
	for _, s := range nearest.Support {
		assert.Less(t, s.Price, current)
	}
}
