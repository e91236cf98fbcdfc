package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configWithDir(t *testing.T) *Config {
	t.Helper()
	return &Config{ConfigDir: t.TempDir(), Timezone: time.UTC}
}

func writeConfigFile(t *testing.T, cfg *Config, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ConfigDir, name), []byte(content), 0o644))
}

func TestLoadWatchlists(t *testing.T) {
	cfg := configWithDir(t)
	writeConfigFile(t, cfg, "watchlists.yaml", `default:
  - AAPL
  - MSFT
momentum:
  - SMCI
`)

	lists, err := cfg.LoadWatchlists()
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, lists["default"])
	assert.Equal(t, []string{"SMCI"}, lists["momentum"])
}

func TestLoadWatchlists_MissingFile(t *testing.T) {
	cfg := configWithDir(t)

	lists, err := cfg.LoadWatchlists()
	require.NoError(t, err)
	assert.Contains(t, lists, "default")
	assert.Empty(t, lists["default"])
}

func TestLoadScreenerPresets(t *testing.T) {
	cfg := configWithDir(t)
	writeConfigFile(t, cfg, "screener.yaml", `premarket_gap:
  min_price: 2.0
  min_gap_pct: 3.5
  max_results: 10
`)

	presets, err := cfg.LoadScreenerPresets()
	require.NoError(t, err)

	preset, ok := presets["premarket_gap"]
	require.True(t, ok)
	require.NotNil(t, preset.MinPrice)
	assert.InDelta(t, 2.0, *preset.MinPrice, 1e-9)
	require.NotNil(t, preset.MinGapPct)
	assert.InDelta(t, 3.5, *preset.MinGapPct, 1e-9)
	require.NotNil(t, preset.MaxResults)
	assert.Equal(t, 10, *preset.MaxResults)

	// Unset fields stay nil so no filter gets built for them
	assert.Nil(t, preset.MaxPrice)
	assert.Nil(t, preset.MaxFloatMillions)
}

func TestLoadScreenerPresets_UnknownFieldFails(t *testing.T) {
	cfg := configWithDir(t)
	writeConfigFile(t, cfg, "screener.yaml", `premarket_gap:
  min_prise: 2.0
`)

	_, err := cfg.LoadScreenerPresets()
	require.Error(t, err, "typos in preset files must fail fast")
}

func TestLoadIndicatorPresets_Defaults(t *testing.T) {
	cfg := configWithDir(t)

	presets, err := cfg.LoadIndicatorPresets()
	require.NoError(t, err)

	assert.Equal(t, 14, presets.RSI.Period)
	assert.Equal(t, 12, presets.MACD.Fast)
	assert.Equal(t, 26, presets.MACD.Slow)
	assert.Equal(t, 9, presets.MACD.Signal)
	assert.Len(t, presets.MovingAverages, 4)
}

func TestLoadIndicatorPresets_Overrides(t *testing.T) {
	cfg := configWithDir(t)
	writeConfigFile(t, cfg, "indicators.yaml", `rsi:
  period: 7
scoring_weights:
  momentum: 0.5
  trend: 0.3
  volume: 0.2
`)

	presets, err := cfg.LoadIndicatorPresets()
	require.NoError(t, err)

	assert.Equal(t, 7, presets.RSI.Period)
	// Untouched values keep defaults
	assert.Equal(t, 12, presets.MACD.Fast)

	weights := presets.Weights()
	assert.InDelta(t, 0.5, weights.Momentum, 1e-9)
	assert.InDelta(t, 0.2, weights.Volume, 1e-9)
}

func TestWeights_InvalidFallsBackToDefault(t *testing.T) {
	var p IndicatorPresets
	p.ScoringWeights = &ScoreWeights{Momentum: 0.9, Trend: 0.9, Volume: 0.9}

	assert.Equal(t, DefaultScoreWeights(), p.Weights())
}

func TestScreenerPreset_Merge(t *testing.T) {
	base := ScreenerPreset{}
	minPrice := 2.0
	base.MinPrice = &minPrice

	override := ScreenerPreset{}
	minGap := 5.0
	override.MinGapPct = &minGap

	merged := base.Merge(override)
	require.NotNil(t, merged.MinPrice)
	assert.InDelta(t, 2.0, *merged.MinPrice, 1e-9)
	require.NotNil(t, merged.MinGapPct)
	assert.InDelta(t, 5.0, *merged.MinGapPct, 1e-9)
}
