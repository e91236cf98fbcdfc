package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScreenerPreset is one named filter configuration from config/screener.yaml.
// Pointer fields distinguish "not set" from zero: an unset field means the
// corresponding filter is not built at all.
type ScreenerPreset struct {
	MinPrice           *float64 `yaml:"min_price"`
	MaxPrice           *float64 `yaml:"max_price"`
	MinGapPct          *float64 `yaml:"min_gap_pct"`
	MinPremarketVolume *int64   `yaml:"min_premarket_volume"`
	MinAvgVolume       *int64   `yaml:"min_avg_volume"`
	MaxFloatMillions   *float64 `yaml:"max_float_millions"`
	MaxResults         *int     `yaml:"max_results"`
}

// Merge overlays set fields of o onto p and returns the result.
func (p ScreenerPreset) Merge(o ScreenerPreset) ScreenerPreset {
	if o.MinPrice != nil {
		p.MinPrice = o.MinPrice
	}
	if o.MaxPrice != nil {
		p.MaxPrice = o.MaxPrice
	}
	if o.MinGapPct != nil {
		p.MinGapPct = o.MinGapPct
	}
	if o.MinPremarketVolume != nil {
		p.MinPremarketVolume = o.MinPremarketVolume
	}
	if o.MinAvgVolume != nil {
		p.MinAvgVolume = o.MinAvgVolume
	}
	if o.MaxFloatMillions != nil {
		p.MaxFloatMillions = o.MaxFloatMillions
	}
	if o.MaxResults != nil {
		p.MaxResults = o.MaxResults
	}
	return p
}

// MAConfig configures one moving average column.
type MAConfig struct {
	Period int    `yaml:"period"`
	Type   string `yaml:"type"` // ema or sma
}

// IndicatorPresets holds indicator parameter overrides from config/indicators.yaml.
type IndicatorPresets struct {
	RSI struct {
		Period int `yaml:"period"`
	} `yaml:"rsi"`
	MACD struct {
		Fast   int `yaml:"fast"`
		Slow   int `yaml:"slow"`
		Signal int `yaml:"signal"`
	} `yaml:"macd"`
	Stochastic struct {
		KPeriod int `yaml:"k_period"`
		DPeriod int `yaml:"d_period"`
	} `yaml:"stochastic"`
	MovingAverages []MAConfig     `yaml:"moving_averages"`
	ScoringWeights *ScoreWeights  `yaml:"scoring_weights"`
}

// ScoreWeights holds composite score weights.
type ScoreWeights struct {
	Momentum float64 `yaml:"momentum"`
	Trend    float64 `yaml:"trend"`
	Volume   float64 `yaml:"volume"`
}

// DefaultScoreWeights returns the default momentum/trend/volume split.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Momentum: 0.35, Trend: 0.35, Volume: 0.30}
}

// Valid reports whether the weights sum to 1.0 within float tolerance.
func (w ScoreWeights) Valid() bool {
	sum := w.Momentum + w.Trend + w.Volume
	return sum >= 0.99 && sum <= 1.01
}

// DefaultIndicatorPresets returns the standard indicator parameters.
func DefaultIndicatorPresets() IndicatorPresets {
	var p IndicatorPresets
	p.RSI.Period = 14
	p.MACD.Fast = 12
	p.MACD.Slow = 26
	p.MACD.Signal = 9
	p.Stochastic.KPeriod = 14
	p.Stochastic.DPeriod = 3
	p.MovingAverages = []MAConfig{
		{Period: 9, Type: "ema"},
		{Period: 20, Type: "ema"},
		{Period: 50, Type: "sma"},
		{Period: 200, Type: "sma"},
	}
	return p
}

// LoadWatchlists reads config/watchlists.yaml.
// A missing file yields a single empty "default" watchlist.
func (c *Config) LoadWatchlists() (map[string][]string, error) {
	path := filepath.Join(c.ConfigDir, "watchlists.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{"default": {}}, nil
		}
		return nil, fmt.Errorf("read watchlists: %w", err)
	}

	var lists map[string][]string
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parse watchlists: %w", err)
	}
	if lists == nil {
		lists = map[string][]string{"default": {}}
	}
	return lists, nil
}

// LoadScreenerPresets reads config/screener.yaml.
// Unknown fields fail fast so preset typos surface immediately.
func (c *Config) LoadScreenerPresets() (map[string]ScreenerPreset, error) {
	path := filepath.Join(c.ConfigDir, "screener.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ScreenerPreset{}, nil
		}
		return nil, fmt.Errorf("read screener presets: %w", err)
	}

	var presets map[string]ScreenerPreset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&presets); err != nil {
		return nil, fmt.Errorf("parse screener presets: %w", err)
	}
	return presets, nil
}

// LoadIndicatorPresets reads config/indicators.yaml, falling back to
// defaults when the file is absent. Set fields override defaults.
func (c *Config) LoadIndicatorPresets() (IndicatorPresets, error) {
	presets := DefaultIndicatorPresets()

	path := filepath.Join(c.ConfigDir, "indicators.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return presets, nil
		}
		return presets, fmt.Errorf("read indicator presets: %w", err)
	}

	var loaded IndicatorPresets
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&loaded); err != nil {
		return presets, fmt.Errorf("parse indicator presets: %w", err)
	}

	if loaded.RSI.Period > 0 {
		presets.RSI.Period = loaded.RSI.Period
	}
	if loaded.MACD.Fast > 0 {
		presets.MACD.Fast = loaded.MACD.Fast
	}
	if loaded.MACD.Slow > 0 {
		presets.MACD.Slow = loaded.MACD.Slow
	}
	if loaded.MACD.Signal > 0 {
		presets.MACD.Signal = loaded.MACD.Signal
	}
	if loaded.Stochastic.KPeriod > 0 {
		presets.Stochastic.KPeriod = loaded.Stochastic.KPeriod
	}
	if loaded.Stochastic.DPeriod > 0 {
		presets.Stochastic.DPeriod = loaded.Stochastic.DPeriod
	}
	if len(loaded.MovingAverages) > 0 {
		presets.MovingAverages = loaded.MovingAverages
	}
	if loaded.ScoringWeights != nil {
		presets.ScoringWeights = loaded.ScoringWeights
	}

	return presets, nil
}

// Weights returns the configured scoring weights or the defaults.
func (p IndicatorPresets) Weights() ScoreWeights {
	if p.ScoringWeights != nil && p.ScoringWeights.Valid() {
		return *p.ScoringWeights
	}
	return DefaultScoreWeights()
}
