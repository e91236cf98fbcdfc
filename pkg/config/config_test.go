package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("MARKET_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource)
	assert.Equal(t, "8097", cfg.Port)
	assert.Equal(t, "America/New_York", cfg.Timezone.String())
	assert.Equal(t, 5*time.Minute, cfg.Data.YahooTTL)
	assert.InDelta(t, 2.0, cfg.Screener.MinGapPct, 1e-9)
}

func TestLoad_InvalidDataSource(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DATA_SOURCE", "bloomberg")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_SOURCE")
}

func TestLoad_InvalidPriceRange(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("DATA_SOURCE", "yahoo")
	t.Setenv("SCREENER_MIN_PRICE", "50")
	t.Setenv("SCREENER_MAX_PRICE", "10")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("MARKET_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	require.Error(t, err)
}
