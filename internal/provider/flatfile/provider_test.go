package flatfile

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

// writeDay writes one day-aggregate CSV.gz file under root.
func writeDay(t *testing.T, root string, day time.Time, rows string) {
	t.Helper()

	dir := filepath.Join(root, day.Format("2006"), day.Format("01"))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	f, err := os.Create(filepath.Join(dir, day.Format("2006-01-02")+".csv.gz"))
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("ticker,volume,open,close,high,low,window_start\n" + rows))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
}

func newTestProvider(t *testing.T, root string, now time.Time) *Provider {
	t.Helper()
	p, err := New(root, testLogger())
	require.NoError(t, err)
	p.now = func() time.Time { return now }
	return p
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New("/nonexistent/path", testLogger())
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	root := t.TempDir()
	// Friday 2026-08-21; Thursday has data, Wednesday is a "holiday"
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	writeDay(t, root, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		"AAPL,50000000,210.0,212.5,213.0,209.0,0\nMSFT,30000000,400.0,401.0,402.0,399.0,0\n")
	writeDay(t, root, now,
		"AAPL,52000000,212.0,215.0,216.0,211.5,0\n")

	p := newTestProvider(t, root, now)
	series, err := p.History(context.Background(), "aapl", "5d", "1d")
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.InDelta(t, 212.5, series[0].Close, 1e-9)
	assert.InDelta(t, 215.0, series[1].Close, 1e-9)
	assert.InDelta(t, 52_000_000, series[1].Volume, 1e-9)
	assert.True(t, series[0].Time.Before(series[1].Time))
}

func TestHistory_WindowStartTimestamp(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	// window_start in nanoseconds: 2026-08-21 04:00 UTC
	start := time.Date(2026, 8, 21, 4, 0, 0, 0, time.UTC)
	writeDay(t, root, now,
		"AAPL,1000,1,2,3,0.5,"+strconv.FormatInt(start.UnixNano(), 10)+"\n")

	p := newTestProvider(t, root, now)
	series, err := p.History(context.Background(), "AAPL", "1d", "1d")
	require.NoError(t, err)

	require.Len(t, series, 1)
	assert.True(t, series[0].Time.Equal(start))
}

func TestHistory_TickerNotPresent(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	writeDay(t, root, now, "MSFT,1000,1,2,3,0.5,0\n")

	p := newTestProvider(t, root, now)
	series, err := p.History(context.Background(), "AAPL", "5d", "1d")
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestHistory_MissingDaysSkipped(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	// Only one file in a five day window
	writeDay(t, root, time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC), "AAPL,1000,1,2,3,0.5,0\n")

	p := newTestProvider(t, root, now)
	series, err := p.History(context.Background(), "AAPL", "5d", "1d")
	require.NoError(t, err)
	assert.Len(t, series, 1)
}

func TestQuoteAndPremarketNotSupported(t *testing.T) {
	p := newTestProvider(t, t.TempDir(), time.Now())

	_, err := p.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "live quotes")

	_, err = p.Premarket(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pre-market")
}
