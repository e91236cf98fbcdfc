package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/httputil"
	"github.com/wonny/tradekit/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

const quoteBody = `{
	"quoteResponse": {
		"result": [{
			"symbol": "AAPL",
			"shortName": "Apple Inc.",
			"regularMarketPrice": 210.5,
			"regularMarketPreviousClose": 200.0,
			"regularMarketOpen": 205.0,
			"regularMarketDayHigh": 212.0,
			"regularMarketDayLow": 204.0,
			"regularMarketVolume": 55000000,
			"averageDailyVolume3Month": 60000000,
			"marketCap": 3200000000000,
			"preMarketPrice": 206.0,
			"preMarketVolume": 1200000
		}],
		"error": null
	}
}`

const chartBody = `{
	"chart": {
		"result": [{
			"timestamp": [1767279600, 1767366000, 1767452400],
			"indicators": {
				"quote": [{
					"open":   [100.0, null, 102.0],
					"high":   [101.0, null, 103.5],
					"low":    [99.0,  null, 101.0],
					"close":  [100.5, null, 103.0],
					"volume": [1000000, null, 1500000]
				}]
			}
		}],
		"error": null
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient := httputil.New(testLogger()).DisableRetry()
	return NewClient(httpClient, testLogger(), WithBaseURL(srv.URL))
}

func TestQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		fmt.Fprint(w, quoteBody)
	})

	quote, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Ticker)
	assert.Equal(t, "Apple Inc.", quote.Name)
	assert.InDelta(t, 210.5, quote.Price, 1e-9)
	assert.InDelta(t, 200.0, quote.PrevClose, 1e-9)
	assert.Equal(t, int64(55_000_000), quote.Volume)
	assert.Equal(t, int64(60_000_000), quote.AvgVolume)
}

func TestQuote_NoResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse": {"result": [], "error": null}}`)
	})

	_, err := client.Quote(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no quote data")
}

func TestPremarket(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, quoteBody)
	})

	c, err := client.Premarket(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.InDelta(t, 206.0, c.PrePrice, 1e-9)
	assert.InDelta(t, 200.0, c.PrevClose, 1e-9)
	// (206-200)/200*100 = 3.00
	assert.InDelta(t, 3.0, c.GapPct, 1e-9)
	assert.Equal(t, int64(1_200_000), c.PreVolume)
}

func TestHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "3mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartBody)
	})

	series, err := client.History(context.Background(), "AAPL", "3mo", "1d")
	require.NoError(t, err)

	// The null middle bar is dropped
	require.Len(t, series, 2)
	assert.InDelta(t, 100.5, series[0].Close, 1e-9)
	assert.InDelta(t, 103.0, series[1].Close, 1e-9)
	assert.InDelta(t, 1_500_000, series[1].Volume, 1e-9)
	assert.True(t, series[1].Time.After(series[0].Time))
}

func TestHistory_DefaultPeriodAndInterval(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3mo", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartBody)
	})

	_, err := client.History(context.Background(), "AAPL", "", "")
	require.NoError(t, err)
}

func TestHistory_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	})

	series, err := client.History(context.Background(), "ZZZZ", "3mo", "1d")
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestHistory_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`)
	})

	_, err := client.History(context.Background(), "BAD", "3mo", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}
