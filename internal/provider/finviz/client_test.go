package finviz

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

const screenerHTML = `<html><body>
<table class="screener_table">
<tr>
  <td>No.</td><td>Ticker</td><td>Company</td><td>Sector</td><td>Industry</td>
  <td>Country</td><td>Market Cap</td><td>P/E</td><td>Price</td><td>Change</td><td>Volume</td>
</tr>
<tr>
  <td>1</td><td>ABCD</td><td>Alpha Beta Corp</td><td>Technology</td><td>Software</td>
  <td>USA</td><td>1.2B</td><td>25.3</td><td>14.52</td><td>12.40%</td><td>5,120,000</td>
</tr>
<tr>
  <td>2</td><td>WXYZ</td><td>Widget Co</td><td>Healthcare</td><td>Biotech</td>
  <td>USA</td><td>300M</td><td>-</td><td>3.85</td><td>-8.15%</td><td>2.4M</td>
</tr>
</table>
</body></html>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient := httputil.New(testLogger()).DisableRetry()
	return NewClient(httpClient, testLogger(), WithBaseURL(srv.URL))
}

func TestScreen(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/screener.ashx", r.URL.Path)
		assert.Equal(t, "ta_topgainers", r.URL.Query().Get("s"))
		assert.Equal(t, "sh_price_o5", r.URL.Query().Get("f"))
		fmt.Fprint(w, screenerHTML)
	})

	rows := client.Screen(context.Background(), "top_gainers", 5.0)
	require.Len(t, rows, 2)

	assert.Equal(t, "ABCD", rows[0].Ticker)
	assert.Equal(t, "Alpha Beta Corp", rows[0].Company)
	assert.Equal(t, "Technology", rows[0].Sector)
	assert.InDelta(t, 14.52, rows[0].Price, 1e-9)
	assert.InDelta(t, 12.40, rows[0].ChangePct, 1e-9)
	assert.Equal(t, int64(5_120_000), rows[0].Volume)

	assert.Equal(t, "WXYZ", rows[1].Ticker)
	assert.InDelta(t, -8.15, rows[1].ChangePct, 1e-9)
	assert.Equal(t, int64(2_400_000), rows[1].Volume)
}

func TestScreen_UnknownSignalIgnored(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("s"))
		fmt.Fprint(w, screenerHTML)
	})

	rows := client.Screen(context.Background(), "bogus_signal", 0)
	assert.Len(t, rows, 2)
}

func TestScreen_ServerErrorReturnsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	rows := client.Screen(context.Background(), "top_gainers", 5.0)
	assert.Empty(t, rows)
}

func TestTopGainers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, screenerHTML)
	})

	tickers := client.TopGainers(context.Background(), 5.0)
	assert.Equal(t, []string{"ABCD", "WXYZ"}, tickers)
}

func TestParseVolume(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"5,120,000", 5_120_000},
		{"2.4M", 2_400_000},
		{"850K", 850_000},
		{"1.1B", 1_100_000_000},
		{"-", 0},
		{"", 0},
		{"junk", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseVolume(tc.in), "input %q", tc.in)
	}
}
