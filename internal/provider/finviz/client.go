// Package finviz scrapes the Finviz screener for candidate tickers.
package finviz

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/tradekit/pkg/cache"
	"github.com/wonny/tradekit/pkg/httputil"
	"github.com/wonny/tradekit/pkg/logger"
)

// signalMap translates screener signal names to Finviz URL codes.
var signalMap = map[string]string{
	"top_gainers":    "ta_topgainers",
	"new_high":       "ta_newhigh",
	"most_volatile":  "ta_mostvolatile",
	"most_active":    "ta_mostactive",
	"unusual_volume": "ta_unusualvolume",
	"overbought":     "ta_overbought",
	"oversold":       "ta_oversold",
}

// Row is one result row from the screener overview table.
type Row struct {
	Ticker    string  `json:"ticker"`
	Company   string  `json:"company"`
	Sector    string  `json:"sector"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Volume    int64   `json:"volume"`
}

// Client scrapes the Finviz screener.
type Client struct {
	httpClient *httputil.Client
	cache      *cache.Cache
	ttl        time.Duration
	logger     *logger.Logger
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the screener base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCache enables result caching with the given TTL.
func WithCache(cc *cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cc
		c.ttl = ttl
	}
}

// NewClient creates a new Finviz screener client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://finviz.com",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Screen runs a screener query. Unknown signals are ignored. Scrape
// failures return an empty slice after logging, so a Finviz outage
// degrades a scan instead of aborting it.
func (c *Client) Screen(ctx context.Context, signal string, minPrice float64) []Row {
	filters := make([]string, 0, 2)
	if minPrice > 0 {
		filters = append(filters, fmt.Sprintf("sh_price_o%d", int(minPrice)))
	}

	params := url.Values{}
	params.Set("v", "111") // overview view
	if len(filters) > 0 {
		params.Set("f", strings.Join(filters, ","))
	}
	if code, ok := signalMap[signal]; ok {
		params.Set("s", code)
	} else if signal != "" {
		c.logger.WithField("signal", signal).Warn("Unknown screener signal, ignoring")
	}

	cacheKey := params.Encode()
	var rows []Row
	if c.cache != nil {
		if found, _ := c.cache.Get(ctx, "finviz", cacheKey, &rows); found {
			return rows
		}
	}

	u := fmt.Sprintf("%s/screener.ashx?%s", c.baseURL, cacheKey)
	resp, err := c.httpClient.Get(ctx, u)
	if err != nil {
		c.logger.WithError(err).Warn("Finviz screener request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		c.logger.WithField("status", resp.StatusCode).Warn("Finviz screener returned non-OK status")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to parse Finviz response")
		return nil
	}

	rows = parseOverview(doc)
	if len(rows) == 0 {
		c.logger.WithField("signal", signal).Warn("Finviz screener returned no rows")
		return nil
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, "finviz", cacheKey, rows, c.ttl)
	}
	return rows
}

// parseOverview extracts rows from the overview table. Columns:
// No. | Ticker | Company | Sector | Industry | Country | Market Cap |
// P/E | Price | Change | Volume.
func parseOverview(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find("table.screener_table tr, tr.screener-body-table-nw").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 11 {
			return
		}
		ticker := strings.TrimSpace(cells.Eq(1).Text())
		if ticker == "" || ticker == "Ticker" {
			return
		}
		rows = append(rows, Row{
			Ticker:    ticker,
			Company:   strings.TrimSpace(cells.Eq(2).Text()),
			Sector:    strings.TrimSpace(cells.Eq(3).Text()),
			Price:     parseFloat(cells.Eq(8).Text()),
			ChangePct: parseFloat(strings.TrimSuffix(strings.TrimSpace(cells.Eq(9).Text()), "%")),
			Volume:    parseVolume(cells.Eq(10).Text()),
		})
	})
	return rows
}

// TopGainers returns tickers from today's top gainers signal.
func (c *Client) TopGainers(ctx context.Context, minPrice float64) []string {
	return tickers(c.Screen(ctx, "top_gainers", minPrice))
}

// UnusualVolume returns tickers trading on unusual volume.
func (c *Client) UnusualVolume(ctx context.Context, minPrice float64) []string {
	return tickers(c.Screen(ctx, "unusual_volume", minPrice))
}

// MostActive returns the most actively traded tickers.
func (c *Client) MostActive(ctx context.Context, minPrice float64) []string {
	return tickers(c.Screen(ctx, "most_active", minPrice))
}

func tickers(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Ticker
	}
	return out
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseVolume handles both comma-grouped integers and K/M/B suffixes.
func parseVolume(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0
	}
	mult := 1.0
	switch s[len(s)-1] {
	case 'K':
		mult = 1_000
		s = s[:len(s)-1]
	case 'M':
		mult = 1_000_000
		s = s[:len(s)-1]
	case 'B':
		mult = 1_000_000_000
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(v * mult)
}
