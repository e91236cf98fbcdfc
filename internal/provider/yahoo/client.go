// Package yahoo implements the Yahoo Finance data provider using the
// public quote and chart endpoints.
package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/provider"
	"github.com/wonny/tradekit/pkg/cache"
	"github.com/wonny/tradekit/pkg/httputil"
	"github.com/wonny/tradekit/pkg/logger"
)

// Client fetches market data from Yahoo Finance.
type Client struct {
	httpClient *httputil.Client
	cache      *cache.Cache
	ttl        time.Duration
	logger     *logger.Logger
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCache enables response caching with the given TTL.
func WithCache(cc *cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cc
		c.ttl = ttl
	}
}

// NewClient creates a new Yahoo Finance client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://query1.finance.yahoo.com",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ provider.Provider = (*Client)(nil)

// quoteResponse is the v7 quote endpoint payload.
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketOpen          float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	AverageDailyVolume3Month   int64   `json:"averageDailyVolume3Month"`
	MarketCap                  int64   `json:"marketCap"`
	FloatShares                int64   `json:"floatShares"`
	PreMarketPrice             float64 `json:"preMarketPrice"`
	PreMarketVolume            int64   `json:"preMarketVolume"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (c *Client) fetchQuote(ctx context.Context, ticker string) (*quoteResult, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(ticker))

	var data quoteResponse
	if c.cache != nil {
		if found, _ := c.cache.Get(ctx, "yahoo_quote", ticker, &data); found {
			return firstQuote(&data, ticker)
		}
	}

	resp, err := c.httpClient.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote request: %w", err)
	}
	if err := httputil.ReadJSON(resp, &data); err != nil {
		return nil, fmt.Errorf("yahoo quote for %s: %w", ticker, err)
	}
	if data.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", data.QuoteResponse.Error.Description)
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, "yahoo_quote", ticker, &data, c.ttl)
	}
	return firstQuote(&data, ticker)
}

func firstQuote(data *quoteResponse, ticker string) (*quoteResult, error) {
	if len(data.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}
	return &data.QuoteResponse.Result[0], nil
}

// Quote returns the current quote for a ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (*market.Quote, error) {
	q, err := c.fetchQuote(ctx, ticker)
	if err != nil {
		return nil, err
	}

	name := q.ShortName
	if name == "" {
		name = ticker
	}

	return &market.Quote{
		Ticker:      ticker,
		Name:        name,
		Price:       q.RegularMarketPrice,
		PrevClose:   q.RegularMarketPreviousClose,
		Open:        q.RegularMarketOpen,
		High:        q.RegularMarketDayHigh,
		Low:         q.RegularMarketDayLow,
		Volume:      q.RegularMarketVolume,
		AvgVolume:   q.AverageDailyVolume3Month,
		MarketCap:   q.MarketCap,
		FloatShares: q.FloatShares,
	}, nil
}

// Premarket returns pre-market quote data for a ticker.
func (c *Client) Premarket(ctx context.Context, ticker string) (*market.Candidate, error) {
	q, err := c.fetchQuote(ctx, ticker)
	if err != nil {
		return nil, err
	}

	name := q.ShortName
	if name == "" {
		name = ticker
	}

	return &market.Candidate{
		Ticker:      ticker,
		Name:        name,
		PrePrice:    q.PreMarketPrice,
		PrevClose:   q.RegularMarketPreviousClose,
		GapPct:      provider.GapPct(q.PreMarketPrice, q.RegularMarketPreviousClose),
		PreVolume:   q.PreMarketVolume,
		AvgVolume:   q.AverageDailyVolume3Month,
		MarketCap:   q.MarketCap,
		FloatShares: q.FloatShares,
	}, nil
}

// chartResponse is the v8 chart endpoint payload. Null bars (holidays)
// come through as nil entries in the quote arrays.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// History returns historical OHLCV data for a ticker.
func (c *Client) History(ctx context.Context, ticker, period, interval string) (market.Series, error) {
	if period == "" {
		period = "3mo"
	}
	if interval == "" {
		interval = "1d"
	}

	cacheKey := strings.Join([]string{ticker, period, interval}, ":")
	var series market.Series
	if c.cache != nil {
		if found, _ := c.cache.Get(ctx, "yahoo_history", cacheKey, &series); found {
			return series, nil
		}
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(period), url.QueryEscape(interval))

	resp, err := c.httpClient.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart request: %w", err)
	}

	var data chartResponse
	if err := httputil.ReadJSON(resp, &data); err != nil {
		return nil, fmt.Errorf("yahoo chart for %s: %w", ticker, err)
	}
	if data.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", data.Chart.Error.Description)
	}
	if len(data.Chart.Result) == 0 || len(data.Chart.Result[0].Indicators.Quote) == 0 {
		c.logger.WithField("ticker", ticker).Warn("No history data")
		return nil, nil
	}

	result := data.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series = make(market.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := deref(quote.Open, i)
		h := deref(quote.High, i)
		l := deref(quote.Low, i)
		cl := deref(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar
		}
		series = append(series, market.Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: deref(quote.Volume, i),
		})
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("yahoo chart for %s: %w", ticker, err)
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, "yahoo_history", cacheKey, series, c.ttl)
	}
	return series, nil
}

func deref(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
