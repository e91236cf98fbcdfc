// Package flatfile reads historical day-aggregate OHLCV data from local
// CSV.gz flat files, for backtesting without a live data source.
package flatfile

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/provider"
	"github.com/wonny/tradekit/pkg/logger"
)

// periodDays maps period notation to calendar day spans.
var periodDays = map[string]int{
	"1d":  1,
	"5d":  5,
	"1mo": 30,
	"3mo": 90,
	"6mo": 180,
	"1y":  365,
	"2y":  730,
	"5y":  1825,
}

// Provider reads day aggregates laid out as
// <root>/YYYY/MM/YYYY-MM-DD.csv.gz with columns
// ticker,volume,open,close,high,low,window_start.
type Provider struct {
	root   string
	logger *logger.Logger
	now    func() time.Time
}

var _ provider.Provider = (*Provider)(nil)

// New creates a flat file provider rooted at dir.
func New(dir string, log *logger.Logger) (*Provider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("flat file root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("flat file root %s is not a directory", dir)
	}
	return &Provider{root: dir, logger: log, now: time.Now}, nil
}

// dayPath builds the file path for a given date.
func (p *Provider) dayPath(day time.Time) string {
	return filepath.Join(p.root,
		day.Format("2006"),
		day.Format("01"),
		day.Format("2006-01-02")+".csv.gz")
}

// History assembles a series for the ticker by reading each weekday's
// file in the period. Missing days (holidays) are skipped.
func (p *Provider) History(ctx context.Context, ticker, period, interval string) (market.Series, error) {
	days, ok := periodDays[period]
	if !ok {
		days = 90
	}

	ticker = strings.ToUpper(ticker)
	end := p.now()
	start := end.AddDate(0, 0, -days)

	var series market.Series
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		candle, found, err := p.readDay(day, ticker)
		if err != nil {
			p.logger.WithError(err).WithField("date", day.Format("2006-01-02")).Warn("Failed to read day file")
			continue
		}
		if !found {
			continue
		}
		series = append(series, candle)
	}

	if len(series) == 0 {
		p.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"period": period,
		}).Warn("No flat file data")
	}
	return series, nil
}

// readDay scans one day's file for the ticker's row.
func (p *Provider) readDay(day time.Time, ticker string) (market.Candle, bool, error) {
	path := p.dayPath(day)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return market.Candle{}, false, nil // holiday or data gap
		}
		return market.Candle{}, false, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return market.Candle{}, false, fmt.Errorf("gzip %s: %w", path, err)
	}
	defer gz.Close()

	r := csv.NewReader(gz)
	header, err := r.Read()
	if err != nil {
		return market.Candle{}, false, fmt.Errorf("read header %s: %w", path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"ticker", "open", "high", "low", "close", "volume"} {
		if _, ok := col[required]; !ok {
			return market.Candle{}, false, fmt.Errorf("%s missing column %q", path, required)
		}
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			return market.Candle{}, false, nil
		}
		if err != nil {
			return market.Candle{}, false, fmt.Errorf("read %s: %w", path, err)
		}
		if record[col["ticker"]] != ticker {
			continue
		}

		candle := market.Candle{
			Time:   day.Truncate(24 * time.Hour),
			Open:   parseField(record, col, "open"),
			High:   parseField(record, col, "high"),
			Low:    parseField(record, col, "low"),
			Close:  parseField(record, col, "close"),
			Volume: parseField(record, col, "volume"),
		}
		if idx, ok := col["window_start"]; ok && idx < len(record) {
			if ns, err := strconv.ParseInt(record[idx], 10, 64); err == nil && ns > 0 {
				candle.Time = time.Unix(0, ns).UTC()
			}
		}
		return candle, true, nil
	}
}

func parseField(record []string, col map[string]int, name string) float64 {
	idx := col[name]
	if idx >= len(record) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0
	}
	return v
}

// Quote is not supported: flat files hold historical day aggregates only.
func (p *Provider) Quote(ctx context.Context, ticker string) (*market.Quote, error) {
	return nil, fmt.Errorf("flat file provider does not support live quotes")
}

// Premarket is not supported: flat files hold historical day aggregates only.
func (p *Provider) Premarket(ctx context.Context, ticker string) (*market.Candidate, error) {
	return nil, fmt.Errorf("flat file provider does not support pre-market data")
}
