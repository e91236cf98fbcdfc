package screener

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/provider"
	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/logger"
)

// Seeder supplies an initial candidate ticker list for a scan.
type Seeder interface {
	TopGainers(ctx context.Context, minPrice float64) []string
}

// Scanner runs the pre-market gap and volume scan.
type Scanner struct {
	cfg      *config.Config
	provider provider.Provider
	seeder   Seeder
	logger   *logger.Logger
}

// NewScanner creates a Scanner.
func NewScanner(cfg *config.Config, p provider.Provider, seeder Seeder, log *logger.Logger) *Scanner {
	return &Scanner{cfg: cfg, provider: p, seeder: seeder, logger: log}
}

// ScanPremarket runs the morning workflow: seed candidates from the
// screener signal, enrich with pre-market data, filter and sort by
// absolute gap descending, then cap at the preset's max results.
// Set fields of overrides replace the preset's values.
func (s *Scanner) ScanPremarket(ctx context.Context, presetName string, overrides *config.ScreenerPreset) ([]market.Candidate, error) {
	presets, err := s.cfg.LoadScreenerPresets()
	if err != nil {
		return nil, fmt.Errorf("load screener presets: %w", err)
	}
	preset := presets[presetName]
	if overrides != nil {
		preset = preset.Merge(*overrides)
	}

	minPrice := s.cfg.Screener.MinPrice
	if preset.MinPrice != nil {
		minPrice = *preset.MinPrice
	}

	s.logger.Info("Fetching top gainers")
	tickers := s.seeder.TopGainers(ctx, minPrice)
	if len(tickers) == 0 {
		s.logger.Warn("No candidates found from screener seed")
		return nil, nil
	}

	s.logger.WithField("count", len(tickers)).Info("Enriching candidates with pre-market data")
	candidates := provider.Premarkets(ctx, s.provider, tickers, s.logger)
	if len(candidates) == 0 {
		s.logger.Warn("No pre-market data retrieved")
		return nil, nil
	}

	candidates = Apply(candidates, BuildChain(preset))
	if len(candidates) == 0 {
		s.logger.Info("No candidates passed filters")
		return nil, nil
	}

	sortByAbsGap(candidates)

	maxResults := s.cfg.Screener.MaxResults
	if preset.MaxResults != nil {
		maxResults = *preset.MaxResults
	}
	if maxResults > 0 && len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates, nil
}

// ScanWatchlist fetches pre-market data for a named watchlist,
// sorted by absolute gap descending. No filters are applied.
func (s *Scanner) ScanWatchlist(ctx context.Context, name string) ([]market.Candidate, error) {
	watchlists, err := s.cfg.LoadWatchlists()
	if err != nil {
		return nil, fmt.Errorf("load watchlists: %w", err)
	}

	tickers := watchlists[name]
	if len(tickers) == 0 {
		s.logger.WithField("watchlist", name).Warn("Watchlist is empty or not found")
		return nil, nil
	}

	candidates := provider.Premarkets(ctx, s.provider, tickers, s.logger)
	sortByAbsGap(candidates)
	return candidates, nil
}

func sortByAbsGap(candidates []market.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return math.Abs(candidates[i].GapPct) > math.Abs(candidates[j].GapPct)
	})
}
