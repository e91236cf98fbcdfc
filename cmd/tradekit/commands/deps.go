package commands

import (
	"fmt"

	"github.com/wonny/tradekit/internal/provider"
	"github.com/wonny/tradekit/internal/provider/finviz"
	"github.com/wonny/tradekit/internal/provider/flatfile"
	"github.com/wonny/tradekit/internal/provider/yahoo"
	"github.com/wonny/tradekit/internal/report"
	"github.com/wonny/tradekit/internal/screener"
	"github.com/wonny/tradekit/internal/store"
	"github.com/wonny/tradekit/pkg/cache"
	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/httputil"
	"github.com/wonny/tradekit/pkg/logger"
)

// yahooRequestsPerSecond throttles the upstream quote API.
const yahooRequestsPerSecond = 4

// deps wires the shared dependencies every command needs.
type deps struct {
	cfg        *config.Config
	logger     *logger.Logger
	httpClient *httputil.Client
	cacheConn  *cache.Client
	provider   provider.Provider
	finviz     *finviz.Client
	scanner    *screener.Scanner
	ranker     *screener.Ranker
	alerter    *report.Alerter
}

// initDeps loads config and builds the dependency graph. The --source
// flag overrides the configured data source.
func initDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if sourceFlag != "" {
		cfg.DataSource = sourceFlag
	}

	log := logger.New(cfg)
	httpClient := httputil.New(log)

	cacheConn, err := cache.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Cache unavailable, continuing without it")
		cacheConn = &cache.Client{}
	}

	p, fv, err := newProvider(cfg, httpClient, cacheConn, log)
	if err != nil {
		return nil, err
	}

	presets, err := cfg.LoadIndicatorPresets()
	if err != nil {
		return nil, fmt.Errorf("load indicator presets: %w", err)
	}

	return &deps{
		cfg:        cfg,
		logger:     log,
		httpClient: httpClient,
		cacheConn:  cacheConn,
		provider:   p,
		finviz:     fv,
		scanner:    screener.NewScanner(cfg, p, fv, log),
		ranker:     screener.NewRanker(p, presets, log),
		alerter:    report.NewAlerter(cfg.Alerts, httpClient, log),
	}, nil
}

// newProvider builds the configured data source plus the Finviz seeder.
func newProvider(cfg *config.Config, httpClient *httputil.Client, cacheConn *cache.Client, log *logger.Logger) (provider.Provider, *finviz.Client, error) {
	fvOpts := []finviz.Option{}
	yhOpts := []yahoo.Option{}
	if cacheConn.Enabled() {
		fvOpts = append(fvOpts, finviz.WithCache(cache.NewCache(cacheConn, "tradekit"), cfg.Data.FinvizTTL))
		yhOpts = append(yhOpts, yahoo.WithCache(cache.NewCache(cacheConn, "tradekit"), cfg.Data.YahooTTL))
	}
	fv := finviz.NewClient(httpClient, log, fvOpts...)

	switch cfg.DataSource {
	case "flatfile":
		p, err := flatfile.New(cfg.Data.FlatFileRoot, log)
		if err != nil {
			return nil, nil, fmt.Errorf("flat file provider: %w", err)
		}
		return p, fv, nil
	default:
		yahooHTTP := httputil.New(log).WithRateLimit(yahooRequestsPerSecond, yahooRequestsPerSecond)
		return yahoo.NewClient(yahooHTTP, log, yhOpts...), fv, nil
	}
}

// close releases held connections.
func (d *deps) close() {
	if d.cacheConn != nil {
		_ = d.cacheConn.Close()
	}
}

// openStore connects the optional scan history store. Returns nil
// without error when no DATABASE_URL is configured.
func (d *deps) openStore() (*store.DB, *store.ScanRepository, error) {
	if d.cfg.Database.URL == "" {
		return nil, nil, nil
	}

	db, err := store.New(d.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return db, store.NewScanRepository(db), nil
}
