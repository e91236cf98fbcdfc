package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/tradekit/internal/analysis"
	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/internal/provider"
	"github.com/wonny/tradekit/internal/screener"
	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/logger"
)

// Level detection defaults shared with the CLI commands.
const (
	srOrder        = 5
	srTolerancePct = 1.5
	nearestLevels  = 3
)

// Handler serves the screener endpoints.
type Handler struct {
	cfg      *config.Config
	provider provider.Provider
	scanner  *screener.Scanner
	ranker   *screener.Ranker
	logger   *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(cfg *config.Config, p provider.Provider, scanner *screener.Scanner, ranker *screener.Ranker, log *logger.Logger) *Handler {
	return &Handler{cfg: cfg, provider: p, scanner: scanner, ranker: ranker, logger: log}
}

// Scan runs the pre-market scan. Query: preset (default premarket_gap).
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	preset := r.URL.Query().Get("preset")
	if preset == "" {
		preset = "premarket_gap"
	}

	candidates, err := h.scanner.ScanPremarket(r.Context(), preset, nil)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"preset":     preset,
		"count":      len(candidates),
		"candidates": candidates,
	})
}

// Watchlist scans a named watchlist for pre-market activity.
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	candidates, err := h.scanner.ScanWatchlist(r.Context(), name)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"watchlist":  name,
		"count":      len(candidates),
		"candidates": candidates,
	})
}

// Analyze scores a single ticker. Query: period (default 3mo).
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "3mo"
	}

	presets, err := h.cfg.LoadIndicatorPresets()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	series, err := h.provider.History(r.Context(), ticker, period, "1d")
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}
	if len(series) == 0 {
		h.writeError(w, http.StatusNotFound, errNoData(ticker))
		return
	}

	columns := analysis.Compute(series, presets).AddVolume()
	snap, ok := columns.Latest()
	if !ok {
		h.writeError(w, http.StatusNotFound, errNoData(ticker))
		return
	}
	score := analysis.CompositeScore(snap, presets.Weights())

	price := snap.Close
	var quote *market.Quote
	if q, err := h.provider.Quote(r.Context(), ticker); err == nil {
		quote = q
		if q.Price != 0 {
			price = q.Price
		}
	}

	sr := analysis.FindSupportResistance(series, srOrder, srTolerancePct)
	nearest := analysis.NearestLevels(price, sr, nearestLevels)

	h.writeJSON(w, map[string]interface{}{
		"ticker":    ticker,
		"quote":     quote,
		"score":     score,
		"levels":    nearest,
		"indicator": snapshotJSON(snap),
	})
}

// Levels returns support/resistance, pivots and high volume nodes.
func (h *Handler) Levels(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "3mo"
	}

	series, err := h.provider.History(r.Context(), ticker, period, "1d")
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}
	if len(series) == 0 {
		h.writeError(w, http.StatusNotFound, errNoData(ticker))
		return
	}

	sr := analysis.FindSupportResistance(series, srOrder, srTolerancePct)
	last := series[len(series)-1]
	pivots := analysis.PivotPoints(last.High, last.Low, last.Close)
	hvn := analysis.HighVolumeNodes(series.Closes(), series.Volumes(), 20, 3)

	h.writeJSON(w, map[string]interface{}{
		"ticker":            ticker,
		"current":           last.Close,
		"levels":            analysis.NearestLevels(last.Close, sr, nearestLevels),
		"pivots":            pivots,
		"high_volume_nodes": hvn,
	})
}

// Rank scores tickers by composite score. Query: tickers=AAPL,MSFT.
func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("tickers")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, errMissingTickers)
		return
	}

	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			tickers = append(tickers, t)
		}
	}

	ranked, err := h.ranker.Rank(r.Context(), tickers)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"count":  len(ranked),
		"ranked": ranked,
	})
}

// snapshotJSON converts a snapshot to a JSON-safe map. NaN indicator
// values are dropped because encoding/json rejects them.
func snapshotJSON(snap market.Snapshot) map[string]interface{} {
	out := map[string]interface{}{
		"time":  snap.Time,
		"close": snap.Close,
	}
	add := func(key string, v float64) {
		if v == v { // not NaN
			out[key] = v
		}
	}
	add("rsi", snap.RSI)
	add("macd", snap.MACD)
	add("macd_signal", snap.MACDSignal)
	add("macd_histogram", snap.MACDHist)
	add("stoch_k", snap.StochK)
	add("stoch_d", snap.StochD)
	add("ema_9", snap.EMA9)
	add("ema_20", snap.EMA20)
	add("sma_50", snap.SMA50)
	add("sma_200", snap.SMA200)
	add("roc_10", snap.ROC10)
	add("atr", snap.ATR)
	add("atr_pct", snap.ATRPct)
	add("vwap", snap.VWAP)
	add("relative_volume", snap.RelVolume)
	return out
}

type apiErr string

func (e apiErr) Error() string { return string(e) }

const errMissingTickers = apiErr("tickers query parameter is required")

func errNoData(ticker string) error {
	return apiErr("no data available for " + ticker)
}

func (h *Handler) writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Error("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
