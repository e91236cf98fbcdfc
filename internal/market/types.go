package market

import "time"

// Quote is a current market quote for one ticker.
type Quote struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	PrevClose   float64 `json:"prev_close"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Volume      int64   `json:"volume"`
	AvgVolume   int64   `json:"avg_volume"`
	MarketCap   int64   `json:"market_cap"`
	FloatShares int64   `json:"float_shares"`
}

// Candidate is one pre-market screener row: quote/premarket fields plus
// an optional score. Request-scoped; discarded after each invocation.
// A zero AvgVolume/MarketCap/FloatShares means the provider did not
// supply the field.
type Candidate struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	PrePrice    float64 `json:"pre_price"`
	PrevClose   float64 `json:"prev_close"`
	GapPct      float64 `json:"gap_pct"`
	PreVolume   int64   `json:"pre_volume"`
	AvgVolume   int64   `json:"avg_volume"`
	MarketCap   int64   `json:"market_cap"`
	FloatShares int64   `json:"float_shares"`
	Score       *Score  `json:"score,omitempty"`
}

// Score is a composite score with sub-scores, all bounded to [0,100].
type Score struct {
	Total    float64 `json:"total"`
	Momentum float64 `json:"momentum"`
	Trend    float64 `json:"trend"`
	Volume   float64 `json:"volume"`
	Grade    string  `json:"grade"`
}

// RankedCandidate is one row of the ranking output.
type RankedCandidate struct {
	Rank      int     `json:"rank"`
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Volume    int64   `json:"volume"`
	AvgVolume int64   `json:"avg_volume"`
	Score     Score   `json:"score"`
}

// Level is a clustered price zone. Strength counts contributing extrema.
type Level struct {
	Price    float64 `json:"level"`
	Strength int     `json:"strength"`
}

// SRLevels holds detected support and resistance zones.
// Resistance is sorted ascending, support descending.
type SRLevels struct {
	Resistance []Level `json:"resistance"`
	Support    []Level `json:"support"`
}

// PivotPoints are classic floor-trader pivots from prior period H/L/C.
type PivotPoints struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
}

// Snapshot is the indicator row attached to the latest candle.
// Derived, never stored; unavailable values are NaN.
type Snapshot struct {
	Time        time.Time `json:"time"`
	Close       float64   `json:"close"`
	RSI         float64   `json:"rsi"`
	MACD        float64   `json:"macd"`
	MACDSignal  float64   `json:"macd_signal"`
	MACDHist    float64   `json:"macd_histogram"`
	StochK      float64   `json:"stoch_k"`
	StochD      float64   `json:"stoch_d"`
	EMA9        float64   `json:"ema_9"`
	EMA20       float64   `json:"ema_20"`
	SMA50       float64   `json:"sma_50"`
	SMA200      float64   `json:"sma_200"`
	ROC10       float64   `json:"roc_10"`
	ATR         float64   `json:"atr"`
	ATRPct      float64   `json:"atr_pct"`
	VWAP        float64   `json:"vwap"`
	RelVolume   float64   `json:"relative_volume"`
	VolumeSMA20 float64   `json:"volume_sma_20"`
}
