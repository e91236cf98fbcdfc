package analysis

import "github.com/wonny/tradekit/internal/market"

// CandleShape is a basic candle classification for one bar.
type CandleShape struct {
	BodyPct float64 // body size as percent of the bar's range
	Bullish bool
	Doji    bool // body under 10% of range
}

// ClassifyCandle classifies a single candle by body size and direction.
func ClassifyCandle(c market.Candle) CandleShape {
	body := c.Close - c.Open
	rng := c.High - c.Low

	shape := CandleShape{Bullish: body > 0}
	if rng > 0 {
		absBody := body
		if absBody < 0 {
			absBody = -absBody
		}
		shape.BodyPct = round1(absBody / rng * 100.0)
	}
	shape.Doji = shape.BodyPct < 10
	return shape
}

// ClassifyCandles classifies every candle in a series.
func ClassifyCandles(series market.Series) []CandleShape {
	out := make([]CandleShape, len(series))
	for i, c := range series {
		out[i] = ClassifyCandle(c)
	}
	return out
}
