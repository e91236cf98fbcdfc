package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/tradekit/internal/market"
)

func TestClassifyCandle(t *testing.T) {
	cases := []struct {
		name    string
		candle  market.Candle
		bullish bool
		doji    bool
		bodyPct float64
	}{
		{
			name:    "strong bullish",
			candle:  market.Candle{Open: 10, High: 11, Low: 9.9, Close: 10.9},
			bullish: true,
			bodyPct: 81.8,
		},
		{
			name:    "strong bearish",
			candle:  market.Candle{Open: 10.9, High: 11, Low: 9.9, Close: 10},
			bullish: false,
			bodyPct: 81.8,
		},
		{
			name:    "doji",
			candle:  market.Candle{Open: 10, High: 10.5, Low: 9.5, Close: 10.02},
			bullish: true,
			doji:    true,
			bodyPct: 2.0,
		},
		{
			name:    "zero range",
			candle:  market.Candle{Open: 10, High: 10, Low: 10, Close: 10},
			bullish: false,
			doji:    true,
			bodyPct: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shape := ClassifyCandle(tc.candle)
			assert.Equal(t, tc.bullish, shape.Bullish)
			assert.Equal(t, tc.doji, shape.Doji)
			assert.InDelta(t, tc.bodyPct, shape.BodyPct, 1e-9)
		})
	}
}

func TestClassifyCandles(t *testing.T) {
	series := market.Series{
		{Open: 10, High: 11, Low: 9.9, Close: 10.9},
		{Open: 10.9, High: 11, Low: 9.9, Close: 10},
	}

	shapes := ClassifyCandles(series)
	assert.Len(t, shapes, 2)
	assert.True(t, shapes[0].Bullish)
	assert.False(t, shapes[1].Bullish)
}
