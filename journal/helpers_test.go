package journal

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/bands/bands"
	"github.com/rustyeddy/bands/market"
	"github.com/stretchr/testify/require"
)

func testAnalysis(t *testing.T) *bands.Analysis {
	t.Helper()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]market.Candle, 60)
	for i := range candles {
		c := 50 + 3*math.Sin(float64(i)/4)
		candles[i] = market.Candle{
			Time:  start.AddDate(0, 0, i),
			Open:  c - 0.2,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	s, err := market.NewSeries("SPY", candles)
	require.NoError(t, err)

	a, err := bands.Analyze(s, bands.Request{
		Families:        []bands.Family{bands.Ledoux, bands.Bollinger},
		IndicatorFamily: bands.Bollinger,
		Months:          2,
	})
	require.NoError(t, err)
	return a
}
