package bands

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/bands/market"
	"github.com/stretchr/testify/require"
)

func day(i int) time.Time {
	return time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

// seriesFromCloses opens each bar at the previous close and pads the range
// by one either side.
func seriesFromCloses(t *testing.T, closes []float64) *market.Series {
	t.Helper()

	candles := make([]market.Candle, len(closes))
	prev := closes[0]
	for i, c := range closes {
		candles[i] = market.Candle{
			Time:  day(i),
			Open:  prev,
			High:  math.Max(prev, c) + 1,
			Low:   math.Max(math.Min(prev, c)-1, 0),
			Close: c,
		}
		prev = c
	}
	s, err := market.NewSeries("TEST", candles)
	require.NoError(t, err)
	return s
}

// wavySeries is a deterministic trending, oscillating price path.
func wavySeries(t *testing.T, n int) *market.Series {
	t.Helper()

	closes := make([]float64, n)
	for i := range closes {
		x := float64(i)
		closes[i] = 100 + 0.1*x + 8*math.Sin(x/7) + 3*math.Cos(x/2.3)
	}
	return seriesFromCloses(t, closes)
}

func scenarioSeries(t *testing.T) *market.Series {
	return seriesFromCloses(t, []float64{10, 12, 14, 16, 18, 20})
}
