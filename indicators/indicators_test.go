package indicators

import (
	"math"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCloses() []float64 {
	return []float64{
		102, 105, 106, 108, 110, 111, 113, 114, 116, 118,
		117, 115, 112, 113, 116, 119, 121, 120, 118, 122,
		125, 124, 126, 123, 121, 119, 120, 122, 124, 127,
	}
}

func assertUndefinedPrefix(t *testing.T, s Series, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.False(t, s.Defined(i), "index %d should be undefined", i)
	}
	for i := n; i < len(s); i++ {
		assert.True(t, s.Defined(i), "index %d should be defined", i)
	}
}

func TestSMA(t *testing.T) {
	t.Parallel()

	closes := createTestCloses()

	sma, err := SMA(closes, 5)
	require.NoError(t, err)
	require.Len(t, sma, len(closes))
	assertUndefinedPrefix(t, sma, 4)

	// 102,105,106,108,110 => 531/5
	assert.InDelta(t, 106.2, sma[4], 1e-9)

	want := talib.Sma(closes, 5)
	for i := 4; i < len(closes); i++ {
		assert.InDelta(t, want[i], sma[i], 1e-9, "index %d", i)
	}
}

func TestSMAShortSeries(t *testing.T) {
	t.Parallel()

	sma, err := SMA([]float64{1, 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, -1, sma.FirstDefined())

	_, err = SMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestRollingStd(t *testing.T) {
	t.Parallel()

	std, err := RollingStd([]float64{10, 12, 14, 16}, 3)
	require.NoError(t, err)
	assertUndefinedPrefix(t, std, 2)

	// population std of 10,12,14 is sqrt(8/3)
	assert.InDelta(t, math.Sqrt(8.0/3.0), std[2], 1e-12)
	assert.InDelta(t, math.Sqrt(8.0/3.0), std[3], 1e-12)
}

func TestRollingStdIsPopulation(t *testing.T) {
	t.Parallel()

	closes := createTestCloses()
	const period = 10

	std, err := RollingStd(closes, period)
	require.NoError(t, err)

	for i := period - 1; i < len(closes); i++ {
		want, err := stats.StandardDeviationPopulation(closes[i-period+1 : i+1])
		require.NoError(t, err)
		assert.InDelta(t, want, std[i], 1e-9, "index %d", i)
	}
}

func TestRollingStdMatchesTalibBBands(t *testing.T) {
	t.Parallel()

	closes := createTestCloses()

	mid, err := SMA(closes, 20)
	require.NoError(t, err)
	std, err := RollingStd(closes, 20)
	require.NoError(t, err)

	upper, middle, lower := talib.BBands(closes, 20, 2, 2, talib.SMA)
	for i := 19; i < len(closes); i++ {
		assert.InDelta(t, middle[i], mid[i], 1e-9, "middle %d", i)
		assert.InDelta(t, upper[i], mid[i]+2*std[i], 1e-6, "upper %d", i)
		assert.InDelta(t, lower[i], mid[i]-2*std[i], 1e-6, "lower %d", i)
	}
}

func TestRollingExtremes(t *testing.T) {
	t.Parallel()

	closes := createTestCloses()

	hi, err := RollingMax(closes, 7)
	require.NoError(t, err)
	lo, err := RollingMin(closes, 7)
	require.NoError(t, err)
	assertUndefinedPrefix(t, hi, 6)
	assertUndefinedPrefix(t, lo, 6)

	wantHi := talib.Max(closes, 7)
	wantLo := talib.Min(closes, 7)
	for i := 6; i < len(closes); i++ {
		assert.Equal(t, wantHi[i], hi[i], "max %d", i)
		assert.Equal(t, wantLo[i], lo[i], "min %d", i)
	}

	one, err := RollingMax([]float64{3, 1, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, Series{3, 1, 2}, one)
}

func TestEMA(t *testing.T) {
	t.Parallel()

	ema, err := EMA([]float64{1, 2, 3}, 3)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, ema[0], 1e-12)
	assert.InDelta(t, 2.5/1.5, ema[1], 1e-12)
	assert.InDelta(t, 4.25/1.75, ema[2], 1e-12)

	_, err = EMA([]float64{1}, 0)
	assert.Error(t, err)
}

func TestEMADefinedFromFirstBar(t *testing.T) {
	t.Parallel()

	ema, err := EMA(createTestCloses(), 20)
	require.NoError(t, err)
	assertUndefinedPrefix(t, ema, 0)
	assert.Equal(t, 102.0, ema[0])
}

func TestEMALongSpanApproachesCumulativeMean(t *testing.T) {
	t.Parallel()

	closes := createTestCloses()

	ema, err := EMA(closes, 1_000_000_000)
	require.NoError(t, err)

	sum := 0.0
	for i, c := range closes {
		sum += c
		assert.InDelta(t, sum/float64(i+1), ema[i], 1e-4, "index %d", i)
	}
}

func TestEMAConstantInput(t *testing.T) {
	t.Parallel()

	ema, err := EMA([]float64{5, 5, 5, 5, 5}, 2)
	require.NoError(t, err)
	for _, v := range ema {
		assert.InDelta(t, 5.0, v, 1e-12)
	}
}

func TestEMASkipsUndefined(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	ema, err := EMA([]float64{nan, 4, nan, 4}, 3)
	require.NoError(t, err)

	assert.False(t, ema.Defined(0))
	assert.InDelta(t, 4.0, ema[1], 1e-12)
	assert.InDelta(t, 4.0, ema[2], 1e-12)
	assert.InDelta(t, 4.0, ema[3], 1e-12)
}

func TestTrueRange(t *testing.T) {
	t.Parallel()

	high := []float64{10, 11, 7}
	low := []float64{8, 9, 6}
	closes := []float64{9, 10, 6.5}

	tr, err := TrueRange(high, low, closes)
	require.NoError(t, err)
	// bar 0: high-low; bar 1: |11-9| ties high-low; bar 2 gaps down: |6-10|
	assert.Equal(t, Series{2, 2, 4}, tr)

	_, err = TrueRange(high, low[:2], closes)
	assert.Error(t, err)
}

func TestATR(t *testing.T) {
	t.Parallel()

	high := []float64{10, 11, 12, 11, 12, 13}
	low := []float64{8, 9, 10, 9, 10, 11}
	closes := []float64{9, 10, 11, 10, 11, 12}

	atr, err := ATR(high, low, closes, DefaultATRSpan)
	require.NoError(t, err)
	assertUndefinedPrefix(t, atr, 0)
	for _, v := range atr {
		assert.InDelta(t, 2.0, v, 1e-12)
	}
}

func TestSeriesHelpers(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	s := Series{nan, 1, 2}

	assert.Equal(t, 1, s.FirstDefined())
	assert.False(t, s.Defined(-1))
	assert.False(t, s.Defined(3))

	doubled := s.Map(func(v float64) float64 { return v * 2 })
	assert.False(t, doubled.Defined(0))
	assert.Equal(t, 4.0, doubled[2])

	sum := Combine(s, Series{1, 1}, func(a, b float64) float64 { return a + b })
	require.Len(t, sum, 2)
	assert.False(t, sum.Defined(0))
	assert.Equal(t, 2.0, sum[1])

	assert.Equal(t, -1, NaN(3).FirstDefined())
}
