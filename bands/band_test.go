package bands

import (
	"math"
	"testing"

	"github.com/rustyeddy/bands/indicators"
	"github.com/rustyeddy/bands/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBollingerScenario(t *testing.T) {
	t.Parallel()

	b, err := Compute(Bollinger, scenarioSeries(t), Params{Length: 3, Width: 2})
	require.NoError(t, err)

	std := math.Sqrt(8.0 / 3.0)
	assert.InDelta(t, 1.633, std, 0.001)
	assert.InDelta(t, 12.0, b.Middle[2], 1e-12)
	assert.InDelta(t, 12+2*std, b.Upper[2], 1e-12)
	assert.InDelta(t, 12-2*std, b.Lower[2], 1e-12)
	assert.InDelta(t, 15.266, b.Upper[2], 0.001)
	assert.InDelta(t, 8.734, b.Lower[2], 0.001)
	assert.Equal(t, 2, b.Warmup())
}

func TestDonchianScenario(t *testing.T) {
	t.Parallel()

	b, err := Compute(Donchian, scenarioSeries(t), Params{Length: 3})
	require.NoError(t, err)

	assert.False(t, b.HasMiddle())
	assert.Equal(t, 14.0, b.Upper[2])
	assert.Equal(t, 10.0, b.Lower[2])
	assert.Equal(t, 20.0, b.Upper[5])
	assert.Equal(t, 16.0, b.Lower[5])
}

func TestDonchianMatchesWindowExtremes(t *testing.T) {
	t.Parallel()

	s := wavySeries(t, 120)
	closes := s.Closes()
	const length = 10

	b, err := Compute(Donchian, s, Params{Length: length})
	require.NoError(t, err)

	for i := length - 1; i < len(closes); i++ {
		hi, lo := closes[i-length+1], closes[i-length+1]
		for _, c := range closes[i-length+1 : i+1] {
			hi = math.Max(hi, c)
			lo = math.Min(lo, c)
		}
		assert.Equal(t, hi, b.Upper[i], "upper %d", i)
		assert.Equal(t, lo, b.Lower[i], "lower %d", i)
	}
}

func TestBandOrdering(t *testing.T) {
	t.Parallel()

	s := wavySeries(t, 250)

	for _, f := range Families() {
		t.Run(f.String(), func(t *testing.T) {
			b, err := Compute(f, s, DefaultParams(f))
			require.NoError(t, err)
			require.Equal(t, s.Len(), b.Len())
			require.Len(t, b.Lower, s.Len())

			for i := 0; i < b.Len(); i++ {
				if !b.Upper.Defined(i) || !b.Lower.Defined(i) {
					continue
				}
				assert.LessOrEqual(t, b.Lower[i], b.Upper[i], "index %d", i)
				if b.HasMiddle() && b.Middle.Defined(i) {
					assert.LessOrEqual(t, b.Lower[i], b.Middle[i], "index %d", i)
					assert.LessOrEqual(t, b.Middle[i], b.Upper[i], "index %d", i)
				}
			}
		})
	}
}

func TestBollingerZeroWidthCollapses(t *testing.T) {
	t.Parallel()

	b, err := Compute(Bollinger, wavySeries(t, 60), Params{Length: 20, Width: 0})
	require.NoError(t, err)

	for i := b.Warmup(); i < b.Len(); i++ {
		assert.Equal(t, b.Middle[i], b.Upper[i], "index %d", i)
		assert.Equal(t, b.Middle[i], b.Lower[i], "index %d", i)
	}
}

func TestWarmup(t *testing.T) {
	t.Parallel()

	s := wavySeries(t, 80)

	tests := []struct {
		family Family
		params Params
		warmup int
	}{
		{Ledoux, Params{}, 0},
		{Percent, Params{Length: 21, Width: 0.045}, 20},
		{Donchian, Params{Length: 20}, 19},
		{Keltner, Params{Length: 20, Width: 2}, 0},
		{Bollinger, Params{Length: 20, Width: 2}, 19},
		{Envelope, Params{Length: 15, Width: 1.5}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			b, err := Compute(tt.family, s, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.warmup, b.Warmup())

			for _, line := range [][]float64{b.Upper, b.Middle, b.Lower} {
				if line == nil {
					continue
				}
				for i := range line {
					assert.Equal(t, i >= tt.warmup, indicators.IsDefined(line[i]), "index %d", i)
				}
			}
		})
	}
}

func TestInsufficientHistory(t *testing.T) {
	t.Parallel()

	s := scenarioSeries(t)

	for _, f := range []Family{Percent, Donchian, Bollinger, Envelope} {
		b, err := Compute(f, s, Params{Length: 10, Width: 1})
		require.NoError(t, err, f.String())
		assert.Equal(t, s.Len(), b.Len())
		assert.Equal(t, s.Len(), b.Warmup(), f.String())
	}
}

func TestLedoux(t *testing.T) {
	t.Parallel()

	s := wavySeries(t, 30)
	b, err := Compute(Ledoux, s, Params{})
	require.NoError(t, err)

	assert.False(t, b.HasMiddle())
	assert.Equal(t, indicators.Series(s.Highs()), b.Upper)
	assert.Equal(t, indicators.Series(s.Lows()), b.Lower)
	assert.Equal(t, "Ledoux", b.Name())
}

func TestPercent(t *testing.T) {
	t.Parallel()

	b, err := Compute(Percent, scenarioSeries(t), Params{Length: 3, Width: 0.1})
	require.NoError(t, err)

	assert.InDelta(t, 12.0, b.Middle[2], 1e-12)
	assert.InDelta(t, 13.2, b.Upper[2], 1e-12)
	assert.InDelta(t, 12.0/1.1, b.Lower[2], 1e-12)
	assert.InDelta(t, b.Upper[5]/b.Middle[5], b.Middle[5]/b.Lower[5], 1e-12)
	assert.Equal(t, "Percent(3, 0.1)", b.Name())
}

func TestKeltner(t *testing.T) {
	t.Parallel()

	s := wavySeries(t, 60)
	b, err := Compute(Keltner, s, Params{Length: 10, Width: 2})
	require.NoError(t, err)

	c := s.Candles[0]
	assert.Equal(t, c.Close, b.Middle[0])
	assert.InDelta(t, c.Close+2*(c.High-c.Low), b.Upper[0], 1e-12)
	assert.InDelta(t, c.Close-2*(c.High-c.Low), b.Lower[0], 1e-12)

	ema, err := indicators.EMA(s.Closes(), 10)
	require.NoError(t, err)
	atr, err := indicators.ATR(s.Highs(), s.Lows(), s.Closes(), 20)
	require.NoError(t, err)
	for i := range ema {
		assert.InDelta(t, ema[i], b.Middle[i], 1e-12)
		assert.InDelta(t, ema[i]+2*atr[i], b.Upper[i], 1e-9)
		assert.InDelta(t, ema[i]-2*atr[i], b.Lower[i], 1e-9)
	}
}

func TestEnvelope(t *testing.T) {
	t.Parallel()

	s := wavySeries(t, 40)
	b, err := Compute(Envelope, s, Params{Length: 5, Width: 1.5})
	require.NoError(t, err)

	highs := s.Highs()
	smaHigh, err := indicators.SMA(highs, 5)
	require.NoError(t, err)
	stdHigh, err := indicators.RollingStd(highs, 5)
	require.NoError(t, err)

	for i := 4; i < s.Len(); i++ {
		assert.InDelta(t, smaHigh[i]+1.5*stdHigh[i], b.Upper[i], 1e-9)
		assert.InDelta(t, (b.Upper[i]+b.Lower[i])/2, b.Middle[i], 1e-12)
	}
}

func TestComputeIndependent(t *testing.T) {
	t.Parallel()

	s := wavySeries(t, 50)
	before := append([]market.Candle(nil), s.Candles...)

	a, err := Compute(Bollinger, s, DefaultParams(Bollinger))
	require.NoError(t, err)
	_, err = Compute(Keltner, s, DefaultParams(Keltner))
	require.NoError(t, err)
	again, err := Compute(Bollinger, s, DefaultParams(Bollinger))
	require.NoError(t, err)

	assert.Equal(t, before, s.Candles)
	assert.Equal(t, a.Upper, again.Upper)
}

func TestComputeErrors(t *testing.T) {
	t.Parallel()

	s := scenarioSeries(t)

	tests := []struct {
		name    string
		family  Family
		params  Params
		series  *market.Series
		wantErr error
	}{
		{"short length", Bollinger, Params{Length: 1, Width: 2}, s, ErrBadLength},
		{"negative length", Donchian, Params{Length: -3}, s, ErrBadLength},
		{"negative width", Keltner, Params{Length: 5, Width: -1}, s, ErrBadWidth},
		{"nan width", Percent, Params{Length: 5, Width: math.NaN()}, s, ErrBadWidth},
		{"unknown family", Family(42), Params{Length: 5}, s, ErrUnknownFamily},
		{"empty series", Bollinger, Params{Length: 5, Width: 2}, &market.Series{}, market.ErrEmptySeries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.family, tt.series, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeRejectsUnorderedSeries(t *testing.T) {
	t.Parallel()

	s := scenarioSeries(t)
	s.Candles[3].Time = s.Candles[1].Time

	_, err := Compute(Ledoux, s, DefaultParams(Ledoux))
	assert.ErrorIs(t, err, market.ErrUnordered)
}
