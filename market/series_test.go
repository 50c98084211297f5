package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(i int) time.Time {
	return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func createTestCandles() []Candle {
	return []Candle{
		{Time: day(0), Open: 100, High: 105, Low: 99, Close: 102},
		{Time: day(1), Open: 102, High: 107, Low: 101, Close: 105},
		{Time: day(2), Open: 105, High: 108, Low: 104, Close: 106},
		{Time: day(3), Open: 106, High: 110, Low: 105, Close: 104},
	}
}

func TestNewSeries(t *testing.T) {
	s, err := NewSeries("SPY", createTestCandles())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []float64{102, 105, 106, 104}, s.Closes())
	assert.Equal(t, []float64{105, 107, 108, 110}, s.Highs())
	assert.Equal(t, []float64{99, 101, 104, 105}, s.Lows())
	assert.Equal(t, []float64{100, 102, 105, 106}, s.Opens())
	assert.Equal(t, day(0), s.Start())
	assert.Equal(t, day(3), s.End())
	assert.Len(t, s.Times(), 4)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]Candle) []Candle
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c []Candle) []Candle { return c },
		},
		{
			name:    "empty",
			mutate:  func(c []Candle) []Candle { return nil },
			wantErr: ErrEmptySeries,
		},
		{
			name: "duplicate date",
			mutate: func(c []Candle) []Candle {
				c[2].Time = c[1].Time
				return c
			},
			wantErr: ErrUnordered,
		},
		{
			name: "out of order",
			mutate: func(c []Candle) []Candle {
				c[0], c[1] = c[1], c[0]
				return c
			},
			wantErr: ErrUnordered,
		},
		{
			name: "missing date",
			mutate: func(c []Candle) []Candle {
				c[0].Time = time.Time{}
				return c
			},
			wantErr: ErrUnordered,
		},
		{
			name: "negative price",
			mutate: func(c []Candle) []Candle {
				c[1].Low = -1
				return c
			},
			wantErr: ErrBadPrice,
		},
		{
			name: "high below low",
			mutate: func(c []Candle) []Candle {
				c[2].High = 100
				return c
			},
			wantErr: ErrBadPrice,
		},
		{
			name: "nan close",
			mutate: func(c []Candle) []Candle {
				c[3].Close = math.NaN()
				return c
			},
			wantErr: ErrBadPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Series{Symbol: "SPY", Candles: tt.mutate(createTestCandles())}
			err := s.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTail(t *testing.T) {
	s, err := NewSeries("SPY", createTestCandles())
	require.NoError(t, err)

	tail := s.Tail(2)
	assert.Equal(t, 2, tail.Len())
	assert.Equal(t, day(2), tail.Start())
	assert.Equal(t, "SPY", tail.Symbol)

	assert.Equal(t, 4, s.Tail(10).Len())
	assert.Equal(t, 0, s.Tail(-1).Len())
}

func TestIterator(t *testing.T) {
	s, err := NewSeries("SPY", createTestCandles())
	require.NoError(t, err)

	it := s.Iterator()
	var closes []float64
	for it.Next() {
		closes = append(closes, it.Candle().Close)
		assert.Equal(t, day(it.Index()), it.Time())
	}
	assert.Equal(t, s.Closes(), closes)
}

func TestBullish(t *testing.T) {
	assert.True(t, Candle{Open: 1, Close: 1}.Bullish())
	assert.True(t, Candle{Open: 1, Close: 2}.Bullish())
	assert.False(t, Candle{Open: 2, Close: 1}.Bullish())
}

func TestFetchRange(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	from, to := FetchRange(end, 12)

	assert.Equal(t, end, to)
	assert.Equal(t, end.AddDate(0, 0, -(12*31+182)), from)
}
