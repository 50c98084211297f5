package market

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptySeries = errors.New("empty price series")
	ErrUnordered   = errors.New("dates must be strictly increasing")
	ErrBadPrice    = errors.New("prices must be finite and non-negative")
)

// Series holds the canonical daily OHLC history of one symbol, ordered by
// date with one row per trading day. Calculations work on index position
// only; gaps in the calendar are neither assumed nor filled.
type Series struct {
	Symbol  string
	Candles []Candle
}

// NewSeries builds a series and validates it.
func NewSeries(symbol string, candles []Candle) (*Series, error) {
	s := &Series{Symbol: symbol, Candles: candles}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the structural invariants every calculator relies on.
func (s *Series) Validate() error {
	if s == nil || len(s.Candles) == 0 {
		return ErrEmptySeries
	}
	for i, c := range s.Candles {
		if c.Time.IsZero() {
			return fmt.Errorf("row %d: missing date: %w", i, ErrUnordered)
		}
		if !c.valid() {
			return fmt.Errorf("row %d (%s): %w", i, c.Time.Format(time.DateOnly), ErrBadPrice)
		}
		if c.High < c.Low {
			return fmt.Errorf("row %d (%s): high %v below low %v: %w", i,
				c.Time.Format(time.DateOnly), c.High, c.Low, ErrBadPrice)
		}
		if i > 0 && !c.Time.After(s.Candles[i-1].Time) {
			return fmt.Errorf("row %d (%s) follows %s: %w", i,
				c.Time.Format(time.DateOnly),
				s.Candles[i-1].Time.Format(time.DateOnly), ErrUnordered)
		}
	}
	return nil
}

func (s *Series) Len() int {
	return len(s.Candles)
}

func (s *Series) Opens() []float64 {
	return s.column(func(c Candle) float64 { return c.Open })
}

func (s *Series) Highs() []float64 {
	return s.column(func(c Candle) float64 { return c.High })
}

func (s *Series) Lows() []float64 {
	return s.column(func(c Candle) float64 { return c.Low })
}

func (s *Series) Closes() []float64 {
	return s.column(func(c Candle) float64 { return c.Close })
}

func (s *Series) Times() []time.Time {
	out := make([]time.Time, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Time
	}
	return out
}

func (s *Series) column(get func(Candle) float64) []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = get(c)
	}
	return out
}

// Start and End return the first and last dates, or the zero time for an
// empty series.
func (s *Series) Start() time.Time {
	if len(s.Candles) == 0 {
		return time.Time{}
	}
	return s.Candles[0].Time
}

func (s *Series) End() time.Time {
	if len(s.Candles) == 0 {
		return time.Time{}
	}
	return s.Candles[len(s.Candles)-1].Time
}

// Tail returns a series sharing the last n candles. n larger than the series
// returns the whole series.
func (s *Series) Tail(n int) *Series {
	if n < 0 {
		n = 0
	}
	if n > len(s.Candles) {
		n = len(s.Candles)
	}
	return &Series{Symbol: s.Symbol, Candles: s.Candles[len(s.Candles)-n:]}
}

type Iterator struct {
	s   *Series
	idx int
}

func (s *Series) Iterator() *Iterator {
	return &Iterator{
		s:   s,
		idx: -1,
	}
}

func (it *Iterator) Next() bool {
	it.idx++
	return it.idx < len(it.s.Candles)
}

func (it *Iterator) Candle() Candle {
	return it.s.Candles[it.idx]
}

func (it *Iterator) Index() int {
	return it.idx
}

func (it *Iterator) Time() time.Time {
	return it.s.Candles[it.idx].Time
}
