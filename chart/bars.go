package chart

import (
	"math"

	"github.com/rustyeddy/bands/bands"
	"github.com/rustyeddy/bands/market"
)

// DefaultBarWidth is used when a non-positive width is requested.
const DefaultBarWidth = 1.2

// Segment is a vertical stroke from From to To.
type Segment struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Bar is one Bollinger Bar: a body between open and close, green when the
// close is at or above the open and red otherwise, plus blue wicks out to
// the high and low. Index is relative to the window start.
type Bar struct {
	Index int     `json:"index"`
	Body  Segment `json:"body"`
	Upper Segment `json:"upper"`
	Lower Segment `json:"lower"`
}

// NewBar builds the three segments for one candle.
func NewBar(idx int, c market.Candle, width float64) Bar {
	if width <= 0 {
		width = DefaultBarWidth
	}

	top := math.Max(c.Open, c.Close)
	bottom := math.Min(c.Open, c.Close)
	body := Segment{From: c.Close, To: c.Open, Color: Green, Width: width}
	if !c.Bullish() {
		body = Segment{From: c.Open, To: c.Close, Color: Red, Width: width}
	}

	return Bar{
		Index: idx,
		Body:  body,
		Upper: Segment{From: c.High, To: top, Color: Blue, Width: width},
		Lower: Segment{From: bottom, To: c.Low, Color: Blue, Width: width},
	}
}

// Bars renders the candles inside w.
func Bars(s *market.Series, w bands.Window, width float64) []Bar {
	out := make([]Bar, 0, w.Len())
	it := s.Tail(w.Len()).Iterator()
	for it.Next() {
		out = append(out, NewBar(it.Index(), it.Candle(), width))
	}
	return out
}
