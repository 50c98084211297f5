package bands

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/bands/indicators"
)

var (
	ErrNoMiddle       = errors.New("band has no middle line")
	ErrLengthMismatch = errors.New("series lengths differ")
)

// IndicatorSeries holds the %b and BandWidth oscillators for one band.
type IndicatorSeries struct {
	Family    Family
	PercentB  indicators.Series
	BandWidth indicators.Series
}

// PercentB is the position of close within the band: 0 at the lower line,
// 1 at the upper. Undefined when any input is undefined or the band has
// zero width.
func PercentB(close, upper, lower float64) float64 {
	span := upper - lower
	if !defined(close, upper, lower) || span == 0 {
		return math.NaN()
	}
	return (close - lower) / span
}

// BandWidth is the band's span relative to its middle line. Like PercentB it
// is undefined where the band has zero width, and also where middle is zero.
// The sign of middle is not checked; inputs are assumed to be positive
// prices.
func BandWidth(upper, middle, lower float64) float64 {
	if !defined(upper, middle, lower) || middle == 0 || upper == lower {
		return math.NaN()
	}
	return (upper - lower) / middle
}

func defined(vs ...float64) bool {
	for _, v := range vs {
		if !indicators.IsDefined(v) {
			return false
		}
	}
	return true
}

// Indicators derives %b and BandWidth from b and the closes it was computed
// from. Bands without a middle line (Ledoux) are not supported.
func Indicators(b Band, closes []float64) (IndicatorSeries, error) {
	if !b.HasMiddle() {
		return IndicatorSeries{}, fmt.Errorf("%s: %w", b.Family, ErrNoMiddle)
	}
	n := len(closes)
	if b.Len() != n || len(b.Middle) != n || len(b.Lower) != n {
		return IndicatorSeries{}, fmt.Errorf("%s: band %d vs closes %d: %w",
			b.Family, b.Len(), n, ErrLengthMismatch)
	}

	out := IndicatorSeries{
		Family:    b.Family,
		PercentB:  make(indicators.Series, n),
		BandWidth: make(indicators.Series, n),
	}
	for i := range closes {
		out.PercentB[i] = PercentB(closes[i], b.Upper[i], b.Lower[i])
		out.BandWidth[i] = BandWidth(b.Upper[i], b.Middle[i], b.Lower[i])
	}
	return out, nil
}
