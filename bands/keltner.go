package bands

import (
	"github.com/rustyeddy/bands/indicators"
	"github.com/rustyeddy/bands/market"
)

// keltner centres on an EMA of the close and offsets by a multiple of the
// average true range. Both averages are defined from the first bar.
func keltner(s *market.Series, p Params) (Band, error) {
	middle, err := indicators.EMA(s.Closes(), p.Length)
	if err != nil {
		return Band{}, err
	}
	atr, err := indicators.ATR(s.Highs(), s.Lows(), s.Closes(), indicators.DefaultATRSpan)
	if err != nil {
		return Band{}, err
	}

	return Band{
		Family: Keltner,
		Params: p,
		Upper:  indicators.Combine(middle, atr, func(m, a float64) float64 { return m + p.Width*a }),
		Middle: middle,
		Lower:  indicators.Combine(middle, atr, func(m, a float64) float64 { return m - p.Width*a }),
	}, nil
}
