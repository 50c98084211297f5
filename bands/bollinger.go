package bands

import (
	"github.com/rustyeddy/bands/indicators"
	"github.com/rustyeddy/bands/market"
)

// bollinger offsets the moving average of the close by width population
// standard deviations.
func bollinger(s *market.Series, p Params) (Band, error) {
	middle, upper, lower, err := deviationBand(s.Closes(), p)
	if err != nil {
		return Band{}, err
	}
	return Band{
		Family: Bollinger,
		Params: p,
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
	}, nil
}

// envelope builds the upper line from the highs and the lower line from the
// lows; the middle is their midpoint.
func envelope(s *market.Series, p Params) (Band, error) {
	_, upper, _, err := deviationBand(s.Highs(), p)
	if err != nil {
		return Band{}, err
	}
	_, _, lower, err := deviationBand(s.Lows(), p)
	if err != nil {
		return Band{}, err
	}

	return Band{
		Family: Envelope,
		Params: p,
		Upper:  upper,
		Middle: indicators.Combine(upper, lower, func(u, l float64) float64 { return (u + l) / 2 }),
		Lower:  lower,
	}, nil
}

func deviationBand(xs []float64, p Params) (middle, upper, lower indicators.Series, err error) {
	if middle, err = indicators.SMA(xs, p.Length); err != nil {
		return nil, nil, nil, err
	}
	std, err := indicators.RollingStd(xs, p.Length)
	if err != nil {
		return nil, nil, nil, err
	}

	upper = indicators.Combine(middle, std, func(m, sd float64) float64 { return m + p.Width*sd })
	lower = indicators.Combine(middle, std, func(m, sd float64) float64 { return m - p.Width*sd })
	return middle, upper, lower, nil
}
