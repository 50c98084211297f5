package bands

import (
	"github.com/rustyeddy/bands/indicators"
	"github.com/rustyeddy/bands/market"
)

// percent places the band a fixed fraction above and below the moving
// average. The lower line divides by 1+w so the two are symmetric in
// log-price.
func percent(s *market.Series, p Params) (Band, error) {
	middle, err := indicators.SMA(s.Closes(), p.Length)
	if err != nil {
		return Band{}, err
	}

	factor := 1 + p.Width
	return Band{
		Family: Percent,
		Params: p,
		Upper:  middle.Map(func(m float64) float64 { return m * factor }),
		Middle: middle,
		Lower:  middle.Map(func(m float64) float64 { return m / factor }),
	}, nil
}
