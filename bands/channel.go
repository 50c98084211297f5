package bands

import (
	"github.com/rustyeddy/bands/indicators"
	"github.com/rustyeddy/bands/market"
)

// ledoux uses each bar's own high and low as the band.
func ledoux(s *market.Series) Band {
	return Band{
		Family: Ledoux,
		Upper:  s.Highs(),
		Lower:  s.Lows(),
	}
}

// donchian tracks the highest and lowest close over the trailing window.
func donchian(s *market.Series, p Params) (Band, error) {
	closes := s.Closes()

	upper, err := indicators.RollingMax(closes, p.Length)
	if err != nil {
		return Band{}, err
	}
	lower, err := indicators.RollingMin(closes, p.Length)
	if err != nil {
		return Band{}, err
	}
	return Band{
		Family: Donchian,
		Params: Params{Length: p.Length},
		Upper:  upper,
		Lower:  lower,
	}, nil
}
