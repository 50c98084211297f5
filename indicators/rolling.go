package indicators

// RollingMax returns the maximum of xs over a trailing window of period.
func RollingMax(xs []float64, period int) (Series, error) {
	return rolling(xs, period, func(a, b float64) bool { return a > b })
}

// RollingMin returns the minimum of xs over a trailing window of period.
func RollingMin(xs []float64, period int) (Series, error) {
	return rolling(xs, period, func(a, b float64) bool { return a < b })
}

func rolling(xs []float64, period int, better func(a, b float64) bool) (Series, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := NaN(len(xs))
	if len(xs) < period {
		return out, nil
	}
	for i := period - 1; i < len(xs); i++ {
		best := xs[i-period+1]
		for _, x := range xs[i-period+2 : i+1] {
			if better(x, best) {
				best = x
			}
		}
		out[i] = best
	}
	return out, nil
}
