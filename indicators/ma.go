package indicators

import (
	"fmt"
	"math"
)

func checkPeriod(period int) error {
	if period <= 0 {
		return fmt.Errorf("period must be positive, got %d", period)
	}
	return nil
}

// SMA returns the simple moving average of xs over period. Index i is
// undefined for i < period-1 and the arithmetic mean of xs[i-period+1..i]
// otherwise. A period longer than xs yields an all-undefined series.
func SMA(xs []float64, period int) (Series, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := NaN(len(xs))
	if len(xs) < period {
		return out, nil
	}
	for i := period - 1; i < len(xs); i++ {
		out[i] = mean(xs[i-period+1 : i+1])
	}
	return out, nil
}

// RollingStd returns the population standard deviation (divisor period, not
// period-1) of xs over a trailing window.
func RollingStd(xs []float64, period int) (Series, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := NaN(len(xs))
	if len(xs) < period {
		return out, nil
	}
	for i := period - 1; i < len(xs); i++ {
		window := xs[i-period+1 : i+1]
		m := mean(window)

		ss := 0.0
		for _, x := range window {
			d := x - m
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period))
	}
	return out, nil
}

// mean sums each window afresh; a running total drifts over long series.
func mean(window []float64) float64 {
	sum := 0.0
	for _, x := range window {
		sum += x
	}
	return sum / float64(len(window))
}

// Alpha is the smoothing factor for an exponential average with the given
// span.
func Alpha(span float64) float64 {
	return 2.0 / (span + 1.0)
}

// EMA returns the exponential moving average of xs with smoothing factor
// 2/(span+1). Early values are the decreasing-weight average over the history
// available so far:
//
//	EMA[i] = sum_k (1-a)^k * xs[i-k] / sum_k (1-a)^k,  k = 0..i
//
// so the series is defined from index 0 with no warm-up gap. Undefined
// inputs are skipped but keep decaying the weights of older observations.
func EMA(xs []float64, span int) (Series, error) {
	if span < 1 {
		return nil, fmt.Errorf("span must be at least 1, got %d", span)
	}
	return ema(xs, Alpha(float64(span))), nil
}

func ema(xs []float64, alpha float64) Series {
	out := NaN(len(xs))
	decay := 1 - alpha

	var num, den float64
	for i, x := range xs {
		num *= decay
		den *= decay
		if IsDefined(x) {
			num += x
			den++
		}
		if den > 0 {
			out[i] = num / den
		}
	}
	return out
}
