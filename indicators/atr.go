package indicators

import (
	"fmt"
	"math"
)

// DefaultATRSpan is the smoothing span used for the average true range.
const DefaultATRSpan = 20

// TrueRange returns the per-bar true range:
//
//	max(high-low, |high-prevClose|, |low-prevClose|)
//
// The first bar has no previous close and uses high-low alone.
func TrueRange(high, low, closes []float64) (Series, error) {
	if len(high) != len(low) || len(high) != len(closes) {
		return nil, fmt.Errorf("true range: mismatched lengths high=%d low=%d close=%d",
			len(high), len(low), len(closes))
	}

	out := make(Series, len(high))
	for i := range high {
		out[i] = high[i] - low[i]
		if i == 0 {
			continue
		}
		prev := closes[i-1]
		out[i] = math.Max(out[i], math.Max(math.Abs(high[i]-prev), math.Abs(low[i]-prev)))
	}
	return out, nil
}

// ATR returns the average true range: the EMA of the true range with the
// given span. Like EMA it is defined from the first bar.
func ATR(high, low, closes []float64, span int) (Series, error) {
	tr, err := TrueRange(high, low, closes)
	if err != nil {
		return nil, err
	}
	return EMA(tr, span)
}
