// Package indicators provides the numeric kernels behind the trading bands:
// rolling mean, population standard deviation, rolling extremes, exponential
// smoothing and true range.
//
// Every kernel returns a Series aligned index-for-index with its input.
// Positions without enough history hold NaN ("no value"), never zero.
package indicators

import "math"

// Series is a sequence of values aligned with a price series. NaN marks an
// undefined position.
type Series []float64

// NaN returns a series of n undefined values.
func NaN(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// IsDefined reports whether v carries a value.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// Defined reports whether position i carries a value.
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && IsDefined(s[i])
}

// FirstDefined returns the index of the first defined value, or -1.
func (s Series) FirstDefined() int {
	for i, v := range s {
		if IsDefined(v) {
			return i
		}
	}
	return -1
}

// Map applies f element-wise; undefined inputs stay undefined.
func (s Series) Map(f func(float64) float64) Series {
	out := make(Series, len(s))
	for i, v := range s {
		if !IsDefined(v) {
			out[i] = math.NaN()
			continue
		}
		out[i] = f(v)
	}
	return out
}

// Combine applies f to aligned pairs of a and b. The result has the length of
// the shorter input; a position is undefined when either input is.
func Combine(a, b Series, f func(x, y float64) float64) Series {
	n := min(len(a), len(b))
	out := make(Series, n)
	for i := 0; i < n; i++ {
		if !IsDefined(a[i]) || !IsDefined(b[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = f(a[i], b[i])
	}
	return out
}
