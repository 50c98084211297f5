package bands

import (
	"errors"
	"fmt"
	"time"
)

const (
	// TradingDaysPerMonth approximates the trading sessions in a month.
	TradingDaysPerMonth = 21

	// TickLayout renders tick labels as DD-Mon-YY.
	TickLayout = "02-Jan-06"
)

var ErrBadMonths = errors.New("months must be positive")

// Window is the trailing slice [Start, End) of a series shown for output.
// It never affects what was calculated.
type Window struct {
	Start int
	End   int
}

// SelectWindow returns the last months*21 rows of an n-row series, clamped
// to n.
func SelectWindow(n, months int) (Window, error) {
	if months <= 0 {
		return Window{}, fmt.Errorf("%w: got %d", ErrBadMonths, months)
	}
	size := min(months*TradingDaysPerMonth, n)
	return Window{Start: n - size, End: n}, nil
}

func (w Window) Len() int {
	return w.End - w.Start
}

// Slice returns the window's portion of any series aligned with the input.
func Slice[T any](w Window, xs []T) []T {
	if w.End > len(xs) {
		return nil
	}
	return xs[w.Start:w.End]
}

// Tick is an axis label at a position within the window.
type Tick struct {
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
}

// Ticks labels every 21st row of the window, starting at its first row.
// Index is relative to the window start.
func (w Window) Ticks(times []time.Time) []Tick {
	dates := Slice(w, times)
	ticks := make([]Tick, 0, len(dates)/TradingDaysPerMonth+1)
	for i := 0; i < len(dates); i += TradingDaysPerMonth {
		ticks = append(ticks, Tick{
			Index: i,
			Time:  dates[i],
			Label: dates[i].Format(TickLayout),
		})
	}
	return ticks
}
