package market

import (
	"context"
	"time"
)

// WarmupPadding is added to every requested range so the longest lookback
// (a 20-span ATR chained through a 20-span EMA) is primed well before the
// first displayed bar.
const WarmupPadding = 182 * 24 * time.Hour

// Provider supplies daily candles for a symbol over [from, to].
type Provider interface {
	Candles(ctx context.Context, symbol string, from, to time.Time) (*Series, error)
}

// FetchRange returns the range to request so that months of display plus
// warm-up history are available: months*31 calendar days plus 182 days of
// padding, ending at end.
func FetchRange(end time.Time, months int) (from, to time.Time) {
	from = end.Add(-time.Duration(months*31)*24*time.Hour - WarmupPadding)
	return from, end
}
