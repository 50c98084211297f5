package bands

import (
	"fmt"

	"github.com/rustyeddy/bands/market"
)

// Request selects which bands to compute over a series and how much of it
// to expose.
type Request struct {
	Families []Family
	// Params overrides DefaultParams per family.
	Params map[Family]Params
	// IndicatorFamily, when set, derives %b and BandWidth from that band.
	// It is computed even if absent from Families.
	IndicatorFamily Family
	Months          int
}

func (r Request) params(f Family) Params {
	if p, ok := r.Params[f]; ok {
		return p
	}
	return DefaultParams(f)
}

// Validate checks the request before any computation.
func (r Request) Validate() error {
	if r.Months <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadMonths, r.Months)
	}
	if r.IndicatorFamily != 0 {
		if !r.IndicatorFamily.Valid() {
			return fmt.Errorf("indicator: %w: %d", ErrUnknownFamily, int(r.IndicatorFamily))
		}
		if !r.IndicatorFamily.HasMiddle() {
			return fmt.Errorf("indicator on %s: %w", r.IndicatorFamily, ErrNoMiddle)
		}
	}
	for _, f := range r.families() {
		if !f.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
		}
		if err := r.params(f).Validate(f); err != nil {
			return err
		}
	}
	return nil
}

func (r Request) families() []Family {
	out := append([]Family(nil), r.Families...)
	if r.IndicatorFamily == 0 {
		return out
	}
	for _, f := range out {
		if f == r.IndicatorFamily {
			return out
		}
	}
	return append(out, r.IndicatorFamily)
}

// Analysis is the result of one Analyze call. Bands and indicators span the
// full series; Window marks the part to display.
type Analysis struct {
	Series     *market.Series
	Families   []Family
	Bands      map[Family]Band
	Indicators *IndicatorSeries
	Months     int
	Window     Window
}

// Band returns the computed band for f.
func (a *Analysis) Band(f Family) (Band, bool) {
	b, ok := a.Bands[f]
	return b, ok
}

// Analyze validates s and r, then computes every requested band, the
// optional indicators and the display window. Each family is computed
// independently of the others.
func Analyze(s *market.Series, r Request) (*Analysis, error) {
	if s == nil {
		return nil, fmt.Errorf("series: %w", market.ErrEmptySeries)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("series %s: %w", s.Symbol, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	families := r.families()
	a := &Analysis{
		Series:   s,
		Families: families,
		Bands:    make(map[Family]Band, len(families)),
		Months:   r.Months,
	}
	for _, f := range families {
		b, err := Compute(f, s, r.params(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		a.Bands[f] = b
	}

	if r.IndicatorFamily != 0 {
		ind, err := Indicators(a.Bands[r.IndicatorFamily], s.Closes())
		if err != nil {
			return nil, err
		}
		a.Indicators = &ind
	}

	w, err := SelectWindow(s.Len(), r.Months)
	if err != nil {
		return nil, err
	}
	a.Window = w
	return a, nil
}
