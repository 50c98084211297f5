package bands

import (
	"fmt"

	"github.com/rustyeddy/bands/indicators"
	"github.com/rustyeddy/bands/market"
)

// Band is one family's output, aligned index-for-index with the series it
// was computed from. Middle is nil for families without a centre line.
type Band struct {
	Family Family
	Params Params
	Upper  indicators.Series
	Middle indicators.Series
	Lower  indicators.Series
}

func (b Band) HasMiddle() bool {
	return b.Middle != nil
}

func (b Band) Len() int {
	return len(b.Upper)
}

func (b Band) Name() string {
	if b.Family == Ledoux {
		return b.Family.String()
	}
	if b.Family == Donchian {
		return fmt.Sprintf("%s(%d)", b.Family, b.Params.Length)
	}
	return b.Family.String() + b.Params.String()
}

// Warmup is the number of leading positions left undefined.
func (b Band) Warmup() int {
	if i := b.Upper.FirstDefined(); i >= 0 {
		return i
	}
	return b.Len()
}

// Compute runs family f over s. The series is validated first; invalid
// parameters or a malformed series fail before any computation.
func Compute(f Family, s *market.Series, p Params) (Band, error) {
	if err := s.Validate(); err != nil {
		return Band{}, err
	}
	if err := p.Validate(f); err != nil {
		return Band{}, err
	}

	switch f {
	case Ledoux:
		return ledoux(s), nil
	case Percent:
		return percent(s, p)
	case Donchian:
		return donchian(s, p)
	case Keltner:
		return keltner(s, p)
	case Bollinger:
		return bollinger(s, p)
	case Envelope:
		return envelope(s, p)
	}
	return Band{}, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
}
