package bands

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBadLength = errors.New("length must be at least 2")
	ErrBadWidth  = errors.New("width must be finite and non-negative")
)

// Params are the per-family settings. Ledoux ignores both fields and
// Donchian ignores Width.
type Params struct {
	Length int     `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
}

func (p Params) String() string {
	return fmt.Sprintf("(%d, %g)", p.Length, p.Width)
}

// DefaultParams returns the customary settings for a family.
func DefaultParams(f Family) Params {
	switch f {
	case Percent:
		return Params{Length: 21, Width: 0.045}
	case Donchian:
		return Params{Length: 20}
	case Keltner:
		return Params{Length: 20, Width: 2}
	case Bollinger:
		return Params{Length: 20, Width: 2}
	case Envelope:
		return Params{Length: 20, Width: 1.5}
	}
	return Params{}
}

// Validate checks p against what family f reads.
func (p Params) Validate(f Family) error {
	switch f {
	case Ledoux:
		return nil
	case Donchian:
		return p.validateLength(f)
	case Percent, Keltner, Bollinger, Envelope:
		if err := p.validateLength(f); err != nil {
			return err
		}
		if math.IsNaN(p.Width) || math.IsInf(p.Width, 0) || p.Width < 0 {
			return fmt.Errorf("%s width %v: %w", f, p.Width, ErrBadWidth)
		}
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
}

func (p Params) validateLength(f Family) error {
	if p.Length < 2 {
		return fmt.Errorf("%s length %d: %w", f, p.Length, ErrBadLength)
	}
	return nil
}
