// Package bands computes trading bands (upper/middle/lower envelopes around
// a daily price series) and the %b and BandWidth indicators derived from
// them.
package bands

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFamily = errors.New("unknown band family")

// Family enumerates the supported band definitions.
type Family int

const (
	Ledoux Family = iota + 1
	Percent
	Donchian
	Keltner
	Bollinger
	Envelope
)

// Families returns every family in display order.
func Families() []Family {
	return []Family{Ledoux, Percent, Donchian, Keltner, Bollinger, Envelope}
}

func (f Family) String() string {
	switch f {
	case Ledoux:
		return "Ledoux"
	case Percent:
		return "Percent"
	case Donchian:
		return "Donchian"
	case Keltner:
		return "Keltner"
	case Bollinger:
		return "Bollinger"
	case Envelope:
		return "Envelope"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

func (f Family) Valid() bool {
	return f >= Ledoux && f <= Envelope
}

// HasMiddle reports whether the family produces a middle line, which %b
// and BandWidth need.
func (f Family) HasMiddle() bool {
	return f != Ledoux && f != Donchian
}

// ParseFamily maps a case-insensitive name to its family. "Envelopes" and
// "BollingerEnvelope" are accepted for Envelope.
func ParseFamily(s string) (Family, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "envelopes", "bollingerenvelope", "bollinger-envelope", "bollinger_envelope":
		return Envelope, nil
	}
	for _, f := range Families() {
		if strings.ToLower(f.String()) == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// ParseFamilies parses a list of names, rejecting duplicates.
func ParseFamilies(names []string) ([]Family, error) {
	seen := make(map[Family]bool, len(names))
	out := make([]Family, 0, len(names))
	for _, n := range names {
		f, err := ParseFamily(n)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			return nil, fmt.Errorf("duplicate band family %s", f)
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(b []byte) error {
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
