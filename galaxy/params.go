// Package galaxy generates spiral galaxy point clouds from a parameter set.
package galaxy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned when a parameter set cannot be generated.
var ErrInvalidParameter = errors.New("invalid parameter")

// Params is the full input to generation. It is a plain value: editors hold
// their own working copy and pass a snapshot on commit.
type Params struct {
	Count           int
	Size            float32
	Radius          float64
	Branches        int
	Spin            float64 // radians of twist per unit radius
	Randomness      float64
	RandomnessPower float64 // higher = jitter concentrated near the branch line
	InsideColor     Color
	OutsideColor    Color
}

// DefaultParams returns the stock galaxy.
func DefaultParams() Params {
	return Params{
		Count:           100000,
		Size:            0.01,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 5,
		InsideColor:     MustParseHex("#ff6030"),
		OutsideColor:    MustParseHex("#1b3984"),
	}
}

// Validate reports whether the parameters can be generated at all.
// Out-of-range values that still produce finite geometry are accepted,
// matching how the sliders are allowed to overshoot.
func (p Params) Validate() error {
	if p.Count < 0 {
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidParameter, p.Count)
	}
	if p.Branches < 1 {
		return fmt.Errorf("%w: branches must be >= 1, got %d", ErrInvalidParameter, p.Branches)
	}
	if p.Radius < 0 {
		return fmt.Errorf("%w: radius must be >= 0, got %g", ErrInvalidParameter, p.Radius)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"radius", p.Radius},
		{"spin", p.Spin},
		{"randomness", p.Randomness},
		{"randomness_power", p.RandomnessPower},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParameter, f.name, f.v)
		}
	}
	return nil
}

// ValidateStrict additionally checks every field against its declared range.
func (p Params) ValidateStrict() error {
	if err := p.Validate(); err != nil {
		return err
	}
	switch {
	case p.Count < 100 || p.Count > 1_000_000:
		return fmt.Errorf("%w: count %d outside [100, 1000000]", ErrInvalidParameter, p.Count)
	case p.Size < 0.01 || p.Size > 0.1:
		return fmt.Errorf("%w: size %g outside [0.01, 0.1]", ErrInvalidParameter, p.Size)
	case p.Randomness < 0 || p.Randomness > 1:
		return fmt.Errorf("%w: randomness %g outside [0, 1]", ErrInvalidParameter, p.Randomness)
	case p.RandomnessPower <= 0:
		return fmt.Errorf("%w: randomness_power must be > 0, got %g", ErrInvalidParameter, p.RandomnessPower)
	}
	return nil
}

// Clamped returns a copy with every numeric field limited to its slider range.
func (p Params) Clamped() Params {
	for _, spec := range Specs() {
		spec.Set(&p, clamp(spec.Get(p), spec.Min, spec.Max))
	}
	p.InsideColor = p.InsideColor.Clamped()
	p.OutsideColor = p.OutsideColor.Clamped()
	return p
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
