package galaxy

import "math"

// ParamSpec describes one tunable numeric parameter and its slider range.
type ParamSpec struct {
	Name    string  // Human-readable name
	Key     string  // Config key
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Step    float64 // Slider granularity
	Default float64 // Default value
	Integer bool    // Rounded to whole numbers

	get func(Params) float64
	set func(*Params, float64)
}

// Get reads the parameter from p.
func (s ParamSpec) Get(p Params) float64 {
	return s.get(p)
}

// Set writes v into p, snapping integer parameters.
func (s ParamSpec) Set(p *Params, v float64) {
	if s.Integer {
		v = math.Round(v)
	}
	s.set(p, v)
}

// Snap rounds v to the nearest step above Min.
func (s ParamSpec) Snap(v float64) float64 {
	if s.Step <= 0 {
		return v
	}
	return s.Min + math.Round((v-s.Min)/s.Step)*s.Step
}

// Specs returns the numeric parameters in display order.
func Specs() []ParamSpec {
	d := DefaultParams()
	return []ParamSpec{
		{
			Name: "Count", Key: "count", Min: 100, Max: 1_000_000, Step: 100, Default: float64(d.Count), Integer: true,
			get: func(p Params) float64 { return float64(p.Count) },
			set: func(p *Params, v float64) { p.Count = int(v) },
		},
		{
			Name: "Size", Key: "size", Min: 0.01, Max: 0.1, Step: 0.001, Default: float64(d.Size),
			get: func(p Params) float64 { return float64(p.Size) },
			set: func(p *Params, v float64) { p.Size = float32(v) },
		},
		{
			Name: "Radius", Key: "radius", Min: 1, Max: 20, Step: 0.01, Default: d.Radius,
			get: func(p Params) float64 { return p.Radius },
			set: func(p *Params, v float64) { p.Radius = v },
		},
		{
			Name: "Branches", Key: "branches", Min: 1, Max: 20, Step: 1, Default: float64(d.Branches), Integer: true,
			get: func(p Params) float64 { return float64(p.Branches) },
			set: func(p *Params, v float64) { p.Branches = int(v) },
		},
		{
			Name: "Spin", Key: "spin", Min: -5, Max: 5, Step: 0.001, Default: d.Spin,
			get: func(p Params) float64 { return p.Spin },
			set: func(p *Params, v float64) { p.Spin = v },
		},
		{
			Name: "Randomness", Key: "randomness", Min: 0, Max: 1, Step: 0.001, Default: d.Randomness,
			get: func(p Params) float64 { return p.Randomness },
			set: func(p *Params, v float64) { p.Randomness = v },
		},
		{
			Name: "Randomness Power", Key: "randomness_power", Min: 0.1, Max: 20, Step: 0.1, Default: d.RandomnessPower,
			get: func(p Params) float64 { return p.RandomnessPower },
			set: func(p *Params, v float64) { p.RandomnessPower = v },
		},
	}
}
