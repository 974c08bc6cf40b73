package galaxy

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().ValidateStrict(); err != nil {
		t.Errorf("defaults should be strictly valid: %v", err)
	}
}

func TestValidateStrict(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"count too small", func(p *Params) { p.Count = 99 }},
		{"count too large", func(p *Params) { p.Count = 1_000_001 }},
		{"size too large", func(p *Params) { p.Size = 0.2 }},
		{"randomness above one", func(p *Params) { p.Randomness = 1.5 }},
		{"power zero", func(p *Params) { p.RandomnessPower = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err != nil {
				t.Errorf("permissive validation should accept, got %v", err)
			}
			if err := p.ValidateStrict(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestClamped(t *testing.T) {
	p := DefaultParams()
	p.Count = 5
	p.Branches = 40
	p.Randomness = -0.5
	p.InsideColor = Color{R: 1.5, G: -0.2, B: 0.5}

	c := p.Clamped()
	if c.Count != 100 {
		t.Errorf("expected count clamped to 100, got %d", c.Count)
	}
	if c.Branches != 20 {
		t.Errorf("expected branches clamped to 20, got %d", c.Branches)
	}
	if c.Randomness != 0 {
		t.Errorf("expected randomness clamped to 0, got %f", c.Randomness)
	}
	if c.InsideColor != (Color{R: 1, G: 0, B: 0.5}) {
		t.Errorf("expected clamped color, got %+v", c.InsideColor)
	}
	if err := c.ValidateStrict(); err != nil {
		t.Errorf("clamped params should be strictly valid: %v", err)
	}
}

func TestSpecSetRoundsIntegers(t *testing.T) {
	p := DefaultParams()
	for _, spec := range Specs() {
		if spec.Key != "branches" {
			continue
		}
		spec.Set(&p, 6.6)
		if p.Branches != 7 {
			t.Errorf("expected branches 7, got %d", p.Branches)
		}
		if got := spec.Get(p); got != 7 {
			t.Errorf("expected Get to return 7, got %f", got)
		}
	}
}

func TestSpecDefaultsMatchDefaultParams(t *testing.T) {
	d := DefaultParams()
	for _, spec := range Specs() {
		if math.Abs(spec.Get(d)-spec.Default) > 1e-9 {
			t.Errorf("%s: default %f does not match DefaultParams %f", spec.Name, spec.Default, spec.Get(d))
		}
	}
}

func TestSnap(t *testing.T) {
	spec := ParamSpec{Min: 0.1, Max: 20, Step: 0.1}
	if got := spec.Snap(5.04); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("expected 5.0, got %f", got)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff6030")
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 1 || math.Abs(c.G-0x60/255.0) > 1e-9 || math.Abs(c.B-0x30/255.0) > 1e-9 {
		t.Errorf("unexpected color %+v", c)
	}
	if c.Hex() != "#ff6030" {
		t.Errorf("expected #ff6030, got %s", c.Hex())
	}
	if _, err := ParseHex("not a color"); err == nil {
		t.Error("expected error for malformed color")
	}
}
