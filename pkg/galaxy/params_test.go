package galaxy

import (
	"errors"
	gomath "math"
	"testing"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

func TestDefaultParametersValid(t *testing.T) {
	if err := DefaultParameters().Validate(); err != nil {
		t.Fatalf("DefaultParameters().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Parameters)
		field  string
	}{
		{"zero count", func(p *Parameters) { p.Count = 0 }, "count"},
		{"negative count", func(p *Parameters) { p.Count = -10 }, "count"},
		{"count above max", func(p *Parameters) { p.Count = MaxCount + 1 }, "count"},
		{"zero radius", func(p *Parameters) { p.Radius = 0 }, "radius"},
		{"zero size", func(p *Parameters) { p.Size = 0 }, "size"},
		{"one branch", func(p *Parameters) { p.Branches = 1 }, "branches"},
		{"negative randomness", func(p *Parameters) { p.Randomness = -0.1 }, "randomness"},
		{"power below one", func(p *Parameters) { p.RandomnessPower = 0.5 }, "randomness_power"},
		{"nan spin", func(p *Parameters) { p.Spin = float32(gomath.NaN()) }, "spin"},
		{"inf radius", func(p *Parameters) { p.Radius = float32(gomath.Inf(1)) }, "radius"},
		{"colour out of range", func(p *Parameters) { p.InsideColor.G = 1.5 }, "inside_color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.modify(&p)

			err := p.Validate()
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfiguration", err)
			}
			var pe *ParameterError
			if !errors.As(err, &pe) || pe.Field != tt.field {
				t.Errorf("Validate() = %v, want field %q", err, tt.field)
			}
		})
	}
}

func TestValidateNegativeSpinAllowed(t *testing.T) {
	p := DefaultParameters()
	p.Spin = -3
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for negative spin", err)
	}
}

func TestValidateCollectsAll(t *testing.T) {
	p := DefaultParameters()
	p.Count = 0
	p.Radius = -1
	p.Branches = 0

	errs := multierr.Errors(p.Validate())
	if len(errs) != 3 {
		t.Fatalf("Validate() reported %d errors, want 3: %v", len(errs), errs)
	}
}

func TestClamp(t *testing.T) {
	p := Parameters{
		Count:           12345678,
		Size:            5,
		Radius:          -1,
		Branches:        40,
		Spin:            -9,
		Randomness:      3,
		RandomnessPower: 0,
	}
	got := p.Clamp()

	if got.Count != MaxCount {
		t.Errorf("Count = %d, want %d", got.Count, MaxCount)
	}
	if got.Size != SizeRange.Max || got.Radius != RadiusRange.Min {
		t.Errorf("Size/Radius = %v/%v", got.Size, got.Radius)
	}
	if got.Branches != 20 || got.Spin != -5 || got.Randomness != 2 || got.RandomnessPower != 1 {
		t.Errorf("Clamp() = %+v", got)
	}

	p = DefaultParameters()
	p.Count = 1049
	if got := p.Clamp().Count; got != 1000 {
		t.Errorf("Count snapped to %d, want 1000", got)
	}
}

func TestParametersYAML(t *testing.T) {
	src := []byte(`
count: 2000
radius: 3
branches: 4
randomness_power: 2.5
inside_color: "#ffffff"
outside_color: "#000000"
`)
	p := DefaultParameters()
	if err := yaml.Unmarshal(src, &p); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if p.Count != 2000 || p.Branches != 4 || p.RandomnessPower != 2.5 {
		t.Errorf("decoded %+v", p)
	}
	if p.InsideColor != (Color{1, 1, 1}) || p.OutsideColor != (Color{}) {
		t.Errorf("colours = %v / %v", p.InsideColor, p.OutsideColor)
	}
	if p.Size != 0.01 {
		t.Errorf("Size = %v, want default 0.01 kept", p.Size)
	}

	out, err := yaml.Marshal(p)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var back Parameters
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-decode error = %v", err)
	}
	if back.InsideColor != p.InsideColor {
		t.Errorf("inside colour after round trip = %v", back.InsideColor)
	}
}

func TestParametersYAMLBadColor(t *testing.T) {
	var p Parameters
	if err := yaml.Unmarshal([]byte(`inside_color: "chartreuse"`), &p); err == nil {
		t.Error("expected error for malformed colour")
	}
}
