package galaxy

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// MaxCount caps the number of points a single galaxy may hold.
const MaxCount = 1_000_000

// ErrInvalidConfiguration is matched by every parameter validation failure.
var ErrInvalidConfiguration = errors.New("invalid galaxy configuration")

// ParameterError describes one rejected field.
type ParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("galaxy %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Parameters shape a spiral galaxy.
type Parameters struct {
	Count           int     `yaml:"count"`
	Size            float32 `yaml:"size"`
	Radius          float32 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float32 `yaml:"spin"`
	Randomness      float32 `yaml:"randomness"`
	RandomnessPower float32 `yaml:"randomness_power"`
	InsideColor     Color   `yaml:"inside_color"`
	OutsideColor    Color   `yaml:"outside_color"`
}

// DefaultParameters returns the stock three-armed galaxy.
func DefaultParameters() Parameters {
	return Parameters{
		Count:           100000,
		Size:            0.01,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		InsideColor:     MustHex("#ff6030"),
		OutsideColor:    MustHex("#1b3984"),
	}
}

// Range is the editable interval of a parameter.
type Range struct {
	Min, Max, Step float32
}

func (r Range) clamp(v float32) float32 {
	return float32(math.Min(math.Max(float64(v), float64(r.Min)), float64(r.Max)))
}

// Editable ranges exposed by the configuration panel.
var (
	CountRange           = Range{Min: 100, Max: MaxCount, Step: 100}
	SizeRange            = Range{Min: 0.001, Max: 0.1, Step: 0.001}
	RadiusRange          = Range{Min: 0.01, Max: 20, Step: 0.01}
	BranchesRange        = Range{Min: 2, Max: 20, Step: 1}
	SpinRange            = Range{Min: -5, Max: 5, Step: 0.001}
	RandomnessRange      = Range{Min: 0, Max: 2, Step: 0.001}
	RandomnessPowerRange = Range{Min: 1, Max: 10, Step: 0.001}
)

// Validate reports every rule the parameters break. The returned error
// matches ErrInvalidConfiguration with errors.Is.
func (p Parameters) Validate() error {
	var err error
	fail := func(field string, value any, reason string) {
		err = multierr.Append(err, &ParameterError{Field: field, Value: value, Reason: reason})
	}

	if p.Count <= 0 {
		fail("count", p.Count, "must be positive")
	} else if p.Count > MaxCount {
		fail("count", p.Count, fmt.Sprintf("must not exceed %d", MaxCount))
	}
	if p.Branches < 2 {
		fail("branches", p.Branches, "must be at least 2")
	}

	floats := []struct {
		name  string
		value float32
		min   float32
		open  bool
	}{
		{"size", p.Size, 0, true},
		{"radius", p.Radius, 0, true},
		{"spin", p.Spin, float32(math.Inf(-1)), false},
		{"randomness", p.Randomness, 0, false},
		{"randomness_power", p.RandomnessPower, 1, false},
	}
	for _, f := range floats {
		v := float64(f.value)
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			fail(f.name, f.value, "must be finite")
		case f.open && f.value <= f.min:
			fail(f.name, f.value, "must be positive")
		case !f.open && f.value < f.min:
			fail(f.name, f.value, fmt.Sprintf("must be at least %g", f.min))
		}
	}

	colors := []struct {
		name  string
		value Color
	}{
		{"inside_color", p.InsideColor},
		{"outside_color", p.OutsideColor},
	}
	for _, c := range colors {
		for _, ch := range c.value.Array() {
			if !(ch >= 0 && ch <= 1) {
				fail(c.name, c.value, "components must lie in [0, 1]")
				break
			}
		}
	}

	return err
}

// Clamp pulls every field into its editable range. Count snaps to its step.
func (p Parameters) Clamp() Parameters {
	count := CountRange.clamp(float32(p.Count))
	p.Count = int(math.Round(float64(count/CountRange.Step))) * int(CountRange.Step)
	p.Size = SizeRange.clamp(p.Size)
	p.Radius = RadiusRange.clamp(p.Radius)
	p.Branches = int(BranchesRange.clamp(float32(p.Branches)))
	p.Spin = SpinRange.clamp(p.Spin)
	p.Randomness = RandomnessRange.clamp(p.Randomness)
	p.RandomnessPower = RandomnessPowerRange.clamp(p.RandomnessPower)
	return p
}
