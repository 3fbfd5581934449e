package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/starscroll/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestAttenuation(t *testing.T) {
	l := Default().Point
	tests := []struct {
		d    float32
		want float32
	}{
		{0, 100}, // clamped denominator
		{1, 1},   // window is ~1 close to the light
		{50, 0},  // cut off at range
		{80, 0},  // beyond range
		{25, (1 - 0.0625) * (1 - 0.0625) / 625},
	}
	for _, tt := range tests {
		got := l.Attenuation(tt.d)
		if tt.d == 1 {
			if gomath.Abs(float64(got-tt.want)) > 1e-3 {
				t.Errorf("Attenuation(%g) = %g, want ~%g", tt.d, got, tt.want)
			}
			continue
		}
		if !near(got, tt.want) {
			t.Errorf("Attenuation(%g) = %g, want %g", tt.d, got, tt.want)
		}
	}
}

func TestUnlimitedRange(t *testing.T) {
	l := PointLight{Intensity: 1}
	if got := l.Attenuation(1000); !near(got, 1e-6) {
		t.Errorf("Attenuation(1000) = %g", got)
	}
}

func TestShade(t *testing.T) {
	s := Default()
	white := [3]float32{1, 1, 1}

	// Facing away: ambient only.
	back := s.Shade(white, math.V3(0, 0, 2), math.V3(0, 0, 1))
	if !near(back[0], 0.3) {
		t.Errorf("back-facing = %v, want ambient 0.3", back)
	}

	// Facing the light at distance 2: ambient + 10 * 1/4 * window.
	front := s.Shade(white, math.V3(0, 0, 2), math.V3(0, 0, -1))
	w := float32(1 - gomath.Pow(2.0/50, 4))
	want := 0.3 + 10*w*w/4
	if !near(front[1], want) {
		t.Errorf("front-facing = %v, want %g", front, want)
	}
}
