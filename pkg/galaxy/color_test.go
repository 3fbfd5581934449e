package galaxy

import "testing"

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff6030")
	if err != nil {
		t.Fatalf("ParseHex() error = %v", err)
	}
	want := Color{1, 96.0 / 255, 48.0 / 255}
	if !near(c.R, want.R) || !near(c.G, want.G) || !near(c.B, want.B) {
		t.Errorf("ParseHex() = %+v", c)
	}
	if got := c.Hex(); got != "#ff6030" {
		t.Errorf("Hex() = %q, want #ff6030", got)
	}

	if _, err := ParseHex("ff6030x"); err == nil {
		t.Error("ParseHex() accepted malformed input")
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := MustHex("#ff6030")
	b := MustHex("#1b3984")

	tests := []struct {
		t    float32
		want Color
	}{
		{-1, a},
		{0, a},
		{1, b},
		{2, b},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	mid := Color{}.Lerp(Color{1, 1, 1}, 0.5)
	if mid != (Color{0.5, 0.5, 0.5}) {
		t.Errorf("Lerp(0.5) = %v", mid)
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
