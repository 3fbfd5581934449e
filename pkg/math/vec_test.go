package math

import "testing"

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
	if got := (Vec2{5, 6}).Sub(Vec2{2, 2}); got != (Vec2{3, 4}) {
		t.Errorf("Vec2.Sub() = %v, want {3 4}", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want float32
	}{
		{"axis", V3(0, 0, 7), 1},
		{"diagonal", V3(1, 2, 3), 1},
		{"zero", Vec3{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.in.Normalize().Length()
			if abs32(l-tt.want) > 1e-5 {
				t.Errorf("Normalize().Length() = %v, want %v", l, tt.want)
			}
		})
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add() = %v", got)
	}
	if got := b.Sub(a); got != Splat(3) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale() = %v", got)
	}
	if got := a.Mul(b); got != V3(4, 10, 18) {
		t.Errorf("Mul() = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot() = %v, want 32", got)
	}
	if got := V3(0, 3, 0).Distance(V3(4, 0, 0)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
	if !a.Near(V3(1.0001, 2, 3), 1e-3) || a.Near(b, 1e-3) {
		t.Error("Near() mismatch")
	}
}
