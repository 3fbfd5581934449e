package math

import (
	"math"
	"testing"
)

func TestQuatIdentityToMat4(t *testing.T) {
	if got := QuatIdentity().ToMat4(); got != Identity() {
		t.Errorf("QuatIdentity().ToMat4() = %v, want identity", got)
	}
}

func TestQuatMatchesRotateY(t *testing.T) {
	q := QuatFromAxisAngle(V3(0, 1, 0), math.Pi/3)
	a := q.ToMat4()
	b := RotateY(math.Pi / 3)
	for i := range a {
		if abs32(a[i]-b[i]) > 1e-5 {
			t.Fatalf("element %d: quat %v, euler %v", i, a[i], b[i])
		}
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero Normalize() = %v, want identity", got)
	}
}
