// Package picking turns pointer positions into world rays and tests them
// against object bounds.
package picking

import (
	gomath "math"

	"github.com/Faultbox/starscroll/pkg/math"
)

// Ray is a half-line with a unit Direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// PointAt returns Origin + t*Direction.
func (r Ray) PointAt(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay unprojects a pixel position through the inverse view-projection
// matrix. Pixel (0,0) is the top-left corner of the viewport.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := invViewProj.TransformPoint(math.V3(ndcX, ndcY, -1))
	far := invViewProj.TransformPoint(math.V3(ndcX, ndcY, 1))

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectAABB runs the slab test against [lo, hi]. It returns the entry
// distance, or the exit distance when the origin is inside the box.
func (r Ray) IntersectAABB(lo, hi math.Vec3) (t float32, hit bool) {
	origin := r.Origin.Array()
	dir := r.Direction.Array()
	minB := lo.Array()
	maxB := hi.Array()

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < minB[axis] || origin[axis] > maxB[axis] {
				return 0, false
			}
			continue
		}
		t1 := (minB[axis] - origin[axis]) / dir[axis]
		t2 := (maxB[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectSphere returns the nearest non-negative hit distance.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(gomath.Sqrt(float64(disc)))
	t = -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
