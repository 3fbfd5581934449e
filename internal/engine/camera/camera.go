// Package camera provides the perspective camera the scene is viewed through.
package camera

import (
	gomath "math"

	"github.com/Faultbox/starscroll/pkg/math"
)

// Perspective is a pinhole camera placed by position and target.
type Perspective struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovY   float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fovY, aspect, near, far float32) *Perspective {
	return &Perspective{
		Target: math.V3(0, 0, -1),
		Up:     math.V3(0, 1, 0),
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// SetPose moves the camera and re-aims it.
func (c *Perspective) SetPose(position, target math.Vec3) {
	c.Position = position
	c.Target = target
}

// Resize updates the aspect ratio. Zero heights are ignored.
func (c *Perspective) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Forward returns the unit viewing direction. When it is parallel to Up the
// direction is nudged off the axis so a view basis still exists.
func (c *Perspective) Forward() math.Vec3 {
	back := c.Position.Sub(c.Target)
	if back.Length() == 0 {
		back = math.V3(0, 0, 1)
	}
	back = back.Normalize()

	if back.Cross(c.Up).Length() == 0 {
		if abs(c.Up.Z) == 1 {
			back.X += 0.0001
		} else {
			back.Z += 0.0001
		}
		back = back.Normalize()
	}
	return back.Scale(-1)
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), c.Up)
}

// Projection returns the clip matrix.
func (c *Perspective) Projection() math.Mat4 {
	return math.Perspective(c.FovY*gomath.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.Projection().Mul(c.View())
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
