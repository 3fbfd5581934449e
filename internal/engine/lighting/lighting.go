// Package lighting describes the scene lights and mirrors the shader's
// falloff so it can be checked on the CPU.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/starscroll/pkg/galaxy"
	"github.com/Faultbox/starscroll/pkg/math"
)

// PointLight is an omnidirectional light.
type PointLight struct {
	Position  math.Vec3
	Color     galaxy.Color
	Intensity float32
	// Range is the cutoff distance; 0 means unlimited.
	Range float32
}

// Radiance returns colour × intensity, the value uploaded to the shader.
func (l PointLight) Radiance() [3]float32 {
	return [3]float32{l.Color.R * l.Intensity, l.Color.G * l.Intensity, l.Color.B * l.Intensity}
}

// Attenuation is the falloff at distance d: inverse square, windowed to
// reach zero at Range.
func (l PointLight) Attenuation(d float32) float32 {
	window := float32(1)
	if l.Range > 0 {
		r := float64(d / l.Range)
		w := gomath.Min(gomath.Max(1-r*r*r*r, 0), 1)
		window = float32(w * w)
	}
	return window / float32(gomath.Max(float64(d*d), 0.01))
}

// Setup is an ambient term plus a single point light.
type Setup struct {
	AmbientColor     galaxy.Color
	AmbientIntensity float32
	Point            PointLight
}

// Default is a dim white ambient and a bright white light at the origin.
func Default() Setup {
	white := galaxy.Color{R: 1, G: 1, B: 1}
	return Setup{
		AmbientColor:     white,
		AmbientIntensity: 0.3,
		Point: PointLight{
			Color:     white,
			Intensity: 10,
			Range:     50,
		},
	}
}

// Ambient returns the premultiplied ambient colour.
func (s Setup) Ambient() [3]float32 {
	return [3]float32{
		s.AmbientColor.R * s.AmbientIntensity,
		s.AmbientColor.G * s.AmbientIntensity,
		s.AmbientColor.B * s.AmbientIntensity,
	}
}

// Shade returns the lit colour of a surface point with the given albedo
// and unit normal, matching the mesh fragment shader.
func (s Setup) Shade(albedo [3]float32, pos, normal math.Vec3) [3]float32 {
	toLight := s.Point.Position.Sub(pos)
	d := toLight.Length()
	lambert := float32(0)
	if d > 1e-4 {
		lambert = max(normal.Dot(toLight.Scale(1/d)), 0)
	}
	amb := s.Ambient()
	rad := s.Point.Radiance()
	k := lambert * s.Point.Attenuation(d)

	var out [3]float32
	for i := range out {
		out[i] = albedo[i] * (amb[i] + rad[i]*k)
	}
	return out
}
