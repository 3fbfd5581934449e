// Package galaxy generates the spiral point cloud and the ambient particle
// field. It has no GPU dependencies; the renderer uploads the flat arrays.
package galaxy

import (
	gomath "math"

	"github.com/Faultbox/starscroll/pkg/math"
)

// PointCloud is a set of coloured points stored as flat xyz and rgb triples.
type PointCloud struct {
	Count     int
	Positions []float32
	Colors    []float32
}

func newPointCloud(count int) *PointCloud {
	return &PointCloud{
		Count:     count,
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
	}
}

// Len returns the number of points.
func (c *PointCloud) Len() int {
	return c.Count
}

// Position returns point i.
func (c *PointCloud) Position(i int) math.Vec3 {
	return math.Vec3{X: c.Positions[i*3], Y: c.Positions[i*3+1], Z: c.Positions[i*3+2]}
}

// Color returns the colour of point i.
func (c *PointCloud) Color(i int) Color {
	return Color{R: c.Colors[i*3], G: c.Colors[i*3+1], B: c.Colors[i*3+2]}
}

func (c *PointCloud) set(i int, pos math.Vec3, col Color) {
	c.Positions[i*3], c.Positions[i*3+1], c.Positions[i*3+2] = pos.X, pos.Y, pos.Z
	c.Colors[i*3], c.Colors[i*3+1], c.Colors[i*3+2] = col.R, col.G, col.B
}

// Point is one generated galaxy star.
type Point struct {
	// Radius is the distance along the arm before jitter.
	Radius   float32
	Position math.Vec3
	Color    Color
}

// BranchAngle is the base angle of the arm point i belongs to.
func BranchAngle(i, branches int) float32 {
	return float32(i%branches) / float32(branches) * 2 * gomath.Pi
}

// Sample draws point i. It consumes seven values from src: the radius, then
// a magnitude and a sign for each axis.
func Sample(i int, p Parameters, src Source) Point {
	radius := float32(src.Float64()) * p.Radius
	angle := float64(BranchAngle(i, p.Branches) + radius*p.Spin)

	jx := jitter(p, radius, src)
	jy := jitter(p, radius, src)
	jz := jitter(p, radius, src)

	return Point{
		Radius: radius,
		Position: math.Vec3{
			X: float32(gomath.Cos(angle))*radius + jx,
			Y: jy,
			Z: float32(gomath.Sin(angle))*radius + jz,
		},
		Color: p.InsideColor.Lerp(p.OutsideColor, radius/p.Radius),
	}
}

func jitter(p Parameters, radius float32, src Source) float32 {
	mag := float32(gomath.Pow(src.Float64(), float64(p.RandomnessPower)))
	sign := float32(1)
	if src.Float64() < 0.5 {
		sign = -1
	}
	return mag * sign * p.Randomness * radius
}

// Build validates p and generates a full galaxy.
func Build(p Parameters, src Source) (*PointCloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = NewSource(0)
	}

	cloud := newPointCloud(p.Count)
	for i := 0; i < p.Count; i++ {
		pt := Sample(i, p, src)
		cloud.set(i, pt.Position, pt.Color)
	}
	return cloud, nil
}

// Scatter fills a cube of side extent centred on the origin with count
// randomly coloured points.
func Scatter(count int, extent float32, src Source) *PointCloud {
	if count < 0 {
		count = 0
	}
	if src == nil {
		src = NewSource(0)
	}

	cloud := newPointCloud(count)
	for i := range cloud.Positions {
		cloud.Positions[i] = (float32(src.Float64()) - 0.5) * extent
		cloud.Colors[i] = float32(src.Float64())
	}
	return cloud
}
