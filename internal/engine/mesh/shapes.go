package mesh

import (
	gomath "math"

	"github.com/Faultbox/starscroll/pkg/math"
)

// Texture coordinates use the image convention: (0,0) is the top-left texel.

type face struct {
	normal, right, up math.Vec3
}

var boxFaces = [6]face{
	{math.V3(1, 0, 0), math.V3(0, 0, -1), math.V3(0, 1, 0)},
	{math.V3(-1, 0, 0), math.V3(0, 0, 1), math.V3(0, 1, 0)},
	{math.V3(0, 1, 0), math.V3(1, 0, 0), math.V3(0, 0, -1)},
	{math.V3(0, -1, 0), math.V3(1, 0, 0), math.V3(0, 0, 1)},
	{math.V3(0, 0, 1), math.V3(1, 0, 0), math.V3(0, 1, 0)},
	{math.V3(0, 0, -1), math.V3(-1, 0, 0), math.V3(0, 1, 0)},
}

// Box builds a w×h×d box centred on the origin. Every face carries the full
// texture.
func Box(w, h, d float32) *Mesh {
	dims := math.V3(w, h, d)
	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
		Material: DefaultMaterial(),
	}

	corners := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range boxFaces {
		base := uint32(len(m.Vertices))
		for _, st := range corners {
			p := f.normal.Scale(0.5).
				Add(f.right.Scale(st[0] - 0.5)).
				Add(f.up.Scale(0.5 - st[1])).
				Mul(dims)
			m.Vertices = append(m.Vertices, Vertex{
				Position: p.Array(),
				Normal:   f.normal.Array(),
				TexCoord: st,
			})
		}
		m.Indices = append(m.Indices, base, base+3, base+2, base, base+2, base+1)
	}

	m.RecomputeBounds()
	return m
}

// Sphere builds a UV sphere. widthSegments and heightSegments are raised to
// their minimums of 3 and 2.
func Sphere(radius float32, widthSegments, heightSegments int) *Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	m := &Mesh{Material: DefaultMaterial()}
	grid := make([][]uint32, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * gomath.Pi
		row := make([]uint32, widthSegments+1)

		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * gomath.Pi

			n := math.Vec3{
				X: float32(-gomath.Cos(phi) * gomath.Sin(theta)),
				Y: float32(gomath.Cos(theta)),
				Z: float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			row[ix] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, Vertex{
				Position: n.Scale(radius).Array(),
				Normal:   n.Array(),
				TexCoord: [2]float32{float32(u), float32(v)},
			})
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}

	m.RecomputeBounds()
	return m
}
