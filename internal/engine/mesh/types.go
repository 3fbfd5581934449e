// Package mesh holds CPU-side triangle meshes and the primitive shapes the
// scene is built from.
package mesh

import (
	"image"

	"github.com/Faultbox/starscroll/pkg/math"
)

// Vertex is the interleaved layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Material is the surface description of a mesh.
type Material struct {
	// BaseColor multiplies the texture sample (RGBA).
	BaseColor [4]float32
	// Texture is the base colour image, nil for untextured meshes.
	Texture image.Image
	// Lit selects the ambient+point light shading path.
	Lit bool
}

// DefaultMaterial is opaque white, unlit.
func DefaultMaterial() Material {
	return Material{BaseColor: [4]float32{1, 1, 1, 1}}
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	Material Material
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// RecomputeBounds refreshes Bounds from the vertex positions.
func (m *Mesh) RecomputeBounds() {
	b := EmptyBounds()
	for _, v := range m.Vertices {
		b = b.Extend(math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]})
	}
	m.Bounds = b
}

// ComputeNormals replaces the normals with area-weighted smooth normals.
func (m *Mesh) ComputeNormals() {
	acc := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.position(a), m.position(b), m.position(c)
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = acc[i].Normalize().Array()
	}
}

// Append merges other into m, offsetting its indices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
	m.Bounds = m.Bounds.Union(other.Bounds)
}

func (m *Mesh) position(i uint32) math.Vec3 {
	p := m.Vertices[i].Position
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
