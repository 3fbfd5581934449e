package mesh

import (
	"testing"

	"github.com/Faultbox/starscroll/pkg/math"
)

func TestBox(t *testing.T) {
	m := Box(1, 2, 3)

	if len(m.Vertices) != 24 {
		t.Errorf("vertices = %d, want 24", len(m.Vertices))
	}
	if m.TriangleCount() != 12 {
		t.Errorf("triangles = %d, want 12", m.TriangleCount())
	}
	want := Bounds{Min: math.V3(-0.5, -1, -1.5), Max: math.V3(0.5, 1, 1.5)}
	if !m.Bounds.Min.Near(want.Min, 1e-6) || !m.Bounds.Max.Near(want.Max, 1e-6) {
		t.Errorf("Bounds = %+v, want %+v", m.Bounds, want)
	}
}

func TestBoxWindingFacesOutward(t *testing.T) {
	m := Box(1, 1, 1)
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.position(m.Indices[i])
		b := m.position(m.Indices[i+1])
		c := m.position(m.Indices[i+2])
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d faces inward", i/3)
		}
	}
}

func TestSphere(t *testing.T) {
	m := Sphere(0.5, 32, 32)

	if got, want := len(m.Vertices), 33*33; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	// Poles contribute one triangle per segment, other rows two.
	if got, want := m.TriangleCount(), 32*(2*32-2); got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	for i, v := range m.Vertices {
		p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
		if l := p.Length(); l < 0.4999 || l > 0.5001 {
			t.Fatalf("vertex %d at distance %v, want 0.5", i, l)
		}
	}
	if !m.Bounds.Max.Near(math.Splat(0.5), 1e-3) {
		t.Errorf("Bounds.Max = %v", m.Bounds.Max)
	}
}

func TestSphereMinimumSegments(t *testing.T) {
	m := Sphere(1, 0, 0)
	if len(m.Vertices) != 4*3 {
		t.Errorf("vertices = %d, want 12", len(m.Vertices))
	}
}

func TestBoundsTransform(t *testing.T) {
	b := Box(1, 1, 1).Bounds
	world := b.Transform(math.Compose(math.V3(-5, 0, 0), math.Vec3{}, math.Splat(5)))

	if !world.Min.Near(math.V3(-7.5, -2.5, -2.5), 1e-5) || !world.Max.Near(math.V3(-2.5, 2.5, 2.5), 1e-5) {
		t.Errorf("Transform() = %+v", world)
	}
	if c := world.Center(); !c.Near(math.V3(-5, 0, 0), 1e-5) {
		t.Errorf("Center() = %v", c)
	}
}

func TestBoundsEmpty(t *testing.T) {
	e := EmptyBounds()
	if !e.IsEmpty() {
		t.Fatal("EmptyBounds() not empty")
	}
	if got := e.Transform(math.Identity()); !got.IsEmpty() {
		t.Error("Transform of empty bounds should stay empty")
	}
	b := e.Extend(math.V3(1, 2, 3))
	if b.IsEmpty() || b.Min != b.Max {
		t.Errorf("Extend() = %+v", b)
	}
}

func TestAppendAndNormals(t *testing.T) {
	m := Box(1, 1, 1)
	other := Box(1, 1, 1)
	m.Append(other)

	if len(m.Vertices) != 48 || m.Indices[36] != 24 {
		t.Fatalf("Append(): vertices=%d first appended index=%d", len(m.Vertices), m.Indices[36])
	}

	m.ComputeNormals()
	n := m.Vertices[0].Normal
	if n != [3]float32{1, 0, 0} {
		t.Errorf("recomputed normal = %v, want +X", n)
	}
}
