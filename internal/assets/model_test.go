package assets

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/starscroll/pkg/math"
)

// writeTriangle saves a one-triangle binary glTF whose node is translated
// by (1,2,3) and scaled by 2.
func writeTriangle(t *testing.T, dir, name string) {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Materials = []*gltf.Material{{
		Name: "fur",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0.5, 0.25, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{"POSITION": pos},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{
		Name:        "root",
		Mesh:        gltf.Index(0),
		Matrix:      gltf.DefaultMatrix,
		Translation: [3]float64{1, 2, 3},
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       [3]float64{2, 2, 2},
	}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, filepath.Join(dir, name)); err != nil {
		t.Fatalf("SaveBinary() error = %v", err)
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	writeTriangle(t, dir, "tri.glb")
	m := NewManager(dir, zaptest.NewLogger(t))

	mdl, err := m.LoadModel("tri.glb")
	if err != nil {
		t.Fatalf("LoadModel() error = %v", err)
	}
	if len(mdl.Vertices) != 3 || mdl.TriangleCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles", len(mdl.Vertices), mdl.TriangleCount())
	}

	want := []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 3, Y: 2, Z: 3}, {X: 1, Y: 4, Z: 3}}
	for i, w := range want {
		p := mdl.Vertices[i].Position
		got := math.Vec3{X: p[0], Y: p[1], Z: p[2]}
		if !got.Near(w, 1e-5) {
			t.Errorf("vertex %d = %v, want %v", i, got, w)
		}
	}

	// Normals were missing and are rebuilt from the winding.
	n := mdl.Vertices[0].Normal
	if !(math.Vec3{X: n[0], Y: n[1], Z: n[2]}).Near(math.Vec3{Z: 1}, 1e-5) {
		t.Errorf("normal = %v, want +Z", n)
	}

	if !mdl.Bounds.Min.Near(math.Vec3{X: 1, Y: 2, Z: 3}, 1e-5) || !mdl.Bounds.Max.Near(math.Vec3{X: 3, Y: 4, Z: 3}, 1e-5) {
		t.Errorf("bounds = %+v", mdl.Bounds)
	}
	if mdl.Material.BaseColor != [4]float32{1, 0.5, 0.25, 1} {
		t.Errorf("base colour = %v", mdl.Material.BaseColor)
	}
	if mdl.Material.Texture != nil {
		t.Error("untextured material produced a texture")
	}
}

func TestLoadModelAsync(t *testing.T) {
	dir := t.TempDir()
	writeTriangle(t, dir, "tri.glb")
	m := NewManager(dir, nil)

	select {
	case res := <-m.LoadModelAsync("tri.glb"):
		if res.Err != nil || res.Mesh == nil {
			t.Fatalf("result = %+v", res)
		}
		if res.Name != "tri.glb" {
			t.Errorf("Name = %q", res.Name)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("LoadModelAsync() timed out")
	}

	res := <-m.LoadModelAsync("missing.gltf")
	if res.Err == nil {
		t.Error("loading a missing model succeeded")
	}
}

func TestNodeMatrixPrefersExplicitMatrix(t *testing.T) {
	n := &gltf.Node{
		Matrix:      [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 5, 6, 7, 1},
		Translation: [3]float64{100, 100, 100},
	}
	got := nodeMatrix(n).TransformPoint(math.Vec3{})
	if !got.Near(math.Vec3{X: 5, Y: 6, Z: 7}, 1e-6) {
		t.Errorf("origin maps to %v, want (5,6,7)", got)
	}
}
