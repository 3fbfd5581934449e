package assets

import (
	"fmt"
	"image"
	"net/url"
	"path"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/engine/mesh"
	"github.com/Faultbox/starscroll/internal/engine/texture"
	"github.com/Faultbox/starscroll/pkg/math"
)

// ModelResult is delivered by LoadModelAsync.
type ModelResult struct {
	Name string
	Mesh *mesh.Mesh
	Err  error
}

// LoadModelAsync loads a model on a background goroutine. The channel
// receives exactly one result and is then closed. No GL calls are made,
// so the mesh must still be uploaded on the render thread.
func (m *Manager) LoadModelAsync(name string) <-chan ModelResult {
	ch := make(chan ModelResult, 1)
	go func() {
		defer close(ch)
		mdl, err := m.LoadModel(name)
		ch <- ModelResult{Name: name, Mesh: mdl, Err: err}
	}()
	return ch
}

// LoadModel reads a glTF 2.0 file (.gltf or .glb) and flattens every
// triangle primitive reachable from its default scene into one mesh in
// model space. The first material found supplies the base colour and
// base colour texture.
func (m *Manager) LoadModel(name string) (*mesh.Mesh, error) {
	p, err := m.Path(name)
	if err != nil {
		return nil, err
	}
	doc, err := gltf.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening model %s: %w", name, err)
	}

	b := &modelBuilder{
		doc:      doc,
		out:      &mesh.Mesh{Material: mesh.DefaultMaterial()},
		material: -1,
		log:      m.log,
	}
	for _, root := range sceneRoots(doc) {
		if err := b.visit(root, math.Identity(), 0); err != nil {
			return nil, fmt.Errorf("model %s: %w", name, err)
		}
	}
	if len(b.out.Indices) == 0 {
		return nil, fmt.Errorf("model %s: no triangles", name)
	}
	if b.missingNormals {
		b.out.ComputeNormals()
	}
	b.out.RecomputeBounds()

	if b.material >= 0 {
		m.applyMaterial(doc, name, doc.Materials[b.material], &b.out.Material)
	}

	m.log.Info("model loaded",
		zap.String("name", name),
		zap.Int("vertices", len(b.out.Vertices)),
		zap.Int("triangles", b.out.TriangleCount()),
	)
	return b.out, nil
}

// sceneRoots returns the root nodes of the default scene, or every node
// without a parent when the file declares no scene.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			s = *doc.Scene
		}
		return doc.Scenes[s].Nodes
	}

	child := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(child) {
				child[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// maxNodeDepth guards against cyclic node graphs in malformed files.
const maxNodeDepth = 64

type modelBuilder struct {
	doc            *gltf.Document
	out            *mesh.Mesh
	material       int
	missingNormals bool
	log            *zap.Logger
}

func (b *modelBuilder) visit(index int, parent math.Mat4, depth int) error {
	if index < 0 || index >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", index)
	}
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}

	node := b.doc.Nodes[index]
	world := parent.Mul(nodeMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh >= len(b.doc.Meshes) {
			return fmt.Errorf("node %d: mesh %d out of range", index, *node.Mesh)
		}
		for i, prim := range b.doc.Meshes[*node.Mesh].Primitives {
			if err := b.primitive(prim, world); err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", *node.Mesh, i, err)
			}
		}
	}

	for _, c := range node.Children {
		if err := b.visit(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *modelBuilder) primitive(prim *gltf.Primitive, world math.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		b.log.Debug("skipping non-triangle primitive", zap.Int("mode", int(prim.Mode)))
		return nil
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(b.doc, b.doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("reading normals: %w", err)
		}
	}
	if len(normals) != len(positions) {
		normals = nil
		b.missingNormals = true
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(b.doc, b.doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("reading texture coordinates: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*prim.Indices], nil); err != nil {
			return fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	normalMat := world.Inverse()
	base := uint32(len(b.out.Vertices))
	for i, p := range positions {
		v := mesh.Vertex{
			Position: world.TransformPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]}).Array(),
		}
		if normals != nil {
			v.Normal = transformNormal(normalMat, normals[i]).Array()
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		b.out.Vertices = append(b.out.Vertices, v)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, c, d := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(c) >= len(positions) || int(d) >= len(positions) {
			return fmt.Errorf("index out of range at triangle %d", i/3)
		}
		b.out.Indices = append(b.out.Indices, base+a, base+c, base+d)
	}

	if b.material < 0 && prim.Material != nil && *prim.Material < len(b.doc.Materials) {
		b.material = *prim.Material
	}
	return nil
}

// nodeMatrix returns the local transform of a node. An explicit matrix
// wins over translation/rotation/scale.
func nodeMatrix(n *gltf.Node) math.Mat4 {
	if n.Matrix != gltf.DefaultMatrix && n.Matrix != ([16]float64{}) {
		var m math.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	scale := n.Scale
	if scale == ([3]float64{}) {
		scale = [3]float64{1, 1, 1}
	}
	rot := math.Quat{
		X: float32(n.Rotation[0]),
		Y: float32(n.Rotation[1]),
		Z: float32(n.Rotation[2]),
		W: float32(n.Rotation[3]),
	}
	t := math.Translate(math.Vec3{X: float32(n.Translation[0]), Y: float32(n.Translation[1]), Z: float32(n.Translation[2])})
	s := math.Scale(math.Vec3{X: float32(scale[0]), Y: float32(scale[1]), Z: float32(scale[2])})
	return t.Mul(rot.ToMat4()).Mul(s)
}

// transformNormal multiplies by the transpose of inv, the inverse of the
// world matrix, so normals stay perpendicular under non-uniform scale.
func transformNormal(inv math.Mat4, n [3]float32) math.Vec3 {
	return math.Vec3{
		X: inv[0]*n[0] + inv[1]*n[1] + inv[2]*n[2],
		Y: inv[4]*n[0] + inv[5]*n[1] + inv[6]*n[2],
		Z: inv[8]*n[0] + inv[9]*n[1] + inv[10]*n[2],
	}.Normalize()
}

func (m *Manager) applyMaterial(doc *gltf.Document, modelName string, mat *gltf.Material, out *mesh.Material) {
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return
	}
	if f := pbr.BaseColorFactor; f != nil {
		out.BaseColor = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
	}
	if pbr.BaseColorTexture == nil {
		return
	}
	img, err := m.gltfImage(doc, modelName, pbr.BaseColorTexture.Index)
	if err != nil {
		m.log.Warn("model texture unavailable", zap.String("model", modelName), zap.Error(err))
		return
	}
	out.Texture = img
}

// gltfImage decodes the source image of a texture, whether it lives in a
// buffer view, a data URI or a file next to the model.
func (m *Manager) gltfImage(doc *gltf.Document, modelName string, textureIndex int) (image.Image, error) {
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil, fmt.Errorf("texture %d out of range", textureIndex)
	}
	src := doc.Textures[textureIndex].Source
	if src == nil || *src >= len(doc.Images) {
		return nil, fmt.Errorf("texture %d has no image", textureIndex)
	}
	img := doc.Images[*src]

	var data []byte
	switch {
	case img.BufferView != nil:
		view := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[view.Buffer].Data
		end := view.ByteOffset + view.ByteLength
		if end > len(buf) {
			return nil, fmt.Errorf("image %d: buffer view out of range", *src)
		}
		data = buf[view.ByteOffset:end]
	case img.IsEmbeddedResource():
		var err error
		if data, err = img.MarshalData(); err != nil {
			return nil, fmt.Errorf("image %d: %w", *src, err)
		}
	default:
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			return nil, fmt.Errorf("image %d uri: %w", *src, err)
		}
		return m.Image(path.Join(path.Dir(modelName), uri))
	}

	decoded, _, err := texture.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", *src, err)
	}
	return decoded, nil
}
