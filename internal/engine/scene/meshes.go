package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/starscroll/internal/engine/mesh"
	"github.com/Faultbox/starscroll/internal/engine/texture"
	"github.com/Faultbox/starscroll/internal/showcase"
	"github.com/Faultbox/starscroll/pkg/math"
)

// Mesh is an uploaded indexed triangle mesh.
type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	texture       uint32
	ownsTexture   bool
	material      mesh.Material
}

// UploadMesh copies m to the GPU. textureName is looked up through the
// renderer's cache; an embedded material image takes precedence.
func (r *Renderer) UploadMesh(m *mesh.Mesh, textureName string) (showcase.Resource, error) {
	gm := &Mesh{
		indexCount: int32(len(m.Indices)),
		material:   m.Material,
	}

	switch {
	case m.Material.Texture != nil:
		gm.texture = texture.Upload(m.Material.Texture, texture.DefaultOptions())
		gm.ownsTexture = true
	default:
		gm.texture = r.Texture(textureName, texture.DefaultOptions(), r.white)
	}

	const stride = int32(unsafe.Sizeof(mesh.Vertex{}))

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	if len(m.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	if err := glError("upload mesh"); err != nil {
		_ = gm.Release()
		return nil, err
	}
	return gm, nil
}

// Release frees the GPU buffers and any texture the mesh owns.
func (m *Mesh) Release() error {
	if m.vao == 0 {
		return ErrReleased
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
	if m.ownsTexture {
		texture.Delete(m.texture)
	}
	m.vao, m.vbo, m.ebo, m.texture = 0, 0, 0, 0
	return glError("release mesh")
}

func (r *Renderer) drawMesh(m *Mesh, obj *showcase.Object, viewProj math.Mat4) {
	if m.vao == 0 || m.indexCount == 0 {
		return
	}
	model := obj.Transform()
	base := m.material.BaseColor
	l := r.Lighting
	ambient := l.Ambient()
	radiance := l.Point.Radiance()

	r.meshes.Use()
	gl.UniformMatrix4fv(r.meshes.Uniform("uModel"), 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.meshes.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform4f(r.meshes.Uniform("uBaseColor"), base[0], base[1], base[2], base[3])
	gl.Uniform1f(r.meshes.Uniform("uOpacity"), obj.Opacity)

	lit := int32(0)
	if m.material.Lit {
		lit = 1
	}
	gl.Uniform1i(r.meshes.Uniform("uLit"), lit)
	gl.Uniform3f(r.meshes.Uniform("uAmbient"), ambient[0], ambient[1], ambient[2])
	gl.Uniform3f(r.meshes.Uniform("uLightPos"), l.Point.Position.X, l.Point.Position.Y, l.Point.Position.Z)
	gl.Uniform3f(r.meshes.Uniform("uLightColor"), radiance[0], radiance[1], radiance[2])
	gl.Uniform1f(r.meshes.Uniform("uLightDistance"), l.Point.Range)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.texture)
	gl.Uniform1i(r.meshes.Uniform("uTexture"), 0)

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
}
