package scene

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/starscroll/internal/engine/texture"
	"github.com/Faultbox/starscroll/internal/showcase"
	"github.com/Faultbox/starscroll/pkg/galaxy"
	"github.com/Faultbox/starscroll/pkg/math"
)

// ErrReleased is returned when a resource is released twice.
var ErrReleased = errors.New("resource already released")

// PointCloud is an uploaded point set.
type PointCloud struct {
	vao      uint32
	vbos     [2]uint32
	count    int32
	style    showcase.PointStyle
	alphaMap uint32
}

// Count returns the number of points.
func (p *PointCloud) Count() int {
	return int(p.count)
}

// UploadCloud copies positions and colours into GPU buffers.
func (r *Renderer) UploadCloud(cloud *galaxy.PointCloud, style showcase.PointStyle) (showcase.Resource, error) {
	pc := &PointCloud{
		count:    int32(cloud.Len()),
		style:    style,
		alphaMap: r.Texture(style.AlphaMap, texture.Options{Wrap: texture.WrapClamp, Mipmaps: true}, r.disc),
	}

	gl.GenVertexArrays(1, &pc.vao)
	gl.BindVertexArray(pc.vao)
	gl.GenBuffers(2, &pc.vbos[0])

	for i, data := range [2][]float32{cloud.Positions, cloud.Colors} {
		gl.BindBuffer(gl.ARRAY_BUFFER, pc.vbos[i])
		if len(data) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
		}
		gl.VertexAttribPointerWithOffset(uint32(i), 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)

	if err := glError("upload point cloud"); err != nil {
		_ = pc.Release()
		return nil, err
	}
	return pc, nil
}

// Release frees the GPU buffers.
func (p *PointCloud) Release() error {
	if p.vao == 0 {
		return ErrReleased
	}
	gl.DeleteBuffers(2, &p.vbos[0])
	gl.DeleteVertexArrays(1, &p.vao)
	p.vao, p.vbos = 0, [2]uint32{}
	return glError("release point cloud")
}

func (r *Renderer) drawPoints(pc *PointCloud, obj *showcase.Object, view, proj math.Mat4, scale float32) {
	if pc.vao == 0 || pc.count == 0 {
		return
	}
	model := obj.Transform()
	tint := pc.style.Tint

	r.points.Use()
	gl.UniformMatrix4fv(r.points.Uniform("uModel"), 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.points.Uniform("uView"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.points.Uniform("uProjection"), 1, false, proj.Ptr())
	gl.Uniform1f(r.points.Uniform("uSize"), pc.style.Size)
	gl.Uniform1f(r.points.Uniform("uScale"), scale)
	gl.Uniform3f(r.points.Uniform("uTint"), tint.R, tint.G, tint.B)
	gl.Uniform1f(r.points.Uniform("uOpacity"), obj.Opacity)
	gl.Uniform1f(r.points.Uniform("uAlphaTest"), pc.style.AlphaTest)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pc.alphaMap)
	gl.Uniform1i(r.points.Uniform("uAlphaMap"), 0)

	gl.BindVertexArray(pc.vao)
	gl.DrawArrays(gl.POINTS, 0, pc.count)
}
