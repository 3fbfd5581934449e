// Package scene renders the showcase objects into an offscreen framebuffer:
// textured meshes first, then additive point clouds.
package scene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/engine/camera"
	"github.com/Faultbox/starscroll/internal/engine/framebuffer"
	"github.com/Faultbox/starscroll/internal/engine/lighting"
	"github.com/Faultbox/starscroll/internal/engine/scene/shaders"
	"github.com/Faultbox/starscroll/internal/engine/shader"
	"github.com/Faultbox/starscroll/internal/engine/texture"
	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/internal/showcase"
	"github.com/Faultbox/starscroll/pkg/galaxy"
)

// ImageLoader resolves a texture name to a decoded image.
type ImageLoader func(name string) (image.Image, error)

// Renderer owns the GL programs, the offscreen target and the texture cache.
type Renderer struct {
	fb       *framebuffer.Framebuffer
	points   *shader.Program
	meshes   *shader.Program
	white    uint32
	disc     uint32
	textures map[string]uint32
	images   ImageLoader
	log      *zap.Logger

	Lighting lighting.Setup
}

// New compiles the programs and allocates a width×height target.
func New(width, height int32, images ImageLoader, log *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		textures: make(map[string]uint32),
		images:   images,
		log:      logger.OrNamed(log, "scene"),
		Lighting: lighting.Default(),
	}

	var err error
	if r.fb, err = framebuffer.New(width, height); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}
	if r.points, err = shader.New("points", shaders.PointsVertexShader, shaders.PointsFragmentShader); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.meshes, err = shader.New("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader); err != nil {
		r.Destroy()
		return nil, err
	}

	r.white = texture.Upload(texture.Solid(color.RGBA{255, 255, 255, 255}), texture.Options{Wrap: texture.WrapClamp})
	r.disc = texture.Upload(texture.SoftDisc(64), texture.Options{Wrap: texture.WrapClamp, Mipmaps: true})

	r.log.Info("scene renderer ready", zap.Int32("width", width), zap.Int32("height", height))
	return r, nil
}

// Texture returns the cached texture for name, loading it on first use.
// Missing or undecodable images fall back to fallback.
func (r *Renderer) Texture(name string, opts texture.Options, fallback uint32) uint32 {
	if name == "" {
		return fallback
	}
	if id, ok := r.textures[name]; ok {
		return id
	}

	id := fallback
	if r.images != nil {
		img, err := r.images(name)
		if err == nil {
			id = texture.Upload(img, opts)
		} else {
			r.log.Warn("texture unavailable, using fallback", zap.String("name", name), zap.Error(err))
		}
	}
	r.textures[name] = id
	return id
}

// Resize changes the framebuffer size.
func (r *Renderer) Resize(width, height int32) {
	r.fb.Resize(width, height)
}

// Size returns the framebuffer size.
func (r *Renderer) Size() (int32, int32) {
	return r.fb.Size()
}

// Framebuffer exposes the offscreen target.
func (r *Renderer) Framebuffer() *framebuffer.Framebuffer {
	return r.fb
}

// Render draws the visible objects and returns the colour texture.
func (r *Renderer) Render(cam *camera.Perspective, background galaxy.Color, objects []*showcase.Object) uint32 {
	r.fb.Begin(background.R, background.G, background.B)
	defer r.fb.End()

	view := cam.View()
	proj := cam.Projection()
	viewProj := proj.Mul(view)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for _, obj := range objects {
		if m, ok := obj.Resource.(*Mesh); ok && obj.Visible {
			r.drawMesh(m, obj, viewProj)
		}
	}

	// Points blend additively and never occlude each other.
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.DepthMask(false)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	_, h := r.fb.Size()
	for _, obj := range objects {
		if pc, ok := obj.Resource.(*PointCloud); ok && obj.Visible {
			r.drawPoints(pc, obj, view, proj, float32(h)/2)
		}
	}
	gl.DepthMask(true)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BindVertexArray(0)

	return r.fb.ColorTexture()
}

// Destroy frees the programs, target and cached textures. Uploaded
// resources are released by their owners.
func (r *Renderer) Destroy() {
	for name, id := range r.textures {
		if id != r.white && id != r.disc {
			texture.Delete(id)
		}
		delete(r.textures, name)
	}
	texture.Delete(r.white)
	texture.Delete(r.disc)
	r.white, r.disc = 0, 0
	if r.points != nil {
		r.points.Delete()
	}
	if r.meshes != nil {
		r.meshes.Delete()
	}
	if r.fb != nil {
		r.fb.Destroy()
	}
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}
