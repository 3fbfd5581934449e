package showcase

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/pkg/galaxy"
)

// PointStyle describes how a point cloud is drawn.
type PointStyle struct {
	Size float32
	// Tint multiplies the per-point colours.
	Tint galaxy.Color
	// AlphaMap names the sprite texture shaping each point.
	AlphaMap string
	// AlphaTest discards fragments below this alpha.
	AlphaTest float32
}

// CloudUploader turns a CPU point cloud into a renderer resource.
type CloudUploader interface {
	UploadCloud(cloud *galaxy.PointCloud, style PointStyle) (Resource, error)
}

// Generator owns the single live galaxy.
type Generator struct {
	registry *Registry
	uploader CloudUploader
	src      galaxy.Source
	style    PointStyle
	log      *zap.Logger

	params  galaxy.Parameters
	live    *galaxy.PointCloud
	lastErr error
}

// NewGenerator creates a generator that installs into reg. A nil src draws a
// clock-seeded source.
func NewGenerator(reg *Registry, uploader CloudUploader, src galaxy.Source, style PointStyle, log *zap.Logger) *Generator {
	if src == nil {
		src = galaxy.NewSource(0)
	}
	return &Generator{
		registry: reg,
		uploader: uploader,
		src:      src,
		style:    style,
		log:      logger.OrNamed(log, "galaxy"),
	}
}

// Generate replaces the live galaxy with one built from p. Invalid parameters
// leave the current galaxy untouched and return the validation error. A
// failed release of the previous galaxy is logged and generation proceeds.
func (g *Generator) Generate(p galaxy.Parameters) error {
	if err := p.Validate(); err != nil {
		g.lastErr = err
		g.log.Warn("galaxy parameters rejected, keeping current galaxy", zap.Error(err))
		return err
	}

	prev, hadPrev := g.registry.Get(Galaxy)
	visible := true
	if hadPrev {
		visible = prev.Visible
		g.registry.Remove(Galaxy)
		if err := release(prev); err != nil {
			g.log.Error("previous galaxy not released", zap.Error(err))
		}
		g.live = nil
	}

	cloud, err := galaxy.Build(p, g.src)
	if err != nil {
		g.lastErr = err
		return err
	}

	style := g.style
	style.Size = p.Size
	res, err := g.uploader.UploadCloud(cloud, style)
	if err != nil {
		g.lastErr = fmt.Errorf("upload galaxy: %w", err)
		g.log.Error("galaxy upload failed", zap.Error(err))
		return g.lastErr
	}

	obj := NewObject(Galaxy, res)
	obj.Visible = visible
	if hadPrev {
		obj.Rotation = prev.Rotation
	}
	g.registry.Register(obj)

	g.params = p
	g.live = cloud
	g.lastErr = nil
	g.log.Info("galaxy generated",
		zap.Int("count", p.Count),
		zap.Int("branches", p.Branches),
		zap.Float32("radius", p.Radius))
	return nil
}

// Live returns the installed point cloud, nil before the first success.
func (g *Generator) Live() *galaxy.PointCloud {
	return g.live
}

// Params returns the parameters of the live galaxy.
func (g *Generator) Params() galaxy.Parameters {
	return g.params
}

// LastError returns the diagnostic from the latest Generate, nil on success.
func (g *Generator) LastError() error {
	return g.lastErr
}

// Release disposes of the live galaxy.
func (g *Generator) Release() {
	obj := g.registry.Remove(Galaxy)
	if err := release(obj); err != nil {
		g.log.Error("galaxy not released", zap.Error(err))
	}
	g.live = nil
}
