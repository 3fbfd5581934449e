// Package app composes the showcase: it owns the scene objects, routes
// scroll, click and resize input, and renders one frame at a time. Hosts
// (the ImGui window and the kiosk window) only forward events to it.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/assets"
	"github.com/Faultbox/starscroll/internal/config"
	"github.com/Faultbox/starscroll/internal/engine/camera"
	"github.com/Faultbox/starscroll/internal/engine/input"
	"github.com/Faultbox/starscroll/internal/engine/mesh"
	"github.com/Faultbox/starscroll/internal/engine/picking"
	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/internal/showcase"
	"github.com/Faultbox/starscroll/pkg/galaxy"
	"github.com/Faultbox/starscroll/pkg/math"
)

// alphaTest discards the near-transparent fringe of point sprites.
const alphaTest = 0.001

// Renderer draws registered objects. *scene.Renderer implements it.
type Renderer interface {
	showcase.CloudUploader
	UploadMesh(m *mesh.Mesh, textureName string) (showcase.Resource, error)
	Render(cam *camera.Perspective, background galaxy.Color, objects []*showcase.Object) uint32
	Resize(width, height int32)
	Destroy()
}

// ModelLoader loads meshes off the render thread. *assets.Manager implements it.
type ModelLoader interface {
	LoadModelAsync(name string) <-chan assets.ModelResult
}

// Deps are the host-provided services. Models, Sound and Source may be nil.
type Deps struct {
	Renderer Renderer
	Models   ModelLoader
	Sound    showcase.SoundPlayer
	Source   galaxy.Source
}

// Presenter wires the registry, section controller, galaxy generator,
// animator and click handling to a camera and a renderer.
type Presenter struct {
	cfg *config.Config
	log *zap.Logger

	renderer Renderer
	models   ModelLoader
	src      galaxy.Source

	registry    *showcase.Registry
	controller  *showcase.Controller
	generator   *showcase.Generator
	animator    *showcase.Animator
	interaction *showcase.Interaction

	camera   *camera.Perspective
	scroller *input.Scroller

	width, height int
	panelVisible  bool
	pendingModel  <-chan assets.ModelResult
	started       bool
}

// New builds a presenter for a width×height viewport. Nothing is uploaded
// until Start.
func New(cfg *config.Config, deps Deps, width, height int, log *zap.Logger) (*Presenter, error) {
	if deps.Renderer == nil {
		return nil, fmt.Errorf("presenter: renderer required")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("presenter: viewport %dx%d must be positive", width, height)
	}

	log = logger.OrNamed(log, "app")
	src := deps.Source
	if src == nil {
		src = galaxy.NewSource(cfg.Galaxy.Seed)
	}

	p := &Presenter{
		cfg:      cfg,
		log:      log,
		renderer: deps.Renderer,
		models:   deps.Models,
		src:      src,
		width:    width,
		height:   height,
	}

	table := showcase.DefaultSections().WithBackground(cfg.Scene.Background)
	p.registry = showcase.NewRegistry(log.Named("registry"))
	p.controller = showcase.NewController(table, p, log.Named("section"))
	p.generator = showcase.NewGenerator(p.registry, deps.Renderer, src, showcase.PointStyle{
		Tint:      galaxy.Color{R: 1, G: 1, B: 1},
		AlphaMap:  cfg.Assets.GalaxyAlphaMap,
		AlphaTest: alphaTest,
	}, log.Named("galaxy"))
	p.animator = showcase.NewAnimator()
	p.interaction = showcase.NewInteraction(p.registry, deps.Sound, cfg.Scene.ModelClickedScale, log.Named("interaction"))

	g := cfg.Graphics
	p.camera = camera.NewPerspective(g.FOV, float32(width)/float32(height), g.Near, g.Far)
	p.scroller = input.NewScroller(float64(height), table.Len(), cfg.Scroll.WheelStep)

	// New objects pick up the visibility of the current section at once.
	p.registry.OnRegister(p.controller.SyncObject)
	return p, nil
}

// Start generates the initial galaxy, builds the decorative objects, starts
// loading the model and applies the first section. Only a failed galaxy is
// fatal; missing decorations are logged.
func (p *Presenter) Start() error {
	if p.started {
		return nil
	}
	p.started = true

	if err := p.generator.Generate(p.cfg.Galaxy.Parameters); err != nil {
		return fmt.Errorf("initial galaxy: %w", err)
	}

	p.addSun()
	p.addCube()
	p.addParticles()

	if p.models != nil && p.cfg.Assets.Model != "" {
		p.pendingModel = p.models.LoadModelAsync(p.cfg.Assets.Model)
	}

	p.controller.Apply()
	p.log.Info("showcase started",
		zap.Int("objects", p.registry.Len()),
		zap.Stringer("section", p.controller.Current()))
	return nil
}

func (p *Presenter) addSun() {
	sphere := mesh.Sphere(p.cfg.Scene.SunRadius, 32, 32)
	p.addMesh(showcase.Sun, sphere, p.cfg.Assets.SunTexture, math.Vec3{})
}

func (p *Presenter) addCube() {
	box := mesh.Box(1, 1, 1)
	p.addMesh(showcase.Cube, box, p.cfg.Assets.CubeTexture, math.V3(0, 2, 0))
}

func (p *Presenter) addMesh(name showcase.ObjectName, m *mesh.Mesh, textureName string, pos math.Vec3) *showcase.Object {
	res, err := p.renderer.UploadMesh(m, textureName)
	if err != nil {
		p.log.Warn("object not uploaded", zap.String("name", string(name)), zap.Error(err))
		return nil
	}
	obj := showcase.NewObject(name, res)
	obj.Position = pos
	bounds := m.Bounds
	obj.Bounds = &bounds
	p.registry.Register(obj)
	return obj
}

func (p *Presenter) addParticles() {
	sc := p.cfg.Scene
	if sc.ParticleCount == 0 {
		return
	}
	cloud := galaxy.Scatter(sc.ParticleCount, sc.ParticleExtent, p.src)
	res, err := p.renderer.UploadCloud(cloud, showcase.PointStyle{
		Size:      sc.ParticleSize,
		Tint:      sc.ParticleTint,
		AlphaMap:  p.cfg.Assets.ParticleAlphaMap,
		AlphaTest: alphaTest,
	})
	if err != nil {
		p.log.Warn("particles not uploaded", zap.Error(err))
		return
	}
	p.registry.Register(showcase.NewObject(showcase.Particles, res))
}

// drainModel installs the model once its background load has finished.
func (p *Presenter) drainModel() {
	if p.pendingModel == nil {
		return
	}
	var res assets.ModelResult
	select {
	case res = <-p.pendingModel:
	default:
		return
	}
	p.pendingModel = nil

	if res.Err != nil {
		p.log.Warn("model unavailable", zap.String("name", res.Name), zap.Error(res.Err))
		return
	}
	res.Mesh.Material.Lit = true
	if obj := p.addMesh(showcase.Model, res.Mesh, "", math.V3(-5, 0, 0)); obj != nil {
		obj.Scale = math.Splat(p.cfg.Scene.ModelScale)
	}
}

// Frame advances animation by dt seconds and renders. It returns the
// colour texture of the rendered frame.
func (p *Presenter) Frame(dt float32) uint32 {
	p.drainModel()
	p.animator.Tick(p.registry, dt)
	return p.renderer.Render(p.camera, p.registry.Background(), p.registry.Objects())
}

// Scroll applies wheel notches; positive notches scroll towards the top.
func (p *Presenter) Scroll(notches float32) {
	if notches == 0 {
		return
	}
	p.scroller.Wheel(notches)
	p.controller.OnScroll(p.scroller.Offset(), p.scroller.Height())
}

// SetScrollOffset jumps to an absolute page offset in pixels.
func (p *Presenter) SetScrollOffset(offset float64) {
	p.scroller.SetOffset(offset)
	p.controller.OnScroll(p.scroller.Offset(), p.scroller.Height())
}

// ScrollOffset returns the current page offset in pixels.
func (p *Presenter) ScrollOffset() float64 {
	return p.scroller.Offset()
}

// Resize changes the viewport. Degenerate sizes are logged and ignored.
func (p *Presenter) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		p.log.Warn("ignoring degenerate viewport", zap.Int("width", width), zap.Int("height", height))
		return
	}
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.camera.Resize(width, height)
	p.renderer.Resize(int32(width), int32(height))
	p.scroller.Resize(float64(height))
	p.controller.OnScroll(p.scroller.Offset(), p.scroller.Height())
}

// Size returns the viewport size.
func (p *Presenter) Size() (int, int) {
	return p.width, p.height
}

// Click handles a pointer click at viewport coordinates (origin top-left)
// and returns the name of the object hit, empty when nothing was.
func (p *Presenter) Click(x, y float32) showcase.ObjectName {
	inv := p.camera.ViewProjection().Inverse()
	ray := picking.ScreenToRay(x, y, float32(p.width), float32(p.height), inv)
	return p.interaction.Click(ray)
}

// Regenerate replaces the galaxy. Rejected parameters keep the current
// galaxy and return the validation error for display.
func (p *Presenter) Regenerate(params galaxy.Parameters) error {
	return p.generator.Generate(params)
}

// Params returns the parameters of the live galaxy.
func (p *Presenter) Params() galaxy.Parameters {
	return p.generator.Params()
}

// Section returns the section currently shown.
func (p *Presenter) Section() showcase.Section {
	return p.controller.Current()
}

// PanelVisible reports whether the current section shows the configuration panel.
func (p *Presenter) PanelVisible() bool {
	return p.panelVisible
}

// Background returns the current clear colour.
func (p *Presenter) Background() galaxy.Color {
	return p.registry.Background()
}

// Registry exposes the scene objects.
func (p *Presenter) Registry() *showcase.Registry {
	return p.registry
}

// Camera exposes the camera.
func (p *Presenter) Camera() *camera.Perspective {
	return p.camera
}

// Close releases every object and the renderer.
func (p *Presenter) Close() {
	p.registry.ReleaseAll()
	p.renderer.Destroy()
	p.log.Info("showcase closed")
}

// SetBackground implements showcase.Stage.
func (p *Presenter) SetBackground(c galaxy.Color) {
	p.registry.SetBackground(c)
}

// SetVisible implements showcase.Stage.
func (p *Presenter) SetVisible(name showcase.ObjectName, visible bool) bool {
	return p.registry.SetVisible(name, visible)
}

// SetCameraPose implements showcase.Stage.
func (p *Presenter) SetCameraPose(pose showcase.CameraPose) {
	p.camera.SetPose(pose.Position, pose.LookAt)
}

// SetPanelVisible implements showcase.Stage.
func (p *Presenter) SetPanelVisible(visible bool) {
	p.panelVisible = visible
}
