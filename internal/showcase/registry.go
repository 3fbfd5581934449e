// Package showcase holds the presentation logic: which objects exist, which
// section the viewer is in, the live galaxy and its per-frame animation.
// It never touches the GPU; resources are opaque handles.
package showcase

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/engine/mesh"
	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/pkg/galaxy"
	"github.com/Faultbox/starscroll/pkg/math"
)

// ObjectName identifies a scene object.
type ObjectName string

// Objects known to the presentation.
const (
	Galaxy    ObjectName = "galaxy"
	Sun       ObjectName = "sun"
	Cube      ObjectName = "cube"
	Model     ObjectName = "model"
	Particles ObjectName = "particles"
)

// ErrReleaseFailed wraps a failure to dispose of a GPU resource.
var ErrReleaseFailed = errors.New("resource release failed")

// Resource is a handle to renderer-owned data.
type Resource interface {
	Release() error
}

// Object is a named scene node.
type Object struct {
	Name     ObjectName
	Visible  bool
	Position math.Vec3
	// Rotation holds XYZ Euler angles in radians.
	Rotation math.Vec3
	Scale    math.Vec3
	Opacity  float32
	// Bounds is the local-space box used for picking; nil objects are not pickable.
	Bounds   *mesh.Bounds
	Resource Resource
}

// NewObject returns a visible object at the origin with unit scale.
func NewObject(name ObjectName, res Resource) *Object {
	return &Object{
		Name:     name,
		Visible:  true,
		Scale:    math.Splat(1),
		Opacity:  1,
		Resource: res,
	}
}

// Transform returns the model matrix.
func (o *Object) Transform() math.Mat4 {
	return math.Compose(o.Position, o.Rotation, o.Scale)
}

// WorldBounds returns the transformed picking box.
func (o *Object) WorldBounds() (mesh.Bounds, bool) {
	if o.Bounds == nil {
		return mesh.Bounds{}, false
	}
	return o.Bounds.Transform(o.Transform()), true
}

// Registry maps names to live objects. Lookups of absent names are no-ops.
type Registry struct {
	objects    map[ObjectName]*Object
	order      []ObjectName
	background galaxy.Color
	hooks      []func(*Object)
	log        *zap.Logger
}

// NewRegistry creates an empty registry with a black background.
func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		objects: make(map[ObjectName]*Object),
		log:     logger.OrNamed(log, "registry"),
	}
}

// OnRegister adds a hook run after every Register.
func (r *Registry) OnRegister(hook func(*Object)) {
	r.hooks = append(r.hooks, hook)
}

// Register installs obj, returning the object it replaced (nil if none).
// The replaced object's resource is not released.
func (r *Registry) Register(obj *Object) *Object {
	prev, ok := r.objects[obj.Name]
	if !ok {
		r.order = append(r.order, obj.Name)
	}
	r.objects[obj.Name] = obj
	r.log.Debug("object registered", zap.String("name", string(obj.Name)), zap.Bool("replaced", ok))

	for _, hook := range r.hooks {
		hook(obj)
	}
	return prev
}

// Remove drops name and returns its object.
func (r *Registry) Remove(name ObjectName) *Object {
	obj, ok := r.objects[name]
	if !ok {
		return nil
	}
	delete(r.objects, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return obj
}

// Get returns the object registered under name.
func (r *Registry) Get(name ObjectName) (*Object, bool) {
	obj, ok := r.objects[name]
	return obj, ok
}

// SetVisible shows or hides name. It reports false when name is absent.
func (r *Registry) SetVisible(name ObjectName, visible bool) bool {
	obj, ok := r.objects[name]
	if !ok {
		return false
	}
	obj.Visible = visible
	return true
}

// Background returns the clear colour.
func (r *Registry) Background() galaxy.Color {
	return r.background
}

// SetBackground sets the clear colour.
func (r *Registry) SetBackground(c galaxy.Color) {
	r.background = c
}

// Objects returns every object in registration order.
func (r *Registry) Objects() []*Object {
	out := make([]*Object, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.objects[name])
	}
	return out
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// ReleaseAll releases and removes every object. Failures are logged.
func (r *Registry) ReleaseAll() {
	for _, obj := range r.Objects() {
		if err := release(obj); err != nil {
			r.log.Warn("release on shutdown", zap.Error(err))
		}
		r.Remove(obj.Name)
	}
}

func release(obj *Object) error {
	if obj == nil || obj.Resource == nil {
		return nil
	}
	if err := obj.Resource.Release(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReleaseFailed, obj.Name, err)
	}
	return nil
}
