package showcase

import (
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/engine/picking"
	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/pkg/math"
)

// SoundPlayer plays the click feedback.
type SoundPlayer interface {
	PlayClick()
}

// Interaction handles pointer clicks on scene objects.
type Interaction struct {
	registry     *Registry
	sound        SoundPlayer
	enlargeScale float32
	log          *zap.Logger
}

// NewInteraction creates a click handler. sound may be nil.
func NewInteraction(reg *Registry, sound SoundPlayer, enlargeScale float32, log *zap.Logger) *Interaction {
	return &Interaction{
		registry:     reg,
		sound:        sound,
		enlargeScale: enlargeScale,
		log:          logger.OrNamed(log, "interaction"),
	}
}

// Pick returns the nearest visible pickable object hit by ray.
func (in *Interaction) Pick(ray picking.Ray) (*Object, bool) {
	var (
		best     *Object
		bestDist float32
	)
	for _, obj := range in.registry.Objects() {
		if !obj.Visible {
			continue
		}
		bounds, ok := obj.WorldBounds()
		if !ok {
			continue
		}
		dist, hit := ray.IntersectAABB(bounds.Min, bounds.Max)
		if hit && (best == nil || dist < bestDist) {
			best, bestDist = obj, dist
		}
	}
	return best, best != nil
}

// Click picks along ray. Hitting the model enlarges it and plays the click
// sound. It returns the picked object's name, empty when nothing was hit.
func (in *Interaction) Click(ray picking.Ray) ObjectName {
	obj, ok := in.Pick(ray)
	if !ok {
		return ""
	}
	in.log.Debug("object clicked", zap.String("name", string(obj.Name)))

	if obj.Name == Model {
		obj.Scale = math.Splat(in.enlargeScale)
		if in.sound != nil {
			in.sound.PlayClick()
		}
	}
	return obj.Name
}
