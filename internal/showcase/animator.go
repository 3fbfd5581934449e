package showcase

import gomath "math"

// Animation rates at the reference 60 Hz frame rate: 0.005 rad and 0.01
// phase per frame.
const (
	GalaxySpinRate = 0.3 // rad/s
	TwinkleRate    = 0.6 // phase/s
)

// Animator advances the per-frame motion: galaxy spin and the particle twinkle.
type Animator struct {
	spinRate    float32
	twinkleRate float32
	phase       float64
}

// NewAnimator uses the default rates.
func NewAnimator() *Animator {
	return &Animator{spinRate: GalaxySpinRate, twinkleRate: TwinkleRate}
}

// Phase returns the accumulated twinkle phase.
func (a *Animator) Phase() float64 {
	return a.phase
}

// Tick advances the animation by dt seconds. Absent objects are skipped.
func (a *Animator) Tick(reg *Registry, dt float32) {
	if dt <= 0 {
		return
	}

	if g, ok := reg.Get(Galaxy); ok {
		g.Rotation.Y = float32(gomath.Mod(float64(g.Rotation.Y+a.spinRate*dt), 2*gomath.Pi))
	}

	a.phase += float64(a.twinkleRate * dt)
	if p, ok := reg.Get(Particles); ok {
		s := float32(1 + 0.2*gomath.Sin(a.phase))
		p.Scale.X, p.Scale.Y, p.Scale.Z = s, s, s
		p.Opacity = float32(0.8 + 0.2*gomath.Sin(2*a.phase))
	}
}
