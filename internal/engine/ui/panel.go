package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/pkg/galaxy"
)

const panelWidth = 300

// GalaxyPanel is the galaxy configuration window. Edits are committed when
// a widget is released, not while it is being dragged.
type GalaxyPanel struct {
	state    *PanelState
	onCommit func(galaxy.Parameters) error
	log      *zap.Logger
}

// NewGalaxyPanel creates a panel showing p. onCommit receives every
// committed parameter set and reports whether it was accepted.
func NewGalaxyPanel(p galaxy.Parameters, onCommit func(galaxy.Parameters) error, log *zap.Logger) *GalaxyPanel {
	return &GalaxyPanel{
		state:    NewPanelState(p),
		onCommit: onCommit,
		log:      logger.OrNamed(log, "panel"),
	}
}

// State exposes the draft/committed pair.
func (gp *GalaxyPanel) State() *PanelState {
	return gp.state
}

// Render draws the panel at the top-right corner of the viewport.
func (gp *GalaxyPanel) Render(visible bool, viewportX, viewportY, viewportWidth float32) {
	if !visible {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(viewportX+viewportWidth-panelWidth-10, viewportY+10),
		imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(panelWidth, 0), imgui.CondFirstUseEver)
	imgui.SetNextWindowBgAlpha(0.75)

	flags := imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("Galaxy", nil, flags) {
		gp.widgets()
	}
	imgui.End()
}

func (gp *GalaxyPanel) widgets() {
	d := gp.state.Draft()

	count := int32(d.Count)
	if imgui.SliderIntV("count", &count, int32(galaxy.CountRange.Min), int32(galaxy.CountRange.Max), "%d", imgui.SliderFlagsAlwaysClamp) {
		d.Count = int(count)
	}
	gp.commitOnRelease()

	gp.sliderFloat("size", &d.Size, galaxy.SizeRange, "%.3f")
	gp.sliderFloat("radius", &d.Radius, galaxy.RadiusRange, "%.2f")

	branches := int32(d.Branches)
	if imgui.SliderIntV("branches", &branches, int32(galaxy.BranchesRange.Min), int32(galaxy.BranchesRange.Max), "%d", imgui.SliderFlagsAlwaysClamp) {
		d.Branches = int(branches)
	}
	gp.commitOnRelease()

	gp.sliderFloat("spin", &d.Spin, galaxy.SpinRange, "%.3f")
	gp.sliderFloat("randomness", &d.Randomness, galaxy.RandomnessRange, "%.3f")
	gp.sliderFloat("randomness power", &d.RandomnessPower, galaxy.RandomnessPowerRange, "%.3f")

	gp.colorEdit("inside color", &d.InsideColor)
	gp.colorEdit("outside color", &d.OutsideColor)

	imgui.Separator()
	if imgui.ButtonV("Regenerate", imgui.NewVec2(-1, 0)) {
		gp.commit(true)
	}
	if gp.state.Dirty() {
		imgui.TextDisabled("editing...")
	}
	if msg := gp.state.Diagnostic(); msg != "" {
		imgui.PushTextWrapPos()
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), msg)
		imgui.PopTextWrapPos()
	}
}

func (gp *GalaxyPanel) sliderFloat(label string, v *float32, r galaxy.Range, format string) {
	imgui.SliderFloatV(label, v, r.Min, r.Max, format, imgui.SliderFlagsAlwaysClamp)
	gp.commitOnRelease()
}

func (gp *GalaxyPanel) colorEdit(label string, c *galaxy.Color) {
	col := c.Array()
	if imgui.ColorEdit3(label, &col) {
		*c = galaxy.Color{R: col[0], G: col[1], B: col[2]}
	}
	gp.commitOnRelease()
}

func (gp *GalaxyPanel) commitOnRelease() {
	if imgui.IsItemDeactivatedAfterEdit() {
		gp.commit(false)
	}
}

func (gp *GalaxyPanel) commit(force bool) {
	if gp.onCommit == nil {
		return
	}
	applied, err := gp.state.Commit(force, gp.onCommit)
	switch {
	case err != nil:
		gp.log.Warn("galaxy parameters rejected", zap.Error(err))
	case applied:
		gp.log.Debug("galaxy parameters committed", zap.Int("count", gp.state.Committed().Count))
	}
}
