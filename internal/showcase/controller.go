package showcase

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/pkg/galaxy"
)

// Stage receives the directives a section transition emits.
type Stage interface {
	SetBackground(c galaxy.Color)
	// SetVisible reports false when the object is not (yet) present.
	SetVisible(name ObjectName, visible bool) bool
	SetCameraPose(pose CameraPose)
	SetPanelVisible(visible bool)
}

// Controller tracks the current section and applies directives on change.
type Controller struct {
	table   *SectionTable
	stage   Stage
	current Section
	log     *zap.Logger
}

// NewController starts in the first section. Nothing is emitted until Apply
// or a transitioning OnScroll.
func NewController(table *SectionTable, stage Stage, log *zap.Logger) *Controller {
	return &Controller{
		table: table,
		stage: stage,
		log:   logger.OrNamed(log, "section"),
	}
}

// Current returns the active section.
func (c *Controller) Current() Section {
	return c.current
}

// Table returns the directive table.
func (c *Controller) Table() *SectionTable {
	return c.table
}

// OnScroll recomputes the section from the scroll position. Directives are
// emitted only when the section changes; it reports whether they were.
func (c *Controller) OnScroll(offset, viewportHeight float64) bool {
	if !(viewportHeight > 0) || gomath.IsInf(viewportHeight, 0) {
		c.log.Warn("ignoring scroll with unusable viewport height", zap.Float64("height", viewportHeight))
		return false
	}

	next := c.table.SectionFor(offset, viewportHeight)
	if next == c.current {
		return false
	}

	c.log.Info("section changed",
		zap.Stringer("from", c.current),
		zap.Stringer("to", next),
		zap.Float64("offset", offset))
	c.current = next
	c.Apply()
	return true
}

// Apply emits the full directive bundle for the current section:
// background, visibility, camera, then panel.
func (c *Controller) Apply() {
	d := c.table.Directive(c.current)

	c.stage.SetBackground(d.Background)

	for _, name := range c.table.Objects() {
		if !c.stage.SetVisible(name, c.table.Visible(name, c.current)) {
			c.log.Debug("visibility skipped, object absent", zap.String("name", string(name)))
		}
	}

	c.stage.SetCameraPose(d.Camera)
	c.stage.SetPanelVisible(d.ShowPanel)
}

// VisibleNow reports whether name belongs to the current section.
func (c *Controller) VisibleNow(name ObjectName) bool {
	return c.table.Visible(name, c.current)
}

// SyncObject applies the current section's visibility to a newly registered
// object. Objects outside the table are left as they are.
func (c *Controller) SyncObject(obj *Object) {
	for _, name := range c.table.Objects() {
		if name == obj.Name {
			obj.Visible = c.VisibleNow(obj.Name)
			return
		}
	}
}
