package input

import gomath "math"

// Scroller emulates a page that is Sections viewport-heights tall. Offset is
// the distance scrolled from the top in pixels.
type Scroller struct {
	offset   float64
	height   float64
	sections int
	// Step is the distance one wheel notch scrolls, in pixels.
	Step float64
}

// NewScroller creates a scroller at the top of the page.
func NewScroller(viewportHeight float64, sections int, step float64) *Scroller {
	return &Scroller{height: viewportHeight, sections: max(sections, 1), Step: step}
}

// Offset returns the current scroll distance.
func (s *Scroller) Offset() float64 {
	return s.offset
}

// Height returns the viewport height.
func (s *Scroller) Height() float64 {
	return s.height
}

// MaxOffset is the furthest the page can scroll.
func (s *Scroller) MaxOffset() float64 {
	return float64(s.sections-1) * s.height
}

// Wheel applies wheel notches; positive values scroll towards the top.
func (s *Scroller) Wheel(notches float32) {
	s.SetOffset(s.offset - float64(notches)*s.Step)
}

// SetOffset jumps to an absolute offset, clamped to the page.
func (s *Scroller) SetOffset(offset float64) {
	if gomath.IsNaN(offset) {
		return
	}
	s.offset = gomath.Min(gomath.Max(offset, 0), s.MaxOffset())
}

// Resize keeps the same relative position within the page.
func (s *Scroller) Resize(viewportHeight float64) {
	if viewportHeight <= 0 {
		return
	}
	if s.height > 0 {
		s.offset *= viewportHeight / s.height
	}
	s.height = viewportHeight
	s.SetOffset(s.offset)
}
