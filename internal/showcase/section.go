package showcase

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/starscroll/pkg/galaxy"
	"github.com/Faultbox/starscroll/pkg/math"
)

// Section is a scroll-defined viewing context.
type Section int

// Defined sections, one per viewport height of scroll.
const (
	SectionGalaxy Section = iota
	SectionCube
	SectionModel
)

func (s Section) String() string {
	switch s {
	case SectionGalaxy:
		return "galaxy"
	case SectionCube:
		return "cube"
	case SectionModel:
		return "model"
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// CameraPose is a camera position and the point it looks at.
type CameraPose struct {
	Position math.Vec3
	LookAt   math.Vec3
}

// SectionDirective is what entering a section applies to the scene.
type SectionDirective struct {
	Name       string
	Camera     CameraPose
	Visible    []ObjectName
	ShowPanel  bool
	Background galaxy.Color
}

// SectionTable is the ordered, non-empty list of section directives.
type SectionTable struct {
	directives []SectionDirective
	owner      map[ObjectName]Section
	objects    []ObjectName
}

// NewSectionTable builds a table. Each object belongs to at most one section;
// a later claim wins.
func NewSectionTable(directives ...SectionDirective) (*SectionTable, error) {
	if len(directives) == 0 {
		return nil, fmt.Errorf("section table: no sections")
	}
	t := &SectionTable{
		directives: directives,
		owner:      make(map[ObjectName]Section),
	}
	for i, d := range directives {
		for _, name := range d.Visible {
			if _, seen := t.owner[name]; !seen {
				t.objects = append(t.objects, name)
			}
			t.owner[name] = Section(i)
		}
	}
	return t, nil
}

// DefaultSections returns the three-section presentation.
func DefaultSections() *SectionTable {
	t, _ := NewSectionTable(
		SectionDirective{
			Name:      "galaxy",
			Camera:    CameraPose{Position: math.V3(0, 2, 5)},
			Visible:   []ObjectName{Galaxy, Sun},
			ShowPanel: true,
		},
		SectionDirective{
			Name:    "cube",
			Camera:  CameraPose{Position: math.V3(0, 0, 5)},
			Visible: []ObjectName{Cube},
		},
		SectionDirective{
			Name:    "model",
			Camera:  CameraPose{Position: math.V3(0, 5, 0), LookAt: math.V3(0, -3, 0)},
			Visible: []ObjectName{Model, Particles},
		},
	)
	return t
}

// WithBackground returns a copy of the table whose sections all clear to c.
func (t *SectionTable) WithBackground(c galaxy.Color) *SectionTable {
	dirs := make([]SectionDirective, len(t.directives))
	copy(dirs, t.directives)
	for i := range dirs {
		dirs[i].Background = c
	}
	out, _ := NewSectionTable(dirs...)
	return out
}

// Len returns the number of sections.
func (t *SectionTable) Len() int {
	return len(t.directives)
}

// Clamp maps any index into the table: negatives to the first section,
// indices past the end to the last.
func (t *SectionTable) Clamp(s Section) Section {
	switch {
	case s < 0:
		return 0
	case int(s) >= len(t.directives):
		return Section(len(t.directives) - 1)
	}
	return s
}

// Directive returns the directive for s after clamping.
func (t *SectionTable) Directive(s Section) SectionDirective {
	return t.directives[t.Clamp(s)]
}

// Visible reports whether name is shown in section s.
func (t *SectionTable) Visible(name ObjectName, s Section) bool {
	owner, ok := t.owner[name]
	return ok && owner == t.Clamp(s)
}

// Objects lists every section-gated object.
func (t *SectionTable) Objects() []ObjectName {
	return t.objects
}

// SectionFor maps a scroll offset to a section index:
// floor(offset / viewportHeight), clamped into the table.
func (t *SectionTable) SectionFor(offset, viewportHeight float64) Section {
	idx := gomath.Floor(offset / viewportHeight)
	if gomath.IsNaN(idx) || idx < 0 {
		return 0
	}
	if idx >= float64(len(t.directives)) {
		return Section(len(t.directives) - 1)
	}
	return Section(idx)
}
