package showcase

import (
	gomath "math"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/starscroll/pkg/galaxy"
	"github.com/Faultbox/starscroll/pkg/math"
)

// recordingStage forwards visibility to a registry and records every directive.
type recordingStage struct {
	reg     *Registry
	events  []string
	camera  CameraPose
	panel   bool
	bundles int
}

func (s *recordingStage) SetBackground(c galaxy.Color) {
	s.bundles++
	s.events = append(s.events, "background:"+c.Hex())
	s.reg.SetBackground(c)
}

func (s *recordingStage) SetVisible(name ObjectName, visible bool) bool {
	s.events = append(s.events, "visible:"+string(name))
	return s.reg.SetVisible(name, visible)
}

func (s *recordingStage) SetCameraPose(pose CameraPose) {
	s.events = append(s.events, "camera")
	s.camera = pose
}

func (s *recordingStage) SetPanelVisible(visible bool) {
	s.events = append(s.events, "panel")
	s.panel = visible
}

func newTestController(t *testing.T, names ...ObjectName) (*Controller, *recordingStage, *Registry) {
	t.Helper()
	reg := NewRegistry(zaptest.NewLogger(t))
	for _, n := range names {
		reg.Register(NewObject(n, nil))
	}
	stage := &recordingStage{reg: reg}
	return NewController(DefaultSections(), stage, zaptest.NewLogger(t)), stage, reg
}

func visible(t *testing.T, reg *Registry, name ObjectName) bool {
	t.Helper()
	obj, ok := reg.Get(name)
	if !ok {
		t.Fatalf("object %s missing", name)
	}
	return obj.Visible
}

func TestSectionFor(t *testing.T) {
	table := DefaultSections()
	tests := []struct {
		offset, height float64
		want           Section
	}{
		{0, 800, SectionGalaxy},
		{799, 800, SectionGalaxy},
		{800, 800, SectionCube},
		{850, 800, SectionCube},
		{1650, 800, SectionModel},
		{5000, 800, SectionModel},
		{-10, 800, SectionGalaxy},
		{gomath.NaN(), 800, SectionGalaxy},
	}
	for _, tt := range tests {
		if got := table.SectionFor(tt.offset, tt.height); got != tt.want {
			t.Errorf("SectionFor(%v, %v) = %v, want %v", tt.offset, tt.height, got, tt.want)
		}
	}
}

func TestScrollScenario(t *testing.T) {
	c, stage, reg := newTestController(t, Galaxy, Sun, Cube, Model, Particles)

	// Section 0 is the initial state: no transition.
	if c.OnScroll(0, 800) {
		t.Error("OnScroll(0) transitioned from the initial section")
	}
	c.Apply()
	if stage.camera.Position != math.V3(0, 2, 5) || stage.camera.LookAt != (math.Vec3{}) || !stage.panel {
		t.Errorf("section 0: camera %+v panel %v", stage.camera, stage.panel)
	}
	if !visible(t, reg, Galaxy) || !visible(t, reg, Sun) || visible(t, reg, Cube) {
		t.Error("section 0 visibility wrong")
	}

	if !c.OnScroll(850, 800) || c.Current() != SectionCube {
		t.Fatalf("OnScroll(850) current = %v, want cube", c.Current())
	}
	if stage.camera.Position != math.V3(0, 0, 5) || stage.camera.LookAt != (math.Vec3{}) || stage.panel {
		t.Errorf("section 1: camera %+v panel %v", stage.camera, stage.panel)
	}
	if visible(t, reg, Galaxy) || !visible(t, reg, Cube) || visible(t, reg, Model) {
		t.Error("section 1 visibility wrong")
	}

	if !c.OnScroll(1650, 800) || c.Current() != SectionModel {
		t.Fatalf("OnScroll(1650) current = %v, want model", c.Current())
	}
	if stage.camera.Position != math.V3(0, 5, 0) || stage.camera.LookAt != math.V3(0, -3, 0) || stage.panel {
		t.Errorf("section 2: camera %+v panel %v", stage.camera, stage.panel)
	}
	if !visible(t, reg, Model) || !visible(t, reg, Particles) || visible(t, reg, Cube) || visible(t, reg, Sun) {
		t.Error("section 2 visibility wrong")
	}
	if reg.Background() != (galaxy.Color{}) {
		t.Errorf("background = %v, want black", reg.Background())
	}
}

func TestScrollDebounce(t *testing.T) {
	c, stage, _ := newTestController(t, Galaxy, Cube)

	c.OnScroll(850, 800)
	if stage.bundles != 1 {
		t.Fatalf("bundles after first transition = %d, want 1", stage.bundles)
	}
	for _, off := range []float64{801, 900, 1200, 1599} {
		if c.OnScroll(off, 800) {
			t.Errorf("OnScroll(%v) re-emitted within the same section", off)
		}
	}
	if stage.bundles != 1 {
		t.Errorf("bundles = %d, want 1", stage.bundles)
	}
}

func TestDirectiveOrder(t *testing.T) {
	c, stage, _ := newTestController(t, Galaxy, Sun, Cube, Model, Particles)
	c.OnScroll(850, 800)

	want := []string{
		"background:#000000",
		"visible:galaxy", "visible:sun", "visible:cube", "visible:model", "visible:particles",
		"camera", "panel",
	}
	if len(stage.events) != len(want) {
		t.Fatalf("events = %v, want %v", stage.events, want)
	}
	for i := range want {
		if stage.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, stage.events[i], want[i])
		}
	}
}

func TestMissingObjectsSkipped(t *testing.T) {
	// Only the cube exists; the model is still loading.
	c, stage, reg := newTestController(t, Cube)

	c.OnScroll(1700, 800)
	if c.Current() != SectionModel {
		t.Fatalf("current = %v, want model", c.Current())
	}
	if visible(t, reg, Cube) {
		t.Error("cube still visible in section 2")
	}
	if stage.camera.Position != math.V3(0, 5, 0) {
		t.Error("camera directive skipped after missing objects")
	}
}

func TestClampBeyondLastSection(t *testing.T) {
	c, stage, reg := newTestController(t, Model, Cube)

	c.OnScroll(800*7, 800)
	if c.Current() != SectionModel {
		t.Fatalf("current = %v, want clamp to model", c.Current())
	}
	if !visible(t, reg, Model) || stage.camera.LookAt != math.V3(0, -3, 0) {
		t.Error("clamped section did not apply the last directive")
	}
	// Further scrolling past the end stays in the same section.
	if c.OnScroll(800*9, 800) {
		t.Error("scrolling beyond the end re-emitted directives")
	}
}

func TestNegativeOffset(t *testing.T) {
	c, _, _ := newTestController(t)
	c.OnScroll(900, 800)
	if !c.OnScroll(-50, 800) || c.Current() != SectionGalaxy {
		t.Errorf("negative offset: current = %v, want galaxy", c.Current())
	}
}

func TestBadViewportHeightIgnored(t *testing.T) {
	c, stage, _ := newTestController(t)
	for _, h := range []float64{0, -800, gomath.NaN(), gomath.Inf(1)} {
		if c.OnScroll(2000, h) {
			t.Errorf("OnScroll with height %v transitioned", h)
		}
	}
	if stage.bundles != 0 || c.Current() != SectionGalaxy {
		t.Errorf("state changed: bundles=%d current=%v", stage.bundles, c.Current())
	}
}

func TestSyncObjectEager(t *testing.T) {
	c, _, reg := newTestController(t, Cube)
	reg.OnRegister(c.SyncObject)

	c.OnScroll(1650, 800)

	// The model arrives mid-section and must show immediately.
	reg.Register(NewObject(Model, nil))
	if !visible(t, reg, Model) {
		t.Error("model registered in its section is hidden")
	}

	// The galaxy arriving in section 2 must stay hidden.
	reg.Register(NewObject(Galaxy, nil))
	if visible(t, reg, Galaxy) {
		t.Error("galaxy registered outside its section is visible")
	}
}

func TestNewSectionTableEmpty(t *testing.T) {
	if _, err := NewSectionTable(); err == nil {
		t.Error("NewSectionTable() accepted an empty table")
	}
}

func TestSectionString(t *testing.T) {
	if SectionModel.String() != "model" || Section(7).String() != "section(7)" {
		t.Errorf("String() = %q, %q", SectionModel.String(), Section(7).String())
	}
}

func TestWithBackground(t *testing.T) {
	base := DefaultSections()
	grey := galaxy.Color{R: 0.5, G: 0.5, B: 0.5}
	tinted := base.WithBackground(grey)

	for s := Section(0); int(s) < tinted.Len(); s++ {
		if got := tinted.Directive(s).Background; got != grey {
			t.Errorf("section %v background = %+v", s, got)
		}
		if base.Directive(s).Background != (galaxy.Color{}) {
			t.Errorf("section %v of the original table changed", s)
		}
	}
	if !tinted.Visible(Cube, SectionCube) {
		t.Error("visibility lost in copy")
	}
}
