package showcase

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/starscroll/pkg/galaxy"
)

type fakeResource struct {
	id       int
	owner    *fakeUploader
	released bool
	fail     bool
}

func (r *fakeResource) Release() error {
	r.released = true
	r.owner.live--
	if r.fail {
		return errors.New("driver lost")
	}
	return nil
}

type fakeUploader struct {
	uploads   int
	live      int
	failNext  bool
	lastStyle PointStyle
	resources []*fakeResource
}

func (u *fakeUploader) UploadCloud(cloud *galaxy.PointCloud, style PointStyle) (Resource, error) {
	if u.failNext {
		u.failNext = false
		return nil, errors.New("out of memory")
	}
	u.uploads++
	u.live++
	u.lastStyle = style
	r := &fakeResource{id: u.uploads, owner: u}
	u.resources = append(u.resources, r)
	return r, nil
}

func smallParams(count int) galaxy.Parameters {
	p := galaxy.DefaultParameters()
	p.Count = count
	return p
}

func TestGenerateInstalls(t *testing.T) {
	reg := NewRegistry(zaptest.NewLogger(t))
	up := &fakeUploader{}
	g := NewGenerator(reg, up, galaxy.NewSource(1), PointStyle{AlphaMap: "9.png"}, zaptest.NewLogger(t))

	if err := g.Generate(smallParams(500)); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	obj, ok := reg.Get(Galaxy)
	if !ok || obj.Resource != up.resources[0] {
		t.Fatal("galaxy not registered with the uploaded resource")
	}
	if g.Live().Len() != 500 || g.Params().Count != 500 {
		t.Errorf("Live().Len() = %d, Params().Count = %d", g.Live().Len(), g.Params().Count)
	}
	if up.lastStyle.Size != 0.01 || up.lastStyle.AlphaMap != "9.png" {
		t.Errorf("style = %+v", up.lastStyle)
	}
}

func TestResourceExclusivity(t *testing.T) {
	reg := NewRegistry(zaptest.NewLogger(t))
	up := &fakeUploader{}
	g := NewGenerator(reg, up, galaxy.NewSource(2), PointStyle{}, zaptest.NewLogger(t))

	const n = 12
	for i := 0; i < n; i++ {
		if err := g.Generate(smallParams(100 + i*100)); err != nil {
			t.Fatalf("Generate #%d error = %v", i, err)
		}
		if up.live != 1 {
			t.Fatalf("after generation %d: %d live resources, want 1", i, up.live)
		}
	}
	for i, r := range up.resources[:n-1] {
		if !r.released {
			t.Errorf("resource %d not released", i)
		}
	}
	if up.resources[n-1].released {
		t.Error("current resource released")
	}

	g.Release()
	if up.live != 0 {
		t.Errorf("Release() left %d live resources", up.live)
	}
	if _, ok := reg.Get(Galaxy); ok {
		t.Error("galaxy still registered after Release()")
	}
}

func TestInvalidConfigurationKeepsPrevious(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	reg := NewRegistry(zaptest.NewLogger(t))
	up := &fakeUploader{}
	g := NewGenerator(reg, up, galaxy.NewSource(3), PointStyle{}, zap.New(core))

	if err := g.Generate(smallParams(300)); err != nil {
		t.Fatal(err)
	}
	before := g.Live()
	beforeObj, _ := reg.Get(Galaxy)

	err := g.Generate(smallParams(0))
	if !errors.Is(err, galaxy.ErrInvalidConfiguration) {
		t.Fatalf("Generate(count=0) error = %v, want ErrInvalidConfiguration", err)
	}
	if g.Live() != before || g.Params().Count != 300 {
		t.Error("previous galaxy replaced by an invalid request")
	}
	if obj, _ := reg.Get(Galaxy); obj != beforeObj || up.resources[0].released {
		t.Error("previous galaxy resource touched by an invalid request")
	}
	if up.uploads != 1 {
		t.Errorf("uploads = %d, want 1", up.uploads)
	}
	if g.LastError() == nil {
		t.Error("LastError() = nil after rejection")
	}
	if logs.FilterMessage("galaxy parameters rejected, keeping current galaxy").Len() != 1 {
		t.Errorf("rejection diagnostic not logged: %v", logs.All())
	}

	// A valid request clears the diagnostic.
	if err := g.Generate(smallParams(200)); err != nil || g.LastError() != nil {
		t.Errorf("recovery Generate() = %v, LastError() = %v", err, g.LastError())
	}
}

func TestReleaseFailureLoggedAndIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	reg := NewRegistry(zaptest.NewLogger(t))
	up := &fakeUploader{}
	g := NewGenerator(reg, up, galaxy.NewSource(4), PointStyle{}, zap.New(core))

	if err := g.Generate(smallParams(100)); err != nil {
		t.Fatal(err)
	}
	up.resources[0].fail = true

	if err := g.Generate(smallParams(200)); err != nil {
		t.Fatalf("Generate() after release failure error = %v", err)
	}
	if g.Live().Len() != 200 {
		t.Errorf("Live().Len() = %d, want 200", g.Live().Len())
	}

	entries := logs.FilterMessage("previous galaxy not released").All()
	if len(entries) != 1 {
		t.Fatalf("release failure logged %d times, want 1", len(entries))
	}
	if err, ok := entries[0].ContextMap()["error"].(string); !ok || err == "" {
		t.Errorf("log entry missing error field: %v", entries[0].ContextMap())
	}
}

func TestGenerateKeepsVisibilityAndSpin(t *testing.T) {
	reg := NewRegistry(zaptest.NewLogger(t))
	g := NewGenerator(reg, &fakeUploader{}, galaxy.NewSource(5), PointStyle{}, zaptest.NewLogger(t))

	if err := g.Generate(smallParams(100)); err != nil {
		t.Fatal(err)
	}
	obj, _ := reg.Get(Galaxy)
	obj.Visible = false
	obj.Rotation.Y = 1.25

	if err := g.Generate(smallParams(200)); err != nil {
		t.Fatal(err)
	}
	obj, _ = reg.Get(Galaxy)
	if obj.Visible || obj.Rotation.Y != 1.25 {
		t.Errorf("regenerated galaxy visible=%v yaw=%v, want hidden at 1.25", obj.Visible, obj.Rotation.Y)
	}
}

func TestUploadFailure(t *testing.T) {
	reg := NewRegistry(zaptest.NewLogger(t))
	up := &fakeUploader{failNext: true}
	g := NewGenerator(reg, up, galaxy.NewSource(6), PointStyle{}, zaptest.NewLogger(t))

	if err := g.Generate(smallParams(100)); err == nil {
		t.Fatal("Generate() succeeded with a failing uploader")
	}
	if _, ok := reg.Get(Galaxy); ok || g.Live() != nil {
		t.Error("failed upload installed a galaxy")
	}
}
