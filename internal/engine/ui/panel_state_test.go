package ui

import (
	"errors"
	"testing"

	"github.com/Faultbox/starscroll/pkg/galaxy"
)

func TestPanelCommitOnlyWhenChanged(t *testing.T) {
	s := NewPanelState(galaxy.DefaultParameters())
	calls := 0
	apply := func(galaxy.Parameters) error { calls++; return nil }

	if applied, _ := s.Commit(false, apply); applied {
		t.Error("Commit() applied unchanged parameters")
	}

	s.Draft().Branches = 5
	if !s.Dirty() {
		t.Fatal("Dirty() = false after edit")
	}
	if applied, err := s.Commit(false, apply); !applied || err != nil {
		t.Fatalf("Commit() = %v, %v", applied, err)
	}
	if s.Committed().Branches != 5 || s.Dirty() {
		t.Errorf("committed branches = %d, dirty = %v", s.Committed().Branches, s.Dirty())
	}

	if applied, _ := s.Commit(true, apply); !applied {
		t.Error("forced Commit() did not apply")
	}
	if calls != 2 {
		t.Errorf("apply called %d times, want 2", calls)
	}
}

func TestPanelCommitClamps(t *testing.T) {
	s := NewPanelState(galaxy.DefaultParameters())
	s.Draft().Count = 12345
	s.Draft().Branches = 50

	var got galaxy.Parameters
	s.Commit(false, func(p galaxy.Parameters) error { got = p; return nil })

	if got.Count != 12300 {
		t.Errorf("count = %d, want 12300", got.Count)
	}
	if got.Branches != 20 {
		t.Errorf("branches = %d, want 20", got.Branches)
	}
}

func TestPanelRejectedKeepsDraft(t *testing.T) {
	base := galaxy.DefaultParameters()
	s := NewPanelState(base)
	s.Draft().Spin = 2

	reject := errors.New("galaxy spin: nope")
	applied, err := s.Commit(false, func(galaxy.Parameters) error { return reject })
	if !applied || !errors.Is(err, reject) {
		t.Fatalf("Commit() = %v, %v", applied, err)
	}
	if s.Diagnostic() != reject.Error() {
		t.Errorf("Diagnostic() = %q", s.Diagnostic())
	}
	if s.Committed() != base {
		t.Error("committed parameters changed after rejection")
	}
	if s.Draft().Spin != 2 {
		t.Error("draft lost after rejection")
	}

	s.Commit(false, func(galaxy.Parameters) error { return nil })
	if s.Diagnostic() != "" {
		t.Errorf("Diagnostic() = %q after successful commit", s.Diagnostic())
	}
}

func TestPanelRevertAndSync(t *testing.T) {
	s := NewPanelState(galaxy.DefaultParameters())
	s.Draft().Radius = 9
	s.Revert()
	if s.Dirty() {
		t.Error("Dirty() after Revert()")
	}

	p := galaxy.DefaultParameters()
	p.Count = 500
	s.Sync(p)
	if s.Committed().Count != 500 || s.Draft().Count != 500 {
		t.Errorf("Sync() not adopted: %+v", s.Committed())
	}
}
