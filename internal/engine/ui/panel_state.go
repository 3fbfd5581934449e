package ui

import (
	"github.com/Faultbox/starscroll/pkg/galaxy"
)

// PanelState holds the panel's draft parameters apart from the committed
// ones. Widgets edit the draft; only Commit hands values to the generator.
type PanelState struct {
	draft      galaxy.Parameters
	committed  galaxy.Parameters
	diagnostic string
}

// NewPanelState starts with the draft equal to the committed parameters.
func NewPanelState(p galaxy.Parameters) *PanelState {
	return &PanelState{draft: p, committed: p}
}

// Draft returns the editable copy bound to the widgets.
func (s *PanelState) Draft() *galaxy.Parameters {
	return &s.draft
}

// Committed returns the parameters of the live galaxy as far as the panel knows.
func (s *PanelState) Committed() galaxy.Parameters {
	return s.committed
}

// Dirty reports whether the draft differs from the committed parameters.
func (s *PanelState) Dirty() bool {
	return s.draft != s.committed
}

// Commit clamps the draft and, when it changed or force is set, passes it
// to apply. It reports whether apply ran. On success the draft becomes the
// committed state; on failure the error text becomes the diagnostic and the
// draft is kept for fixing.
func (s *PanelState) Commit(force bool, apply func(galaxy.Parameters) error) (bool, error) {
	s.draft = s.draft.Clamp()
	if !force && !s.Dirty() {
		return false, nil
	}
	if err := apply(s.draft); err != nil {
		s.diagnostic = err.Error()
		return true, err
	}
	s.committed = s.draft
	s.diagnostic = ""
	return true, nil
}

// Revert drops uncommitted edits.
func (s *PanelState) Revert() {
	s.draft = s.committed
}

// Sync adopts parameters changed elsewhere, keeping nothing of the draft.
func (s *PanelState) Sync(p galaxy.Parameters) {
	s.committed = p
	s.draft = p
}

// Diagnostic is the last rejection message, empty after a good commit.
func (s *PanelState) Diagnostic() string {
	return s.diagnostic
}
