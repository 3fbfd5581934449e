package audio

import (
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/logger"
)

// ClickPlayer plays one preloaded clip on demand. A nil clip or manager
// makes it silent.
type ClickPlayer struct {
	manager *Manager
	clip    *Clip
	log     *zap.Logger
}

// NewClickPlayer binds a clip to a manager.
func NewClickPlayer(m *Manager, clip *Clip, log *zap.Logger) *ClickPlayer {
	return &ClickPlayer{manager: m, clip: clip, log: logger.OrNamed(log, "audio")}
}

// PlayClick plays the clip, logging failures.
func (p *ClickPlayer) PlayClick() {
	if p.manager == nil || p.clip == nil {
		return
	}
	if err := p.manager.Play(p.clip); err != nil {
		p.log.Warn("click sound not played", zap.Error(err))
	}
}
