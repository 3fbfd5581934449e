package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/assets"
	"github.com/Faultbox/starscroll/internal/config"
	"github.com/Faultbox/starscroll/internal/engine/audio"
	"github.com/Faultbox/starscroll/internal/engine/debug"
	"github.com/Faultbox/starscroll/internal/engine/scene"
	"github.com/Faultbox/starscroll/internal/logger"
)

// Services are the GL, asset and audio backends behind a presenter.
type Services struct {
	Assets   *assets.Manager
	Audio    *audio.Manager
	Renderer *scene.Renderer

	shots *debug.ScreenshotCapture
	log   *zap.Logger
}

// Build creates the services and a started presenter. The caller's GL
// context must be current. Audio problems only silence the click.
func Build(cfg *config.Config, width, height int, log *zap.Logger) (*Presenter, *Services, error) {
	log = logger.OrNamed(log, "app")
	s := &Services{
		Assets: assets.NewManager(cfg.Assets.Dir, log.Named("assets")),
		Audio:  audio.New(),
		shots:  debug.NewScreenshotCapture(cfg.Scene.ScreenshotDir, "starscroll"),
		log:    log,
	}

	renderer, err := scene.New(int32(width), int32(height), s.Assets.Image, log.Named("scene"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating renderer: %w", err)
	}
	s.Renderer = renderer

	p, err := New(cfg, Deps{
		Renderer: renderer,
		Models:   s.Assets,
		Sound:    s.clickPlayer(cfg),
	}, width, height, log)
	if err != nil {
		renderer.Destroy()
		return nil, nil, err
	}

	if err := p.Start(); err != nil {
		p.Close()
		s.Audio.Close()
		return nil, nil, err
	}
	return p, s, nil
}

func (s *Services) clickPlayer(cfg *config.Config) *audio.ClickPlayer {
	log := s.log.Named("audio")
	s.Audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	s.Audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	s.Audio.SetMuted(cfg.Audio.Muted)
	if cfg.Audio.Muted || cfg.Assets.ClickSound == "" {
		return audio.NewClickPlayer(nil, nil, log)
	}

	if err := s.Audio.Init(); err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		return audio.NewClickPlayer(nil, nil, log)
	}
	clip, err := s.Assets.Clip(cfg.Assets.ClickSound)
	if err != nil {
		log.Warn("click sound unavailable", zap.String("name", cfg.Assets.ClickSound), zap.Error(err))
	}
	return audio.NewClickPlayer(s.Audio, clip, log)
}

// Screenshot saves the last rendered frame, tagged with the section name.
func (s *Services) Screenshot(tag string) (string, error) {
	path, err := s.shots.Capture(s.Renderer.Framebuffer().Snapshot(), tag)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	s.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

// Close stops audio and drops cached assets. The renderer is destroyed
// by Presenter.Close.
func (s *Services) Close() {
	s.Audio.Close()
	s.Assets.Close()
}
