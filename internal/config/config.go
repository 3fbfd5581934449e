// Package config handles starscroll configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/starscroll/pkg/galaxy"
)

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scroll   ScrollConfig   `yaml:"scroll"`
	Galaxy   GalaxyConfig   `yaml:"galaxy"`
	Scene    SceneConfig    `yaml:"scene"`
	Assets   AssetsConfig   `yaml:"assets"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and camera settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// ScrollConfig holds page scrolling settings.
type ScrollConfig struct {
	WheelStep float64 `yaml:"wheel_step"` // pixels per wheel notch
}

// GalaxyConfig holds the initial galaxy and its random seed.
type GalaxyConfig struct {
	galaxy.Parameters `yaml:",inline"`
	// Seed fixes the point layout; 0 picks a new one every run.
	Seed uint64 `yaml:"seed"`
}

// SceneConfig holds the decorative objects around the galaxy.
type SceneConfig struct {
	Background        galaxy.Color `yaml:"background"`
	ParticleCount     int          `yaml:"particle_count"`
	ParticleExtent    float32      `yaml:"particle_extent"`
	ParticleSize      float32      `yaml:"particle_size"`
	ParticleTint      galaxy.Color `yaml:"particle_tint"`
	SunRadius         float32      `yaml:"sun_radius"`
	ModelScale        float32      `yaml:"model_scale"`
	ModelClickedScale float32      `yaml:"model_clicked_scale"`
	ScreenshotDir     string       `yaml:"screenshot_dir"`
}

// AssetsConfig names the files loaded from the asset directory.
type AssetsConfig struct {
	Dir              string `yaml:"dir"`
	GalaxyAlphaMap   string `yaml:"galaxy_alpha_map"`
	ParticleAlphaMap string `yaml:"particle_alpha_map"`
	SunTexture       string `yaml:"sun_texture"`
	CubeTexture      string `yaml:"cube_texture"`
	Model            string `yaml:"model"`
	ClickSound       string `yaml:"click_sound"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        75,
			Near:       0.1,
			Far:        100,
		},
		Scroll: ScrollConfig{
			WheelStep: 100,
		},
		Galaxy: GalaxyConfig{
			Parameters: galaxy.DefaultParameters(),
		},
		Scene: SceneConfig{
			Background:        galaxy.Color{},
			ParticleCount:     50000,
			ParticleExtent:    10,
			ParticleSize:      0.1,
			ParticleTint:      galaxy.MustHex("#ff88cc"),
			SunRadius:         0.5,
			ModelScale:        5,
			ModelClickedScale: 7,
			ScreenshotDir:     "screenshots",
		},
		Assets: AssetsConfig{
			Dir:              "assets",
			GalaxyAlphaMap:   "textures/particles/9.png",
			ParticleAlphaMap: "textures/particles/12.png",
			SunTexture:       "textures/particles/sun.jpg",
			CubeTexture:      "textures/particles/14.png",
			Model:            "cat/scene.gltf",
			ClickSound:       "sounds/click.wav",
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is matched by every non-galaxy validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks the window, camera and galaxy settings. Galaxy
// failures match galaxy.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		invalid("window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		invalid("fov %g must lie in (0, 180)", c.Graphics.FOV)
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		invalid("clip planes near=%g far=%g", c.Graphics.Near, c.Graphics.Far)
	}
	if c.Scroll.WheelStep <= 0 {
		invalid("wheel step %g must be positive", c.Scroll.WheelStep)
	}
	if c.Scene.ParticleCount < 0 || c.Scene.ParticleCount > galaxy.MaxCount {
		invalid("particle count %d out of range", c.Scene.ParticleCount)
	}

	return multierr.Append(err, c.Galaxy.Validate())
}
