// Package main is the kiosk starscroll host: a bare SDL window that only
// presents the scroll sections, without the configuration panel.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/app"
	"github.com/Faultbox/starscroll/internal/config"
	"github.com/Faultbox/starscroll/internal/engine/input"
	"github.com/Faultbox/starscroll/internal/engine/window"
	"github.com/Faultbox/starscroll/internal/logger"
)

const windowTitle = "Starscroll"

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Starscroll (kiosk) ===")

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Log)
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		os.Exit(1)
	}
	defer win.Close()

	// The scene renders at drawable (pixel) size; SDL reports the pointer
	// in window coordinates, which differ on HiDPI displays.
	dw, dh := win.DrawableSize()
	p, svc, err := app.Build(cfg, dw, dh, logger.Log)
	if err != nil {
		logger.Error("failed to start showcase", zap.Error(err))
		os.Exit(1)
	}
	defer svc.Close()
	defer p.Close()

	var frameBudget time.Duration
	if cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	in := input.New()
	var pointer input.Pointer
	mouseDown := false
	last := time.Now()

	for {
		if in.Pump() || in.KeyPressed(sdl.SCANCODE_ESCAPE) {
			break
		}

		ww, _ := win.Size()
		scale := float32(1)
		if ww > 0 {
			scale = float32(dw) / float32(ww)
		}

		for _, e := range in.Events() {
			switch e.Type {
			case input.EventWindowResize:
				dw, dh = win.DrawableSize()
				p.Resize(dw, dh)
			case input.EventMouseDown, input.EventMouseUp, input.EventMouseMove:
				if e.Button == sdl.BUTTON_LEFT {
					mouseDown = e.Type == input.EventMouseDown
				}
				pointer.Update(float32(e.MouseX)*scale, float32(e.MouseY)*scale, mouseDown)
				if x, y, ok := pointer.Click(); ok {
					p.Click(x, y)
				}
			}
		}

		p.Scroll(in.WheelDelta())
		switch {
		case in.KeyPressed(sdl.SCANCODE_PAGEDOWN), in.KeyPressed(sdl.SCANCODE_DOWN), in.KeyPressed(sdl.SCANCODE_SPACE):
			p.SetScrollOffset(p.ScrollOffset() + float64(dh))
		case in.KeyPressed(sdl.SCANCODE_PAGEUP), in.KeyPressed(sdl.SCANCODE_UP):
			p.SetScrollOffset(p.ScrollOffset() - float64(dh))
		case in.KeyPressed(sdl.SCANCODE_HOME):
			p.SetScrollOffset(0)
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		p.Frame(dt)
		svc.Renderer.Framebuffer().BlitToScreen(int32(dw), int32(dh))

		if in.KeyPressed(sdl.SCANCODE_F12) {
			if _, err := svc.Screenshot(p.Section().String()); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}

		win.SwapBuffers()

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	logger.Info("starscroll closed normally")
}
