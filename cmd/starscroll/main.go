// Package main is the desktop starscroll host: the scene fills an ImGui
// window and the galaxy panel floats over the first section.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/app"
	"github.com/Faultbox/starscroll/internal/config"
	"github.com/Faultbox/starscroll/internal/engine/input"
	"github.com/Faultbox/starscroll/internal/engine/ui"
	"github.com/Faultbox/starscroll/internal/logger"
)

const (
	windowTitle = "Starscroll"
	statusTime  = 3 * time.Second
)

func main() {
	runtime.LockOSThread()

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

	logger.Info("=== Starscroll ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	width, height := int32(cfg.Graphics.Width), int32(cfg.Graphics.Height)
	host, err := ui.NewHost(windowTitle, width, height, cfg.Scene.Background, logger.Log)
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		os.Exit(1)
	}

	p, svc, err := app.Build(cfg, int(width), int(height), logger.Log)
	if err != nil {
		logger.Error("failed to start showcase", zap.Error(err))
		os.Exit(1)
	}
	defer svc.Close()
	defer p.Close()

	panel := ui.NewGalaxyPanel(p.Params(), p.Regenerate, logger.Log)

	var (
		pointer     input.Pointer
		status      string
		statusUntil time.Time
	)
	showStatus := func(msg string) {
		status, statusUntil = msg, time.Now().Add(statusTime)
	}

	host.Run(func() {
		in := host.Input()
		vx, vy, vw, vh := host.Viewport()
		p.Resize(int(vw), int(vh))

		// Widgets own the mouse while hovered; the page must not scroll
		// or pick underneath them.
		if !in.WantMouse {
			p.Scroll(in.Wheel)
			pointer.Update(in.MouseX-vx, in.MouseY-vy, in.MouseDown)
			if x, y, ok := pointer.Click(); ok {
				if name := p.Click(x, y); name != "" {
					logger.Debug("clicked", zap.String("object", string(name)))
				}
			}
		} else {
			pointer.Update(in.MouseX-vx, in.MouseY-vy, false)
		}

		_, h := p.Size()
		switch {
		case ui.IsKeyPressed(imgui.KeyPageDown), ui.IsKeyPressed(imgui.KeyDownArrow):
			p.SetScrollOffset(p.ScrollOffset() + float64(h))
		case ui.IsKeyPressed(imgui.KeyPageUp), ui.IsKeyPressed(imgui.KeyUpArrow):
			p.SetScrollOffset(p.ScrollOffset() - float64(h))
		case ui.IsKeyPressed(imgui.KeyHome):
			p.SetScrollOffset(0)
		}

		tex := p.Frame(in.DeltaTime)

		if ui.IsKeyPressed(imgui.KeyF12) {
			if path, err := svc.Screenshot(p.Section().String()); err != nil {
				showStatus(err.Error())
			} else {
				showStatus("Saved " + path)
			}
		}

		ui.DrawSceneTexture(vx, vy, vw, vh, tex)
		panel.Render(p.PanelVisible(), vx, vy, vw)
		if time.Now().Before(statusUntil) {
			ui.DrawStatus(status, vw, vh)
		}
	})

	logger.Info("starscroll closed normally")
}
