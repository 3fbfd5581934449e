// Package ui provides the ImGui host window and the galaxy configuration panel.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/starscroll/internal/logger"
	"github.com/Faultbox/starscroll/pkg/galaxy"
)

// FrameInput is the per-frame input readout taken from ImGui.
type FrameInput struct {
	Width, Height float32 // display size in pixels
	Wheel         float32 // vertical wheel notches, positive = away from the user
	MouseX        float32
	MouseY        float32
	MouseDown     bool
	// WantMouse is set while a panel widget owns the pointer; scene
	// clicks and wheel scrolling must be ignored then.
	WantMouse bool
	DeltaTime float32
}

// Host wraps the ImGui SDL backend.
type Host struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
	log     *zap.Logger
}

// NewHost creates the window and its OpenGL context.
func NewHost(title string, width, height int32, bg galaxy.Color, log *zap.Logger) (*Host, error) {
	h := &Host{
		width:  width,
		height: height,
		log:    logger.OrNamed(log, "ui"),
	}

	var err error
	h.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	h.backend.SetBgColor(imgui.NewVec4(bg.R, bg.G, bg.B, 1.0))
	h.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	h.log.Info("host window created",
		zap.String("title", title),
		zap.Int32("width", width),
		zap.Int32("height", height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
	)
	return h, nil
}

// Run starts the main render loop. It returns when the window closes.
func (h *Host) Run(renderFunc func()) {
	h.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (h *Host) SetWindowTitle(title string) {
	h.backend.SetWindowTitle(title)
}

// SetBackground changes the clear colour behind every ImGui window.
func (h *Host) SetBackground(c galaxy.Color) {
	h.backend.SetBgColor(imgui.NewVec4(c.R, c.G, c.B, 1.0))
}

// Viewport returns the main viewport work area.
func (h *Host) Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// Input reads this frame's pointer, wheel and display state.
func (h *Host) Input() FrameInput {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	mouse := imgui.MousePos()
	return FrameInput{
		Width:     size.X,
		Height:    size.Y,
		Wheel:     io.MouseWheel(),
		MouseX:    mouse.X,
		MouseY:    mouse.Y,
		MouseDown: imgui.IsMouseDown(imgui.MouseButtonLeft),
		WantMouse: io.WantCaptureMouse(),
		DeltaTime: io.DeltaTime(),
	}
}

// DrawSceneTexture fills the given rectangle with a rendered scene
// texture. The texture is flipped because OpenGL stores rows bottom-up.
func DrawSceneTexture(x, y, w, h float32, textureID uint32) {
	if textureID == 0 {
		return
	}

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w, h))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(w, h),
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// DrawStatus shows a short message centred near the bottom of the viewport.
func DrawStatus(msg string, width, height float32) {
	if msg == "" {
		return
	}
	msgWidth := float32(360)
	imgui.SetNextWindowPos(imgui.NewVec2((width-msgWidth)/2, height-60))
	imgui.SetNextWindowSize(imgui.NewVec2(msgWidth, 0))
	imgui.SetNextWindowBgAlpha(0.8)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("##Status", nil, flags) {
		imgui.Text(msg)
	}
	imgui.End()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
