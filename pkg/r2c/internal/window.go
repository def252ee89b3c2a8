package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// Window wraps the SDL window and renderer.
type Window struct {
	Window      *sdl.Window
	Renderer    *sdl.Renderer
	Title       string
	PowerButton *PowerButton

	hasVSync        bool
	lastPresentTime uint64
}

var window *Window

func GetWindow() *Window {
	return window
}

func initWindow(title string, winOpts WindowOptions) (*Window, error) {
	displayMode, err := sdl.GetCurrentDisplayMode(0)
	if err != nil {
		logging.GetInternalLogger().Error("Failed to get display mode", "error", err)
		displayMode.W, displayMode.H = constants.DefaultDevWidth, constants.DefaultDevHeight
	}
	return initWindowWithSize(title, displayMode.W, displayMode.H, winOpts)
}

func envSize(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		logging.GetInternalLogger().Warn("Invalid window size; using default", "variable", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func initWindowWithSize(title string, width, height int32, winOpts WindowOptions) (*Window, error) {
	logger := logging.GetInternalLogger()
	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)

	if constants.IsDevMode() {
		winOpts.Borderless = false
		winOpts.FullscreenDesktop = false
		x, y = 50, 50
		width = envSize(constants.WindowWidthEnvVar, constants.DefaultDevWidth)
		height = envSize(constants.WindowHeightEnvVar, constants.DefaultDevHeight)
	}

	logger.Debug("Initializing SDL Window", "width", width, "height", height, "flags", winOpts.ToSDLFlags())

	w, err := sdl.CreateWindow(title, x, y, width, height, winOpts.ToSDLFlags())
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(w, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		logger.Warn("Accelerated renderer unavailable, falling back to software", "error", err)
		renderer, err = sdl.CreateRenderer(w, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			w.Destroy()
			return nil, fmt.Errorf("create renderer: %w", err)
		}
	}

	renderer.SetLogicalSize(width, height)
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   w,
		Renderer: renderer,
		Title:    title,
		hasVSync: vsync,
	}, nil
}

func (window *Window) closeWindow() {
	if window.PowerButton != nil {
		if err := window.PowerButton.Close(); err != nil {
			logging.GetInternalLogger().Debug("Closing power button device", "error", err)
		}
		window.PowerButton = nil
	}
	window.Renderer.Destroy()
	window.Window.Destroy()
}

// Size returns the logical render size.
func (window *Window) Size() (int32, int32) {
	w, h := window.Renderer.GetLogicalSize()
	if w == 0 || h == 0 {
		return window.Window.GetSize()
	}
	return w, h
}

func (window *Window) GetWidth() int32 {
	w, _ := window.Size()
	return w
}

func (window *Window) GetHeight() int32 {
	_, h := window.Size()
	return h
}

// Clear fills the frame with the theme background.
func (window *Window) Clear() {
	bg := GetTheme().BackgroundColor
	window.Renderer.SetDrawColor(bg.R, bg.G, bg.B, 255)
	window.Renderer.Clear()
}

// Present swaps the render buffer and holds ~60fps when VSync is not
// available.
func (window *Window) Present() {
	window.Renderer.Present()
	if !window.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - window.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		window.lastPresentTime = sdl.GetTicks64()
	}
}
