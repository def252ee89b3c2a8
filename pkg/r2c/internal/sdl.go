package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// Init brings up SDL, the window, fonts, controllers and, outside
// development mode, the power button reader.
func Init(title string, winOpts WindowOptions, pbc PowerButtonConfig) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return fmt.Errorf("ttf init: %w", err)
	}
	if err := img.Init(img.INIT_PNG); err != nil {
		logging.GetInternalLogger().Warn("SDL_image PNG support unavailable", "error", err)
	}

	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")

	InitInputProcessor()

	if winOpts.IsZero() {
		if constants.IsDevMode() {
			winOpts = DevWindowOptions()
		} else {
			winOpts = KioskWindowOptions()
		}
	}

	w, err := initWindow(title, winOpts)
	if err != nil {
		quit()
		return err
	}
	window = w

	if !constants.IsDevMode() {
		sdl.ShowCursor(sdl.DISABLE)
	}

	if err := initFonts(DefaultFontSizes, GetTheme().FontPath, window.GetWidth()); err != nil {
		window.closeWindow()
		window = nil
		quit()
		return err
	}

	if !constants.IsDevMode() && pbc.DevicePath != "" {
		pb, err := StartPowerButton(pbc)
		if err != nil {
			logging.GetInternalLogger().Warn("Power button unavailable", "error", err)
		} else {
			window.PowerButton = pb
		}
	}

	return nil
}

func quit() {
	CloseAllControllers()
	img.Quit()
	ttf.Quit()
	sdl.Quit()
}

func SDLCleanup() {
	if window != nil {
		window.closeWindow()
		window = nil
	}
	closeFonts()
	quit()
}
