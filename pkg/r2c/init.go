// Package r2c is the SDL kiosk frontend of the reboot menu. It owns the
// window, fonts and input devices and draws the carousel, confirmation and
// progress screens.
//
// The navigation itself lives in the carousel package; this package only
// feeds it input, animates page transitions and renders its state.
package r2c

import (
	"image/color"
	"io"
	"log/slog"
	"time"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// Options configures Init.
type Options struct {
	WindowTitle   string                 // Window title displayed in windowed mode
	WindowOptions internal.WindowOptions // SDL window flags; zero picks kiosk or dev defaults
	Theme         *internal.Theme        // nil keeps the default theme
	FontPath      string                 // Overrides Theme.FontPath
	LogPath       string                 // Full path for log file including filename
	LogLevel      string                 // Application log level, e.g. "debug"

	// InputMapping replaces the default keyboard and controller bindings.
	InputMapping []byte

	// PowerButtonDevice is the evdev node carrying KEY_POWER. Empty
	// disables the reader.
	PowerButtonDevice string
	PowerLongPress    time.Duration
	OnPowerLongPress  func()
}

// Init brings up SDL, the window, fonts and input handling. It must be
// called before any screen is shown.
func Init(options Options) error {
	if options.LogPath != "" {
		logging.SetLogPath(options.LogPath)
	}
	if options.LogLevel != "" {
		logging.SetRawLogLevel(options.LogLevel)
		if logging.ParseLevel(options.LogLevel) == slog.LevelDebug {
			logging.SetInternalLogLevel(slog.LevelDebug)
		}
	}

	if len(options.InputMapping) > 0 {
		internal.SetInputMappingBytes(options.InputMapping)
	}

	theme := internal.GetTheme()
	if options.Theme != nil {
		theme = *options.Theme
	}
	if options.FontPath != "" {
		theme.FontPath = options.FontPath
	}
	internal.SetTheme(theme)

	pbc := internal.PowerButtonConfig{
		DevicePath:  options.PowerButtonDevice,
		LongPress:   options.PowerLongPress,
		OnLongPress: options.OnPowerLongPress,
	}

	if err := internal.Init(options.WindowTitle, options.WindowOptions, pbc); err != nil {
		return NewInfrastructureError("init", err)
	}
	return nil
}

// Close releases all SDL resources and stops the power button reader.
func Close() {
	internal.SDLCleanup()
}

// CloseLogger flushes and closes the log file.
func CloseLogger() {
	logging.CloseLogger()
}

// SetTheme replaces the colours used by every screen.
func SetTheme(theme internal.Theme) {
	internal.SetTheme(theme)
}

func GetTheme() internal.Theme {
	return internal.GetTheme()
}

// SetAccentColor recolours the selection ring, page dots and confirm
// highlight.
func SetAccentColor(c color.Color) {
	theme := internal.GetTheme()
	theme.AccentColor = internal.ColorFrom(c)
	internal.SetTheme(theme)
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	logging.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return logging.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	logging.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	logging.SetRawLogLevel(level)
}

// SetLogOutput redirects both loggers, e.g. away from a terminal UI.
func SetLogOutput(w io.Writer) {
	logging.SetOutput(w)
}

// GetWindow returns the underlying SDL window wrapper for advanced use cases.
func GetWindow() *internal.Window {
	return internal.GetWindow()
}
