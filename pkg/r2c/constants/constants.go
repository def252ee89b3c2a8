// Package constants defines shared constants, types, and environment switches
// used by the r2c frontends.
package constants

import (
	"os"
	"time"
)

// Development is the ENVIRONMENT value for development mode.
const Development = "DEV"

// Environment variables read by the SDL frontend.
const (
	EnvironmentEnvVar   = "ENVIRONMENT"
	WindowWidthEnvVar   = "WINDOW_WIDTH"
	WindowHeightEnvVar  = "WINDOW_HEIGHT"
	FallbackFontEnvVar  = "FALLBACK_FONT"
	InputMappingEnvVar  = "INPUT_MAPPING_PATH"
	DefaultDevWidth     = 1280
	DefaultDevHeight    = 720
	DefaultWindowTitle  = "r2c"
	DefaultFontBaseSize = 28
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
// Development mode opens a window instead of going fullscreen and never
// touches the power button device.
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// VirtualButton represents an abstract input button, mapped from physical hardware.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
	VirtualButtonL1
	VirtualButtonR1
	VirtualButtonStart
	VirtualButtonSelect
	VirtualButtonMenu
	VirtualButtonPower
)

var buttonNames = [...]string{
	VirtualButtonUnassigned: "unassigned",
	VirtualButtonUp:         "up",
	VirtualButtonDown:       "down",
	VirtualButtonLeft:       "left",
	VirtualButtonRight:      "right",
	VirtualButtonA:          "a",
	VirtualButtonB:          "b",
	VirtualButtonL1:         "l1",
	VirtualButtonR1:         "r1",
	VirtualButtonStart:      "start",
	VirtualButtonSelect:     "select",
	VirtualButtonMenu:       "menu",
	VirtualButtonPower:      "power",
}

func (vb VirtualButton) String() string {
	if vb < 0 || int(vb) >= len(buttonNames) {
		return "unknown"
	}
	return buttonNames[vb]
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// Frame and animation timing.
const (
	DefaultInputDelay = 20 * time.Millisecond // debounce between confirm screen inputs
	FrameInterval     = 16 * time.Millisecond
	SlideDuration     = 300 * time.Millisecond
	KeyRepeatDelay    = 300 * time.Millisecond
	KeyRepeatInterval = 120 * time.Millisecond
)
