package internal

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Theme defines the colours of the kiosk menu. The accent follows the nyx
// theme hue of the boot disk.
type Theme struct {
	AccentColor          sdl.Color // selection ring, page dots, confirm highlight
	ButtonColor          sdl.Color // option button fill
	ButtonPressedColor   sdl.Color // option button fill while pressed
	TextColor            sdl.Color // labels and messages
	HighlightedTextColor sdl.Color // label of the selected option
	HintColor            sdl.Color // empty page message, inactive dots, hints
	BackgroundColor      sdl.Color
	FontPath             string // primary UI font; FALLBACK_FONT and system fonts follow
}

var currentTheme = Theme{
	AccentColor:          HexToColor(0x00E6C4),
	ButtonColor:          HexToColor(0x2D2D2D),
	ButtonPressedColor:   HexToColor(0x4A4A4A),
	TextColor:            HexToColor(0xFFFFFF),
	HighlightedTextColor: HexToColor(0xFFFFFF),
	HintColor:            HexToColor(0x8C8C8C),
	BackgroundColor:      HexToColor(0x1B1B1B),
}

func SetTheme(theme Theme) {
	currentTheme = theme
}

func GetTheme() Theme {
	return currentTheme
}
