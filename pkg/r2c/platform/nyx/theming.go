// Package nyx derives the kiosk theme from the nyx settings on the boot
// disk, so the menu matches the bootloader's accent colour.
package nyx

import (
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal"
)

// InitNyxTheme returns the default dark theme with the nyx accent and the
// given font.
func InitNyxTheme(n hekate.Nyx, fontPath string) internal.Theme {
	accent := internal.ColorFrom(n.ThemeColor)
	if n.ThemeColor.A == 0 {
		accent = internal.ColorFrom(hekate.HSVToRGB(hekate.DefaultThemeHue, 100, 100))
	}

	return internal.Theme{
		AccentColor:          accent,
		ButtonColor:          internal.HexToColor(0x2D2D2D),
		ButtonPressedColor:   internal.Mix(internal.HexToColor(0x2D2D2D), accent, 0.35),
		TextColor:            internal.HexToColor(0xFFFFFF),
		HighlightedTextColor: internal.HexToColor(0xFFFFFF),
		HintColor:            internal.HexToColor(0x8C8C8C),
		BackgroundColor:      internal.HexToColor(0x1B1B1B),
		FontPath:             fontPath,
	}
}
