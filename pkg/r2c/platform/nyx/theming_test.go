package nyx

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
)

func TestInitNyxTheme(t *testing.T) {
	theme := InitNyxTheme(hekate.Nyx{ThemeHue: 0, ThemeColor: color.RGBA{R: 255, A: 255}}, "/fonts/ui.ttf")

	require.Equal(t, sdl.Color{R: 255, A: 255}, theme.AccentColor)
	require.Equal(t, "/fonts/ui.ttf", theme.FontPath)
	require.Greater(t, theme.ButtonPressedColor.R, theme.ButtonColor.R)
	require.Less(t, theme.ButtonPressedColor.G, theme.ButtonColor.G)
}

func TestInitNyxThemeZeroValue(t *testing.T) {
	theme := InitNyxTheme(hekate.Nyx{}, "")
	want := hekate.HSVToRGB(hekate.DefaultThemeHue, 100, 100)
	require.Equal(t, sdl.Color{R: want.R, G: want.G, B: want.B, A: 255}, theme.AccentColor)
}
