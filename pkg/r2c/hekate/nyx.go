package hekate

import (
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
)

// DefaultThemeHue is the nyx default accent hue.
const DefaultThemeHue = 167

// Nyx holds the theme settings of bootloader/nyx.ini.
type Nyx struct {
	ThemeHue    int
	ThemeColor  color.RGBA
	FiveColumns bool
}

// LoadNyx reads nyx.ini below root. Missing or invalid values fall back to
// the nyx defaults.
func LoadNyx(root string, logger *slog.Logger) Nyx {
	path := filepath.Join(root, bootloaderSubdir, "nyx.ini")

	hue := DefaultThemeHue
	if raw, ok := ConfigProperty(path, "themecolor", logger); ok {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 && v <= 359 {
			hue = v
		} else if logger != nil {
			logger.Warn("invalid nyx themecolor, using default", "value", raw)
		}
	}

	fiveColumns := false
	if raw, ok := ConfigProperty(path, "entries5col", logger); ok {
		fiveColumns = raw == "1"
	}

	return Nyx{
		ThemeHue:    hue,
		ThemeColor:  HSVToRGB(float64(hue), 100, 100),
		FiveColumns: fiveColumns,
	}
}

// HSVToRGB converts a hue in degrees and saturation and value in percent to
// an opaque colour, matching the nyx colour helpers.
func HSVToRGB(hue, saturation, value float64) color.RGBA {
	s := saturation / 100
	v := value / 100

	if s == 0 {
		gray := uint8(v * 255)
		return color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}

	h := hue / 60
	i := int(math.Floor(h))
	f := h - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch ((i % 6) + 6) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return color.RGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: 255,
	}
}
