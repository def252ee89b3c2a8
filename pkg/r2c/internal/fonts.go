package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/ttf"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// systemFonts are tried when neither the theme nor FALLBACK_FONT name a
// usable font.
var systemFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Bold.ttf",
	"/usr/share/fonts/noto/NotoSans-Bold.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSansBold.ttf",
}

type FontSizes struct {
	Large  int
	Medium int
	Small  int
	Tiny   int
}

var DefaultFontSizes = FontSizes{
	Large:  44,
	Medium: 32,
	Small:  constants.DefaultFontBaseSize,
	Tiny:   20,
}

var Fonts fontsManager

type fontsManager struct {
	LargeFont  *ttf.Font // page title
	MediumFont *ttf.Font // messages
	SmallFont  *ttf.Font // option labels
	TinyFont   *ttf.Font // hints and page dots
	Path       string
}

// CalculateFontSizeForResolution scales a size tuned for a 1024 pixel wide
// screen. Growth above that width is damped.
func CalculateFontSizeForResolution(baseSize int, screenWidth int32) int {
	return int(float32(baseSize) * ScaleFactor(screenWidth))
}

// ScaleFactor is the layout scale for a screen width relative to 1024.
func ScaleFactor(screenWidth int32) float32 {
	const referenceWidth int32 = 1024
	if screenWidth <= 0 {
		return 1
	}
	scaleFactor := float32(screenWidth) / float32(referenceWidth)
	if screenWidth > referenceWidth {
		scaleFactor = 1.0 + (scaleFactor-1.0)*0.75
	}
	return scaleFactor
}

// FontCandidates lists the font files to try, in order.
func FontCandidates(themeFont string) []string {
	var out []string
	if themeFont != "" {
		out = append(out, themeFont)
	}
	if fallback := os.Getenv(constants.FallbackFontEnvVar); fallback != "" {
		out = append(out, fallback)
	}
	return append(out, systemFonts...)
}

func initFonts(sizes FontSizes, themeFont string, screenWidth int32) error {
	logger := logging.GetInternalLogger()

	var errs []error
	for _, path := range FontCandidates(themeFont) {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		calc := func(base int) int { return CalculateFontSizeForResolution(base, screenWidth) }
		fm, err := openFonts(path, []int{calc(sizes.Large), calc(sizes.Medium), calc(sizes.Small), calc(sizes.Tiny)})
		if err != nil {
			logger.Debug("Failed to load font", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}

		fm.Path = path
		Fonts = fm
		logger.Debug("Loaded fonts", "path", path)
		return nil
	}

	if len(errs) == 0 {
		return errors.New("no usable font found")
	}
	return fmt.Errorf("no usable font found: %w", errors.Join(errs...))
}

func openFonts(path string, sizes []int) (fontsManager, error) {
	opened := make([]*ttf.Font, 0, len(sizes))
	for _, size := range sizes {
		font, err := ttf.OpenFont(path, size)
		if err != nil {
			for _, f := range opened {
				f.Close()
			}
			return fontsManager{}, fmt.Errorf("%s at %d: %w", path, size, err)
		}
		opened = append(opened, font)
	}
	return fontsManager{
		LargeFont:  opened[0],
		MediumFont: opened[1],
		SmallFont:  opened[2],
		TinyFont:   opened[3],
	}, nil
}

func closeFonts() {
	for _, f := range []*ttf.Font{Fonts.LargeFont, Fonts.MediumFont, Fonts.SmallFont, Fonts.TinyFont} {
		if f != nil {
			f.Close()
		}
	}
	Fonts = fontsManager{}
}
