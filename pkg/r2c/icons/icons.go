// Package icons turns hekate bitmap icons and the embedded fallback glyphs
// into square RGBA images ready to be uploaded as textures.
package icons

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

//go:embed glyphs/*.svg
var glyphFS embed.FS

// ErrUnknownGlyph is returned for glyph names without an embedded SVG.
var ErrUnknownGlyph = errors.New("unknown glyph")

// hueSuffixes mark icons nyx draws in the theme colour.
var hueSuffixes = []string{
	"icon_switch.bmp",
	"icon_payload.bmp",
	"_hue_nobox.bmp",
	"_hue.bmp",
}

// IsHueIcon reports whether nyx tints the icon at p with the theme colour.
func IsHueIcon(p string) bool {
	lower := strings.ToLower(p)
	for _, suffix := range hueSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// LoadBMP decodes a bitmap file.
func LoadBMP(p string) (image.Image, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p, err)
	}
	return img, nil
}

// Tint paints c through the alpha channel of src.
func Tint(src image.Image, c color.Color) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, src, b.Min, xdraw.Src)
	return dst
}

// Scale fits src into a size×size transparent square, keeping its aspect
// ratio and centring it.
func Scale(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))

	b := src.Bounds()
	if b.Empty() || size <= 0 {
		return dst
	}

	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, size*b.Dy()/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, size*b.Dx()/b.Dy())
	}

	x := (size - w) / 2
	y := (size - h) / 2
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, b, xdraw.Over, nil)

	return dst
}

// Glyphs lists the embedded glyph names.
func Glyphs() []string {
	entries, err := fs.ReadDir(glyphFS, "glyphs")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Glyph rasterizes an embedded glyph to a size×size white image.
func Glyph(name string, size int) (*image.RGBA, error) {
	data, err := glyphFS.ReadFile(path.Join("glyphs", name+".svg"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGlyph, name)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing glyph %s: %w", name, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)

	icon.SetTarget(0, 0, float64(size), float64(size))
	icon.Draw(raster, 1.0)

	return img, nil
}

// Origin tells where a resolved icon came from.
type Origin int

const (
	OriginNone Origin = iota
	OriginBitmap
	OriginFallbackBitmap
	OriginGlyph
)

func (o Origin) String() string {
	switch o {
	case OriginBitmap:
		return "bitmap"
	case OriginFallbackBitmap:
		return "fallback_bitmap"
	case OriginGlyph:
		return "glyph"
	default:
		return "none"
	}
}

// Resolver loads entry icons relative to a boot disk.
type Resolver struct {
	root     string
	theme    color.Color
	size     int
	fallback string
	logger   *slog.Logger
}

// NewResolver creates a resolver for icons below root, tinting hue icons with
// theme and scaling everything to size.
func NewResolver(root string, theme color.Color, size int, fallback string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{root: root, theme: theme, size: size, fallback: fallback, logger: logger}
}

// Resolve returns the icon at rel, then the fallback bitmap, then the glyph.
// A nil image with OriginNone means nothing could be produced.
func (r *Resolver) Resolve(rel, glyph string) (image.Image, Origin) {
	if img, ok := r.bitmap(rel); ok {
		return img, OriginBitmap
	}
	if img, ok := r.bitmap(r.fallback); ok {
		return img, OriginFallbackBitmap
	}

	if glyph != "" {
		img, err := Glyph(glyph, r.size)
		if err == nil {
			return img, OriginGlyph
		}
		r.logger.Warn("failed to render glyph", "glyph", glyph, "error", err)
	}

	return nil, OriginNone
}

func (r *Resolver) bitmap(rel string) (image.Image, bool) {
	if rel == "" {
		return nil, false
	}

	full := filepath.Join(r.root, filepath.FromSlash(rel))
	img, err := LoadBMP(full)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("failed to load icon", "path", full, "error", err)
		}
		return nil, false
	}

	if r.theme != nil && IsHueIcon(rel) {
		img = Tint(img, r.theme)
	}

	return Scale(img, r.size), true
}
