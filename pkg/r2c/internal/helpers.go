package internal

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
)

func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
		A: 255,
	}
}

// ColorFrom converts any image colour to an opaque-aware SDL colour.
func ColorFrom(c color.Color) sdl.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return sdl.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Mix blends a towards b by t in [0,1].
func Mix(a, b sdl.Color, t float64) sdl.Color {
	t = max(0, min(1, t))
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return sdl.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// DrawRoundedRect fills rect with rounded corners.
func DrawRoundedRect(renderer *sdl.Renderer, rect *sdl.Rect, radius int32, c sdl.Color) {
	radius = min(radius, rect.W/2, rect.H/2)
	if radius <= 0 {
		renderer.SetDrawColor(c.R, c.G, c.B, c.A)
		renderer.FillRect(rect)
		return
	}

	gfx.BoxColor(renderer, rect.X+radius, rect.Y, rect.X+rect.W-radius, rect.Y+rect.H, c)
	gfx.BoxColor(renderer, rect.X, rect.Y+radius, rect.X+radius, rect.Y+rect.H-radius, c)
	gfx.BoxColor(renderer, rect.X+rect.W-radius, rect.Y+radius, rect.X+rect.W, rect.Y+rect.H-radius, c)

	drawRoundedCorner(renderer, rect.X+radius, rect.Y+radius, radius, c)
	drawRoundedCorner(renderer, rect.X+rect.W-radius, rect.Y+radius, radius, c)
	drawRoundedCorner(renderer, rect.X+radius, rect.Y+rect.H-radius, radius, c)
	drawRoundedCorner(renderer, rect.X+rect.W-radius, rect.Y+rect.H-radius, radius, c)
}

func drawRoundedCorner(renderer *sdl.Renderer, centerX, centerY, radius int32, c sdl.Color) {
	gfx.FilledCircleColor(renderer, centerX, centerY, radius, c)
	gfx.AACircleColor(renderer, centerX, centerY, radius, c)
	if radius > 5 {
		gfx.AACircleColor(renderer, centerX, centerY, radius-1, c)
	}
}

// DrawRoundedOutline strokes a rounded rectangle border of the given width.
func DrawRoundedOutline(renderer *sdl.Renderer, rect *sdl.Rect, radius, width int32, c sdl.Color) {
	for i := int32(0); i < width; i++ {
		r := &sdl.Rect{X: rect.X + i, Y: rect.Y + i, W: rect.W - 2*i, H: rect.H - 2*i}
		gfx.RoundedRectangleColor(renderer, r.X, r.Y, r.X+r.W, r.Y+r.H, max(radius-i, 1), c)
	}
}

// TextSize measures text in font.
func TextSize(font *ttf.Font, text string) (int32, int32) {
	w, h, err := font.SizeUTF8(text)
	if err != nil {
		return 0, 0
	}
	return int32(w), int32(h)
}

// RenderText draws one line of text with its top-left corner, centre or
// right edge at x depending on align. It returns the drawn size.
func RenderText(renderer *sdl.Renderer, font *ttf.Font, text string, x, y int32, c sdl.Color, align constants.TextAlign) (int32, int32) {
	if text == "" {
		return 0, 0
	}

	surface, err := font.RenderUTF8Blended(text, c)
	if err != nil {
		return 0, 0
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return 0, 0
	}
	defer texture.Destroy()

	rect := sdl.Rect{X: x, Y: y, W: surface.W, H: surface.H}
	switch align {
	case constants.TextAlignCenter:
		rect.X = x - surface.W/2
	case constants.TextAlignRight:
		rect.X = x - surface.W
	}
	renderer.Copy(texture, nil, &rect)

	return surface.W, surface.H
}

// WrapText splits text into lines no wider than maxWidth.
func WrapText(font *ttf.Font, text string, maxWidth int32) []string {
	normalized := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")

	var lines []string
	for _, paragraph := range strings.Split(normalized, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if w, _ := TextSize(font, candidate); w <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

// RenderMultilineText draws wrapped text. With TextAlignCenter the block is
// centred on x and vertically on startY.
func RenderMultilineText(renderer *sdl.Renderer, text string, font *ttf.Font, maxWidth int32, x, startY int32, c sdl.Color, alignment ...constants.TextAlign) {
	textAlign := constants.TextAlignCenter
	if len(alignment) > 0 {
		textAlign = alignment[0]
	}

	lines := WrapText(font, text, maxWidth)
	if len(lines) == 0 {
		return
	}

	lineHeight := int32(font.Height()) + 5
	y := startY
	if textAlign == constants.TextAlignCenter {
		y = startY - lineHeight*int32(len(lines))/2
	}

	for _, line := range lines {
		RenderText(renderer, font, line, x, y, c, textAlign)
		y += lineHeight
	}
}

// TextureFromImage uploads an image as a texture with alpha blending on.
func TextureFromImage(renderer *sdl.Renderer, src image.Image) (*sdl.Texture, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	rw, err := sdl.RWFromMem(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create RWops from image data: %w", err)
	}

	texture, err := img.LoadTextureRW(renderer, rw, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture from image data: %w", err)
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}
