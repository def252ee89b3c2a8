package internal

import "github.com/veandco/go-sdl2/sdl"

// Padding defines spacing on all four sides of an element.
type Padding struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

func UniformPadding(value int32) Padding {
	return Padding{Top: value, Right: value, Bottom: value, Left: value}
}

// Scaled multiplies every side by factor.
func (p Padding) Scaled(factor float32) Padding {
	s := func(v int32) int32 { return int32(float32(v) * factor) }
	return Padding{Top: s(p.Top), Right: s(p.Right), Bottom: s(p.Bottom), Left: s(p.Left)}
}

// Inset shrinks rect by the padding. Negative sizes clamp to zero.
func (p Padding) Inset(rect sdl.Rect) sdl.Rect {
	return sdl.Rect{
		X: rect.X + p.Left,
		Y: rect.Y + p.Top,
		W: max(0, rect.W-p.Left-p.Right),
		H: max(0, rect.H-p.Top-p.Bottom),
	}
}
