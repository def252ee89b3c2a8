package r2c

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal"
)

// chromePadding is the inset of the arrow and close targets at 1024 wide.
const chromePadding = 8

// screenLayout splits the window into the page title band, the option grid
// and the footer carrying the page dots and hints. Previous and Next sit in
// the side gutters next to the grid, Close in the top right of the title band.
type screenLayout struct {
	Title  sdl.Rect
	Grid   sdl.Rect
	Footer sdl.Rect

	Previous sdl.Rect
	Next     sdl.Rect
	Close    sdl.Rect
}

func newScreenLayout(width, height int32) screenLayout {
	titleH := height * 16 / 100
	footerH := height * 12 / 100
	margin := width * 6 / 100
	gridH := max(0, height-titleH-footerH)

	pad := internal.UniformPadding(chromePadding).Scaled(internal.ScaleFactor(width))
	arrow := min(margin, gridH)
	arrowY := titleH + (gridH-arrow)/2

	return screenLayout{
		Title:  sdl.Rect{X: 0, Y: 0, W: width, H: titleH},
		Grid:   sdl.Rect{X: margin, Y: titleH, W: max(0, width-2*margin), H: gridH},
		Footer: sdl.Rect{X: 0, Y: height - footerH, W: width, H: footerH},

		Previous: pad.Inset(sdl.Rect{X: 0, Y: arrowY, W: arrow, H: arrow}),
		Next:     pad.Inset(sdl.Rect{X: width - arrow, Y: arrowY, W: arrow, H: arrow}),
		Close:    pad.Inset(sdl.Rect{X: width - titleH, Y: 0, W: titleH, H: titleH}),
	}
}

type tapTarget int

const (
	tapNone tapTarget = iota
	tapOption
	tapPrevious
	tapNext
	tapClose
)

// tapAt resolves a tap at p. The chrome wins over the option buttons; for
// tapOption the index of the hit button is returned as well.
func tapAt(layout screenLayout, page *carousel.Page, p carousel.Point) (tapTarget, int) {
	switch hitTest([]sdl.Rect{layout.Close, layout.Previous, layout.Next}, p) {
	case 0:
		return tapClose, -1
	case 1:
		return tapPrevious, -1
	case 2:
		return tapNext, -1
	}
	if page == nil {
		return tapNone, -1
	}
	if i := hitTest(buttonRects(page, layout.Grid), p); i >= 0 {
		return tapOption, i
	}
	return tapNone, -1
}

// buttonContent is the area of a button left for its icon and label.
func buttonContent(rect sdl.Rect) sdl.Rect {
	return internal.UniformPadding(rect.W / 10).Inset(rect)
}

// buttonRects places the options of page as square buttons centred in area.
// A short last row is centred under the full rows above it.
func buttonRects(page *carousel.Page, area sdl.Rect) []sdl.Rect {
	n := page.Len()
	if n == 0 || page.Columns == 0 || page.Rows == 0 {
		return nil
	}

	cols, rows := int32(page.Columns), int32(page.Rows)
	gap := max(area.W/40, 4)

	cellW := (area.W - gap*(cols-1)) / cols
	cellH := (area.H - gap*(rows-1)) / rows
	size := max(0, min(cellW, cellH))

	gridW := size*cols + gap*(cols-1)
	gridH := size*rows + gap*(rows-1)
	x0 := area.X + (area.W-gridW)/2
	y0 := area.Y + (area.H-gridH)/2

	rects := make([]sdl.Rect, n)
	for i := range n {
		row, col := page.RowOf(i), page.ColumnOf(i)
		inRow := int32(page.ColumnsInRow(row))
		shift := (cols - inRow) * (size + gap) / 2

		rects[i] = sdl.Rect{
			X: x0 + shift + int32(col)*(size+gap),
			Y: y0 + int32(row)*(size+gap),
			W: size,
			H: size,
		}
	}
	return rects
}

// hitTest returns the index of the rect containing p, or -1.
func hitTest(rects []sdl.Rect, p carousel.Point) int {
	pt := sdl.Point{X: int32(math.Floor(p.X)), Y: int32(math.Floor(p.Y))}
	for i := range rects {
		if pt.InRect(&rects[i]) {
			return i
		}
	}
	return -1
}

func distance(a, b carousel.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func easeOutCubic(t float64) float64 {
	t = max(0, min(1, t))
	inv := 1 - t
	return 1 - inv*inv*inv
}

// slideOffsets returns the vertical offsets of the outgoing and incoming page
// at progress t of a page transition. A forward transition brings the next
// page up from below.
func slideOffsets(t float64, height int32, forward bool) (outgoing, incoming int32) {
	start := float64(height)
	if !forward {
		start = -start
	}
	in := start * (1 - easeOutCubic(t))
	return int32(math.Round(in - start)), int32(math.Round(in))
}
