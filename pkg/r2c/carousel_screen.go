package r2c

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// CarouselSettings configures the carousel screen.
type CarouselSettings struct {
	// IconFor returns the image drawn on an option button, or nil.
	IconFor func(carousel.Option) image.Image

	// Hint is drawn in the footer, e.g. "A Select".
	Hint string

	// AllowBack lets B and Escape leave the screen with ErrCancelled.
	AllowBack bool

	// TapSlop is the largest pointer travel still treated as a tap. Zero
	// uses the carousel drag threshold.
	TapSlop float64

	SlideDuration time.Duration
}

// CarouselResult is the option the user activated. The carousel keeps its
// page and selection, so showing it again resumes where the user left.
type CarouselResult struct {
	Option carousel.Option
	State  carousel.State
}

type slide struct {
	from, to int
	started  time.Time
}

type carouselScreen struct {
	c        *carousel.Carousel
	settings CarouselSettings
	window   *internal.Window
	textures *internal.TextureCache

	directional internal.DirectionalInput
	slide       *slide

	pointerDown  *carousel.Point
	pressedSince time.Time
	chosen       *carousel.Option
	cancelled    bool
	closed       bool
}

// Carousel shows c until an option is activated and its press feedback has
// been drawn. Activation runs the option's Action before this returns.
// Closing the window or tapping the close button yields ErrWindowClosed.
func Carousel(ctx context.Context, c *carousel.Carousel, settings CarouselSettings) (*CarouselResult, error) {
	if c.Len() == 0 {
		return nil, ErrNoPages
	}

	window := internal.GetWindow()
	if window == nil {
		return nil, NewInfrastructureError("carousel", fmt.Errorf("window not initialised"))
	}

	if settings.TapSlop <= 0 {
		settings.TapSlop = carousel.DefaultDragThreshold
	}
	if settings.SlideDuration <= 0 {
		settings.SlideDuration = constants.SlideDuration
	}

	s := &carouselScreen{
		c:           c,
		settings:    settings,
		window:      window,
		textures:    internal.NewTextureCache(),
		directional: internal.NewDirectionalInput(),
	}
	defer s.textures.Destroy()

	unsubscribe := c.Subscribe(s.onEvent)
	defer unsubscribe()

	// Drop state left over from an earlier visit.
	c.AbandonTransition()
	c.ReleasePress()

	logger := logging.GetInternalLogger()
	logger.Debug("carousel screen shown", "page", c.CurrentPageIndex(), "selected", c.SelectedIndex())

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s.handleEvents()
		if s.closed {
			return nil, ErrWindowClosed
		}
		if s.cancelled {
			return nil, ErrCancelled
		}

		s.update(time.Now())

		if s.chosen != nil && !s.pressed() {
			logger.Debug("carousel screen done", "option", s.chosen.Name, "index", s.chosen.Index)
			return &CarouselResult{Option: *s.chosen, State: c.State()}, nil
		}

		s.render(time.Now())
		sdl.Delay(uint32(constants.FrameInterval / time.Millisecond))
	}
}

func (s *carouselScreen) onEvent(e carousel.Event) {
	switch e := e.(type) {
	case carousel.TransitionStarted:
		s.slide = &slide{from: e.From, to: e.To, started: time.Now()}
		s.directional.Reset()
		s.pointerDown = nil
	case carousel.OptionPressFeedback:
		if e.Pressed {
			s.pressedSince = time.Now()
		}
	case carousel.OptionActivated:
		option := e.Option
		s.chosen = &option
	}
}

func (s *carouselScreen) pressed() bool {
	_, ok := s.c.Pressed()
	return ok
}

func (s *carouselScreen) handleEvents() {
	processor := internal.GetInputProcessor()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.closed = true
			return

		case *sdl.KeyboardEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent, *sdl.JoyButtonEvent, *sdl.JoyAxisEvent, *sdl.JoyHatEvent:
			for ev := processor.ProcessSDLEvent(e); ev != nil; ev = processor.Pending() {
				s.handleButton(ev)
			}

		case *sdl.MouseWheelEvent, *sdl.MouseButtonEvent, *sdl.TouchFingerEvent:
			w, h := s.window.Size()
			if input, ok := internal.PointerEvent(e, w, h); ok {
				s.handlePointer(input)
			}
		}
	}
}

func (s *carouselScreen) handleButton(ev *internal.Event) {
	s.directional.SetHeld(ev.Button, ev.Pressed)
	if !ev.Pressed || s.chosen != nil {
		return
	}
	logging.GetInternalLogger().Debug("button", "button", ev.Button.String(), "source", ev.Source)

	switch ev.Button {
	case constants.VirtualButtonL1:
		s.c.GoPrevious()
	case constants.VirtualButtonR1:
		s.c.GoNext()
	case constants.VirtualButtonB:
		if s.settings.AllowBack {
			s.cancelled = true
		}
	default:
		if key, ok := internal.KeyFor(ev.Button); ok {
			s.c.Handle(carousel.KeyEvent{Key: key})
		}
	}
}

func (s *carouselScreen) handlePointer(input carousel.InputEvent) {
	if s.chosen != nil {
		return
	}

	switch e := input.(type) {
	case carousel.PointerDown:
		p := e.Point
		s.pointerDown = &p
	case carousel.PointerUp:
		down := s.pointerDown
		s.pointerDown = nil
		if down != nil && distance(*down, e.Point) < s.settings.TapSlop && !s.c.InTransition() {
			s.c.Handle(input)
			s.tap(e.Point)
			return
		}
	}

	s.c.Handle(input)
}

func (s *carouselScreen) tap(p carousel.Point) {
	page, _ := s.c.CurrentPage()
	w, h := s.window.Size()

	target, i := tapAt(newScreenLayout(w, h), page, p)
	switch target {
	case tapClose:
		s.closed = true
	case tapPrevious:
		s.c.GoPrevious()
	case tapNext:
		s.c.GoNext()
	case tapOption:
		s.c.ActivateAt(i)
	}
}

func (s *carouselScreen) update(now time.Time) {
	if s.slide != nil && now.Sub(s.slide.started) >= s.settings.SlideDuration {
		s.slide = nil
		s.c.CompleteTransition()
	}
	if s.slide == nil && s.c.InTransition() {
		s.c.CompleteTransition()
	}

	if s.pressed() && now.Sub(s.pressedSince) >= carousel.PressFeedbackDuration {
		s.c.ReleasePress()
	}

	if s.chosen == nil && !s.c.InTransition() {
		if key, ok := internal.KeyForDirection(s.directional.Update()); ok {
			s.c.Handle(carousel.KeyEvent{Key: key})
		}
	}
}

func (s *carouselScreen) render(now time.Time) {
	renderer := s.window.Renderer
	w, h := s.window.Size()
	layout := newScreenLayout(w, h)

	s.window.Clear()

	if s.slide != nil {
		t := float64(now.Sub(s.slide.started)) / float64(s.settings.SlideDuration)
		outgoing, incoming := slideOffsets(t, h, s.slide.to > s.slide.from)
		s.renderPage(renderer, layout, s.slide.from, outgoing)
		s.renderPage(renderer, layout, s.slide.to, incoming)
	} else {
		s.renderPage(renderer, layout, s.c.CurrentPageIndex(), 0)
	}

	s.renderChrome(renderer, layout)
	s.renderFooter(renderer, layout)
	s.window.Present()
}

func (s *carouselScreen) renderPage(renderer *sdl.Renderer, layout screenLayout, index int, offsetY int32) {
	page, ok := s.c.Page(index)
	if !ok {
		return
	}
	theme := internal.GetTheme()

	title := layout.Title
	title.Y += offsetY
	internal.RenderText(renderer, internal.Fonts.LargeFont, page.Title,
		title.X+title.W/2, title.Y+(title.H-int32(internal.Fonts.LargeFont.Height()))/2,
		theme.TextColor, constants.TextAlignCenter)

	grid := layout.Grid
	grid.Y += offsetY

	if page.IsEmpty() {
		internal.RenderMultilineText(renderer, page.EmptyMessage, internal.Fonts.MediumFont,
			grid.W, grid.X+grid.W/2, grid.Y+grid.H/2, theme.HintColor)
		return
	}

	pressed, isPressed := s.c.Pressed()
	current := index == s.c.CurrentPageIndex() && s.slide == nil

	for i, rect := range buttonRects(page, grid) {
		option := page.Options[i]
		selected := current && i == page.SelectedIndex
		down := current && isPressed && sameOption(pressed, option)
		s.renderButton(renderer, index, i, option, rect, selected, down)
	}
}

func sameOption(a, b carousel.Option) bool {
	return a.Index == b.Index && a.Name == b.Name
}

func (s *carouselScreen) renderButton(renderer *sdl.Renderer, page, i int, option carousel.Option, rect sdl.Rect, selected, down bool) {
	theme := internal.GetTheme()
	radius := rect.W / 10

	fill := theme.ButtonColor
	if down {
		fill = theme.ButtonPressedColor
	}
	internal.DrawRoundedRect(renderer, &rect, radius, fill)

	if selected {
		ring := sdl.Rect{X: rect.X - 4, Y: rect.Y - 4, W: rect.W + 8, H: rect.H + 8}
		internal.DrawRoundedOutline(renderer, &ring, radius+4, 4, theme.AccentColor)
	}

	font := internal.Fonts.SmallFont
	labelH := int32(font.Height())
	content := buttonContent(rect)

	iconArea := sdl.Rect{X: content.X, Y: content.Y, W: content.W, H: content.H - labelH}
	if texture := s.iconTexture(renderer, page, i, option); texture != nil && iconArea.W > 0 && iconArea.H > 0 {
		size := min(iconArea.W, iconArea.H)
		dst := sdl.Rect{X: iconArea.X + (iconArea.W-size)/2, Y: iconArea.Y + (iconArea.H-size)/2, W: size, H: size}
		renderer.Copy(texture, nil, &dst)
	}

	color := theme.TextColor
	if selected {
		color = theme.HighlightedTextColor
	}
	label := truncateText(font, option.Name, content.W)
	internal.RenderText(renderer, font, label, rect.X+rect.W/2, content.Y+content.H-labelH, color, constants.TextAlignCenter)
}

// renderChrome draws the page arrows, greyed out when there is no page that
// way, and the close button.
func (s *carouselScreen) renderChrome(renderer *sdl.Renderer, layout screenLayout) {
	theme := internal.GetTheme()

	arrow := func(rect sdl.Rect, enabled, left bool) {
		c := theme.TextColor
		if !enabled {
			c = internal.Mix(theme.BackgroundColor, theme.HintColor, 0.35)
		}
		drawChevron(renderer, rect, left, c)
	}
	arrow(layout.Previous, s.c.CanGoPrevious(), true)
	arrow(layout.Next, s.c.CanGoNext(), false)

	closeRect := layout.Close
	internal.DrawRoundedRect(renderer, &closeRect, closeRect.W/2, theme.ButtonColor)
	font := internal.Fonts.MediumFont
	internal.RenderText(renderer, font, "X", closeRect.X+closeRect.W/2,
		closeRect.Y+(closeRect.H-int32(font.Height()))/2, theme.TextColor, constants.TextAlignCenter)
}

// drawChevron fills a triangle inside rect pointing left or right.
func drawChevron(renderer *sdl.Renderer, rect sdl.Rect, left bool, c sdl.Color) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	renderer.SetDrawColor(c.R, c.G, c.B, c.A)

	half := rect.H / 2
	depth := min(rect.W, half)
	x0 := rect.X + (rect.W-depth)/2
	for dy := -half; dy <= half; dy++ {
		span := depth * (half - abs32(dy)) / max(half, 1)
		if left {
			renderer.DrawLine(x0+depth-span, rect.Y+half+dy, x0+depth, rect.Y+half+dy)
		} else {
			renderer.DrawLine(x0, rect.Y+half+dy, x0+span, rect.Y+half+dy)
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func (s *carouselScreen) iconTexture(renderer *sdl.Renderer, page, i int, option carousel.Option) *sdl.Texture {
	if s.settings.IconFor == nil {
		return nil
	}
	key := fmt.Sprintf("icon:%d:%d", page, i)
	texture, err := s.textures.GetOrCreate(key, func() (*sdl.Texture, error) {
		img := s.settings.IconFor(option)
		if img == nil {
			return nil, fmt.Errorf("no icon for %q", option.Name)
		}
		return internal.TextureFromImage(renderer, img)
	})
	if err != nil {
		return nil
	}
	return texture
}

func (s *carouselScreen) renderFooter(renderer *sdl.Renderer, layout screenLayout) {
	theme := internal.GetTheme()
	footer := layout.Footer

	count := int32(s.c.Len())
	active := s.c.CurrentPageIndex()
	if s.slide != nil {
		active = s.slide.to
	}

	dot := max(footer.H/6, 6)
	gap := dot
	total := count*dot + (count-1)*gap
	x := footer.X + (footer.W-total)/2
	y := footer.Y + (footer.H-dot)/2

	for i := range count {
		c := theme.HintColor
		if int(i) == active {
			c = theme.AccentColor
		}
		rect := sdl.Rect{X: x + i*(dot+gap), Y: y, W: dot, H: dot}
		internal.DrawRoundedRect(renderer, &rect, dot/2, c)
	}

	if s.settings.Hint != "" {
		font := internal.Fonts.TinyFont
		margin := footer.W * 3 / 100
		internal.RenderText(renderer, font, s.settings.Hint,
			footer.X+footer.W-margin, footer.Y+(footer.H-int32(font.Height()))/2,
			theme.HintColor, constants.TextAlignRight)
	}
}

// truncateText shortens text with an ellipsis until it fits maxWidth.
func truncateText(font *ttf.Font, text string, maxWidth int32) string {
	if w, _ := internal.TextSize(font, text); w <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := internal.TextSize(font, candidate); w <= maxWidth {
			return candidate
		}
	}
	return ""
}
