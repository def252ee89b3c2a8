package r2c

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal"
)

// SelectionMessageSettings configures the selection message component.
type SelectionMessageSettings struct {
	// ConfirmButton is the button used to confirm the selection (default: VirtualButtonA)
	ConfirmButton constants.VirtualButton
	// BackButton is the button used to go back/cancel (default: VirtualButtonB)
	BackButton constants.VirtualButton
	// DisableBackButton disables cancelling with the back button
	DisableBackButton bool
	// InitialSelection is the index of the initially selected option (default: 0)
	InitialSelection int
	// Hint is drawn at the bottom of the screen
	Hint string
}

// SelectionMessageResult represents the result of a selection message.
type SelectionMessageResult struct {
	SelectedIndex int
	SelectedValue any
}

// SelectionOption represents a selectable option in the selection message.
type SelectionOption struct {
	DisplayName string
	Value       any
}

type selectionMessageController struct {
	message       string
	options       []SelectionOption
	optionRects   []sdl.Rect
	selectedIndex int
	confirmButton constants.VirtualButton
	backButton    constants.VirtualButton
	disableBack   bool
	hint          string
	inputDelay    time.Duration
	lastInputTime time.Time
	pointerDown   *carousel.Point
	confirmed     bool
	cancelled     bool
	closed        bool
}

// SelectionMessage displays a message with horizontally selectable options,
// e.g. a Shutdown? Yes / No prompt. Left and right move the highlight, the
// confirm button or a tap picks an option. Returns ErrCancelled if the user
// presses the back button and ErrWindowClosed if the window is closed.
func SelectionMessage(ctx context.Context, message string, options []SelectionOption, settings SelectionMessageSettings) (*SelectionMessageResult, error) {
	if len(options) == 0 {
		return nil, ErrCancelled
	}

	window := internal.GetWindow()
	if window == nil {
		return nil, NewInfrastructureError("selection_message", fmt.Errorf("window not initialised"))
	}
	renderer := window.Renderer

	controller := &selectionMessageController{
		message:       message,
		options:       options,
		selectedIndex: settings.InitialSelection,
		confirmButton: settings.ConfirmButton,
		backButton:    settings.BackButton,
		disableBack:   settings.DisableBackButton,
		hint:          settings.Hint,
		inputDelay:    constants.DefaultInputDelay,
		lastInputTime: time.Now(),
	}

	if controller.confirmButton == constants.VirtualButtonUnassigned {
		controller.confirmButton = constants.VirtualButtonA
	}
	if controller.backButton == constants.VirtualButtonUnassigned {
		controller.backButton = constants.VirtualButtonB
	}

	if controller.selectedIndex < 0 || controller.selectedIndex >= len(options) {
		controller.selectedIndex = 0
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !controller.handleEvents(window) {
			break
		}

		controller.render(renderer, window)
		sdl.Delay(uint32(constants.FrameInterval / time.Millisecond))
	}

	if controller.closed {
		return nil, ErrWindowClosed
	}
	if controller.cancelled {
		return nil, ErrCancelled
	}

	return &SelectionMessageResult{
		SelectedIndex: controller.selectedIndex,
		SelectedValue: controller.options[controller.selectedIndex].Value,
	}, nil
}

func (c *selectionMessageController) handleEvents(window *internal.Window) bool {
	processor := internal.GetInputProcessor()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			c.closed = true
			return false

		case *sdl.KeyboardEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent, *sdl.JoyButtonEvent, *sdl.JoyAxisEvent, *sdl.JoyHatEvent:
			for inputEvent := processor.ProcessSDLEvent(e); inputEvent != nil; inputEvent = processor.Pending() {
				if !inputEvent.Pressed {
					continue
				}

				if time.Since(c.lastInputTime) < c.inputDelay {
					continue
				}
				c.lastInputTime = time.Now()

				switch inputEvent.Button {
				case constants.VirtualButtonLeft:
					c.navigateLeft()
				case constants.VirtualButtonRight:
					c.navigateRight()
				case c.confirmButton, constants.VirtualButtonStart:
					c.confirmed = true
					return false
				case c.backButton:
					if !c.disableBack {
						c.cancelled = true
						return false
					}
				}
			}

		case *sdl.MouseButtonEvent, *sdl.TouchFingerEvent:
			w, h := window.Size()
			input, ok := internal.PointerEvent(e, w, h)
			if !ok {
				continue
			}
			switch p := input.(type) {
			case carousel.PointerDown:
				point := p.Point
				c.pointerDown = &point
			case carousel.PointerUp:
				down := c.pointerDown
				c.pointerDown = nil
				if down == nil || distance(*down, p.Point) >= carousel.DefaultDragThreshold {
					continue
				}
				if i := hitTest(c.optionRects, p.Point); i >= 0 {
					c.selectedIndex = i
					c.confirmed = true
					return false
				}
			}
		}
	}
	return true
}

func (c *selectionMessageController) navigateLeft() {
	c.selectedIndex--
	if c.selectedIndex < 0 {
		c.selectedIndex = len(c.options) - 1
	}
}

func (c *selectionMessageController) navigateRight() {
	c.selectedIndex++
	if c.selectedIndex >= len(c.options) {
		c.selectedIndex = 0
	}
}

func (c *selectionMessageController) render(renderer *sdl.Renderer, window *internal.Window) {
	window.Clear()

	theme := internal.GetTheme()
	windowWidth := window.GetWidth()
	windowHeight := window.GetHeight()

	messageFont := internal.Fonts.MediumFont
	optionFont := internal.Fonts.SmallFont

	maxMessageWidth := min(windowWidth*3/4, 800)

	lines := internal.WrapText(messageFont, c.message, maxMessageWidth)
	lineHeight := int32(messageFont.Height()) + 5
	messageHeight := lineHeight * int32(len(lines))

	buttonHeight := int32(optionFont.Height()) * 2
	spacing := int32(40)
	totalHeight := messageHeight + spacing + buttonHeight

	startY := (windowHeight - totalHeight) / 2
	centerX := windowWidth / 2

	internal.RenderMultilineText(renderer, c.message, messageFont, maxMessageWidth,
		centerX, startY+messageHeight/2, theme.TextColor, constants.TextAlignCenter)

	c.renderOptions(renderer, centerX, startY+messageHeight+spacing, buttonHeight, optionFont)

	if c.hint != "" {
		font := internal.Fonts.TinyFont
		internal.RenderText(renderer, font, c.hint, centerX,
			windowHeight-int32(font.Height())*2, theme.HintColor, constants.TextAlignCenter)
	}

	window.Present()
}

// renderOptions draws the options as a centred row of buttons and records
// their rects for tapping.
func (c *selectionMessageController) renderOptions(renderer *sdl.Renderer, centerX, y, height int32, font *ttf.Font) {
	theme := internal.GetTheme()
	gap := int32(30)

	buttonWidth := height * 3
	for _, opt := range c.options {
		w, _ := internal.TextSize(font, opt.DisplayName)
		buttonWidth = max(buttonWidth, w+height)
	}

	count := int32(len(c.options))
	totalWidth := count*buttonWidth + (count-1)*gap
	x := centerX - totalWidth/2

	c.optionRects = c.optionRects[:0]
	for i, opt := range c.options {
		rect := sdl.Rect{X: x, Y: y, W: buttonWidth, H: height}
		c.optionRects = append(c.optionRects, rect)

		fill, text := theme.ButtonColor, theme.TextColor
		if i == c.selectedIndex {
			fill, text = theme.AccentColor, theme.HighlightedTextColor
		}
		internal.DrawRoundedRect(renderer, &rect, height/4, fill)
		internal.RenderText(renderer, font, opt.DisplayName, rect.X+rect.W/2,
			rect.Y+(rect.H-int32(font.Height()))/2, text, constants.TextAlignCenter)

		x += buttonWidth + gap
	}
}
