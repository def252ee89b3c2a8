package r2c

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal"
)

// DefaultMessageLinger keeps a finished message on screen long enough to be
// read.
const DefaultMessageLinger = 350 * time.Millisecond

type ProcessMessageOptions struct {
	ShowProgressBar bool
	Progress        *atomic.Float64 // 0..1, written by fn

	// Linger is how long the message stays up after fn returns. Zero uses
	// DefaultMessageLinger; negative returns at once.
	Linger time.Duration
}

type processMessage struct {
	window          *internal.Window
	message         string
	showProgressBar bool
	progress        *atomic.Float64
}

// ProcessMessage displays message while fn runs on its own goroutine and
// returns fn's result. Input is drained but ignored. Closing the window
// cancels the context passed to fn and, once fn has returned, yields
// ErrWindowClosed unless fn failed.
func ProcessMessage[T any](ctx context.Context, message string, options ProcessMessageOptions, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	window := internal.GetWindow()
	if window == nil {
		return zero, NewInfrastructureError("process_message", fmt.Errorf("window not initialised"))
	}

	p := &processMessage{
		window:          window,
		message:         message,
		showProgressBar: options.ShowProgressBar,
		progress:        options.Progress,
	}
	if p.showProgressBar && p.progress == nil {
		p.progress = atomic.NewFloat64(0)
	}

	linger := options.Linger
	if linger == 0 {
		linger = DefaultMessageLinger
	}

	fnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		result T
		err    error
	}
	resultChan := make(chan outcome, 1)

	go func() {
		res, err := fn(fnCtx)
		resultChan <- outcome{result: res, err: err}
	}()

	var (
		done         *outcome
		completeTime time.Time
		quit         bool
	)

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				quit = true
				cancel()
			}
		}

		if done == nil {
			select {
			case o := <-resultChan:
				done = &o
				completeTime = time.Now()
				if p.showProgressBar {
					p.progress.Store(1)
				}
			default:
			}
		}

		if done != nil && (quit || linger < 0 || time.Since(completeTime) >= linger) {
			break
		}

		p.render()
		sdl.Delay(uint32(constants.FrameInterval / time.Millisecond))
	}

	if done.err != nil {
		return done.result, done.err
	}
	if quit {
		return done.result, ErrWindowClosed
	}
	return done.result, nil
}

func (p *processMessage) render() {
	renderer := p.window.Renderer
	theme := internal.GetTheme()
	p.window.Clear()

	font := internal.Fonts.MediumFont
	width, height := p.window.Size()
	maxWidth := width * 3 / 4

	messageY := height / 2
	if p.showProgressBar {
		messageY = height/2 - int32(font.Height())
	}

	internal.RenderMultilineText(renderer, p.message, font, maxWidth, width/2, messageY, theme.TextColor)

	if p.showProgressBar {
		barWidth := min(width*3/4, 900)
		barHeight := max(height/24, 12)
		track := sdl.Rect{X: (width - barWidth) / 2, Y: messageY + int32(font.Height()), W: barWidth, H: barHeight}
		internal.DrawRoundedRect(renderer, &track, barHeight/2, theme.ButtonColor)

		progress := max(0, min(1, p.progress.Load()))
		if fill := int32(float64(barWidth) * progress); fill > 0 {
			bar := sdl.Rect{X: track.X, Y: track.Y, W: max(fill, barHeight), H: barHeight}
			internal.DrawRoundedRect(renderer, &bar, barHeight/2, theme.AccentColor)
		}
	}

	p.window.Present()
}
