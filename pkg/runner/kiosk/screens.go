package kiosk

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/switchroot-kiosk/r2c/pkg/r2c"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/app"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/i18n"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/menu"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/platform/nyx"
)

const failureLinger = 2 * time.Second

type sdlScreens struct {
	app *app.App
}

// quitOn maps a closed window to ErrQuit.
func quitOn(err error) error {
	if r2c.IsWindowClosed(err) {
		return ErrQuit
	}
	return err
}

func (s *sdlScreens) Loading(ctx context.Context, load func(context.Context, func(float64)) (*app.Menu, error)) (*app.Menu, error) {
	tr := s.app.Translator()
	progress := atomic.NewFloat64(0)

	m, err := r2c.ProcessMessage(ctx, tr.T(i18n.Loading), r2c.ProcessMessageOptions{
		ShowProgressBar: true,
		Progress:        progress,
	}, func(ctx context.Context) (*app.Menu, error) {
		return load(ctx, progress.Store)
	})
	if err != nil {
		return nil, quitOn(err)
	}

	r2c.SetTheme(nyx.InitNyxTheme(m.Nyx, s.app.Config().FontPath))
	return m, nil
}

func (s *sdlScreens) Menu(ctx context.Context, c *carousel.Carousel) (carousel.Option, error) {
	tr := s.app.Translator()

	res, err := r2c.Carousel(ctx, c, r2c.CarouselSettings{
		IconFor: app.IconFor,
		Hint:    "A " + tr.T(i18n.Select),
	})
	if err != nil {
		return carousel.Option{}, quitOn(err)
	}
	return res.Option, nil
}

func (s *sdlScreens) Confirm(ctx context.Context, option carousel.Option) (bool, error) {
	tr := s.app.Translator()

	res, err := r2c.SelectionMessage(ctx,
		tr.TWithData(i18n.ConfirmPrompt, map[string]any{"Name": option.Name}),
		[]r2c.SelectionOption{
			{DisplayName: tr.T(i18n.Confirm), Value: true},
			{DisplayName: tr.T(i18n.Cancel), Value: false},
		},
		r2c.SelectionMessageSettings{
			InitialSelection: 1,
			Hint:             "A " + tr.T(i18n.Select) + "   B " + tr.T(i18n.Back),
		})
	if r2c.IsCancelled(err) {
		return false, nil
	}
	if err != nil {
		return false, quitOn(err)
	}
	return res.SelectedValue.(bool), nil
}

func (s *sdlScreens) Execute(ctx context.Context, option carousel.Option, run func(context.Context) error) error {
	tr := s.app.Translator()

	message := tr.TWithData(i18n.Executing, map[string]any{"Name": option.Name})
	if entry, ok := menu.EntryOf(option); ok && entry.Kind == hekate.KindShutdown {
		message = tr.T(i18n.ShuttingDown)
	}

	_, err := r2c.ProcessMessage(ctx, message, r2c.ProcessMessageOptions{},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, run(ctx)
		})
	if err == nil || r2c.IsWindowClosed(err) {
		return quitOn(err)
	}

	_, _ = r2c.ProcessMessage(ctx,
		tr.TWithData(i18n.ExecuteFailed, map[string]any{"Name": option.Name}),
		r2c.ProcessMessageOptions{Linger: failureLinger},
		func(context.Context) (struct{}, error) { return struct{}{}, nil })
	return err
}
