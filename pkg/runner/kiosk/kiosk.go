// Package kiosk runs the full screen reboot menu: it mounts the boot disk,
// shows the carousel and reboots into the chosen entry.
package kiosk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/switchroot-kiosk/r2c/pkg/r2c"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/app"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/constants"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/router"
)

const (
	ScreenLoading router.Screen = iota
	ScreenMenu
	ScreenConfirm
	ScreenExecute
)

// ErrQuit is returned by a screen when the user closed the application.
var ErrQuit = errors.New("quit")

// Screens draws the four kiosk screens.
type Screens interface {
	Loading(ctx context.Context, load func(ctx context.Context, progress func(float64)) (*app.Menu, error)) (*app.Menu, error)
	Menu(ctx context.Context, c *carousel.Carousel) (carousel.Option, error)
	Confirm(ctx context.Context, option carousel.Option) (bool, error)
	Execute(ctx context.Context, option carousel.Option, run func(ctx context.Context) error) error
}

// Kiosk is the SDL frontend.
type Kiosk struct {
	App *app.App

	// Screens defaults to the SDL screens, which need Init.
	Screens Screens

	carousel *carousel.Carousel
	logger   *slog.Logger
}

type loadResult struct {
	menu *app.Menu
	quit bool
}

type menuResult struct {
	option carousel.Option
	quit   bool
}

type confirmResult struct {
	ok   bool
	quit bool
}

type executeResult struct {
	err error
}

// Do brings up SDL unless Screens is set, runs the menu flow and unmounts the
// boot disk on the way out.
func (k *Kiosk) Do(ctx context.Context) error {
	k.logger = k.App.Logger()

	if k.Screens == nil {
		if err := k.initSDL(); err != nil {
			return err
		}
		defer r2c.Close()
		k.Screens = &sdlScreens{app: k.App}
	}
	defer func() {
		if err := k.App.Close(context.WithoutCancel(ctx)); err != nil {
			k.logger.Error("boot disk cleanup failed", "error", err)
		}
	}()

	r := router.New().WithLogger(k.logger)
	r.Register(ScreenLoading, "loading", k.loading)
	r.Register(ScreenMenu, "menu", k.menu)
	r.Register(ScreenConfirm, "confirm", k.confirm)
	r.Register(ScreenExecute, "execute", k.execute)
	r.OnTransition(k.transition)

	return r.Run(ctx, ScreenLoading, nil)
}

func (k *Kiosk) initSDL() error {
	cfg := k.App.Config()
	if cfg.DevMode {
		_ = os.Setenv(constants.EnvironmentEnvVar, constants.Development)
	}

	return r2c.Init(r2c.Options{
		WindowTitle:       constants.DefaultWindowTitle,
		FontPath:          cfg.FontPath,
		LogPath:           cfg.LogPath,
		LogLevel:          cfg.LogLevel,
		PowerButtonDevice: cfg.PowerButtonDevice,
		PowerLongPress:    cfg.PowerLongPress,
		OnPowerLongPress:  k.powerOff,
	})
}

// powerOff runs on the power button reader goroutine.
func (k *Kiosk) powerOff() {
	k.logger.Info("power button held, shutting down")
	if err := k.App.Shutdown(context.Background()); err != nil {
		k.logger.Error("shutdown failed", "error", err)
	}
}

func (k *Kiosk) loading(ctx context.Context, _ any) (any, error) {
	m, err := k.Screens.Loading(ctx, k.App.Load)
	if errors.Is(err, ErrQuit) {
		return loadResult{quit: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	return loadResult{menu: m}, nil
}

func (k *Kiosk) menu(ctx context.Context, _ any) (any, error) {
	option, err := k.Screens.Menu(ctx, k.carousel)
	if errors.Is(err, ErrQuit) {
		return menuResult{quit: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return menuResult{option: option}, nil
}

func (k *Kiosk) confirm(ctx context.Context, input any) (any, error) {
	ok, err := k.Screens.Confirm(ctx, input.(carousel.Option))
	if errors.Is(err, ErrQuit) {
		return confirmResult{quit: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return confirmResult{ok: ok}, nil
}

func (k *Kiosk) execute(ctx context.Context, input any) (any, error) {
	option := input.(carousel.Option)
	err := k.Screens.Execute(ctx, option, func(ctx context.Context) error {
		return k.App.Execute(ctx, option)
	})
	if err != nil && !errors.Is(err, ErrQuit) {
		k.logger.Error("entry failed", "option", option.Name, "index", option.Index, "error", err)
	}
	return executeResult{err: err}, nil
}

func (k *Kiosk) transition(from router.Screen, result any, stack *router.Stack) (router.Screen, any) {
	switch from {
	case ScreenLoading:
		res := result.(loadResult)
		if res.quit {
			return router.ScreenExit, nil
		}
		k.carousel = res.menu.NewCarousel(k.App.CarouselSettings(false))
		return ScreenMenu, nil

	case ScreenMenu:
		res := result.(menuResult)
		if res.quit {
			return router.ScreenExit, nil
		}
		if k.App.NeedsConfirm(res.option) {
			// The pending option rides on the stack; the carousel keeps
			// its own page and selection.
			stack.Push(ScreenMenu, res.option, k.carousel.State())
			return ScreenConfirm, res.option
		}
		return ScreenExecute, res.option

	case ScreenConfirm:
		res := result.(confirmResult)
		entry := stack.Pop()
		if res.quit {
			stack.Clear()
			return router.ScreenExit, nil
		}
		if entry == nil {
			return ScreenMenu, nil
		}
		if !res.ok {
			k.logger.Debug("confirmation declined", "resume", entry.Resume)
			return entry.Screen, nil
		}
		return ScreenExecute, entry.Input

	case ScreenExecute:
		res := result.(executeResult)
		if res.err == nil || errors.Is(res.err, ErrQuit) {
			return router.ScreenExit, nil
		}
		return ScreenMenu, nil
	}
	return router.ScreenExit, nil
}
