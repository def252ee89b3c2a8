// Package app wires configuration, the boot disk and the menu builder
// together for the kiosk, terminal and list frontends.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/config"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/i18n"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/icons"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/menu"
)

// DefaultIconSize is the edge length icons are scaled to before upload.
const DefaultIconSize = 192

// App holds the collaborators of one r2c session.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	tr       *i18n.Translator
	rebooter *hekate.Rebooter
	diskOpts hekate.BootDiskOptions
	disk     *hekate.BootDisk

	// IconSize is the icon edge length; zero skips icon loading.
	IconSize int
}

// Menu is the result of loading a boot disk.
type Menu struct {
	Root        string
	Nyx         hekate.Nyx
	FiveColumns bool
	Pages       []carousel.PageSpec
}

// Options overrides collaborators for tests and dev setups.
type Options struct {
	Logger *slog.Logger
	Runner hekate.CommandRunner

	// Disk supplies the discovery paths that have no config key. Override
	// and MountPoint always come from the configuration.
	Disk hekate.BootDiskOptions
}

// New prepares an App. Nothing touches the boot disk until Load.
func New(cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}

	tr, err := i18n.New(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	rebooterOpts := cfg.RebooterOptions()
	rebooterOpts.Logger = logger
	rebooterOpts.Runner = opts.Runner

	disk := opts.Disk
	base := cfg.BootDiskOptions()
	disk.Override = base.Override
	disk.MountPoint = base.MountPoint
	disk.Runner = opts.Runner
	disk.Logger = logger

	return &App{
		cfg:      cfg,
		logger:   logger,
		tr:       tr,
		rebooter: hekate.NewRebooter(rebooterOpts),
		diskOpts: disk,
		IconSize: DefaultIconSize,
	}, nil
}

func (a *App) Config() config.Config {
	return a.cfg
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) Translator() *i18n.Translator {
	return a.tr
}

// Load resolves the boot disk and builds the four menu pages. A missing boot
// disk is logged and yields pages without disk entries. progress, when not
// nil, receives values between 0 and 1.
func (a *App) Load(ctx context.Context, progress func(float64)) (*Menu, error) {
	report := func(v float64) {
		if progress != nil {
			progress(v)
		}
	}

	disk, err := hekate.ResolveBootDisk(ctx, a.diskOpts)
	if err != nil {
		if !errors.Is(err, hekate.ErrNoBootDisk) {
			return nil, fmt.Errorf("resolve boot disk: %w", err)
		}
		a.logger.Warn("boot disk unavailable, showing fixed entries only", "path", disk.Path, "error", err)
	}
	a.disk = disk
	report(0.4)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := hekate.NewLoader(disk.Path, a.logger)
	nyx := loader.Nyx()
	five := a.cfg.ColumnsMode().Resolve(nyx.FiveColumns)
	report(0.6)

	builder := &menu.Builder{
		Source:      loader,
		Translator:  a.tr,
		FiveColumns: five,
		Logger:      a.logger,
	}
	if a.IconSize > 0 {
		builder.Icons = icons.NewResolver(disk.Path, nyx.ThemeColor, a.IconSize, hekate.FallbackIcon, a.logger)
	}

	pages := builder.Build()
	report(1)

	a.logger.Info("menu loaded",
		"boot_disk", disk.Path,
		"mounted", disk.Mounted,
		"theme_hue", nyx.ThemeHue,
		"five_columns", five)

	return &Menu{Root: disk.Path, Nyx: nyx, FiveColumns: five, Pages: pages}, nil
}

// CarouselSettings returns the navigation settings from the configuration.
func (a *App) CarouselSettings(immediate bool) carousel.Settings {
	return carousel.Settings{
		Aggregator:   a.cfg.Aggregator(),
		Immediate:    immediate,
		InvertScroll: a.cfg.InvertScroll,
		Logger:       logging.GetInternalLogger(),
	}
}

// NewCarousel builds a carousel over the loaded pages.
func (m *Menu) NewCarousel(settings carousel.Settings) *carousel.Carousel {
	return carousel.New(m.Pages, settings)
}

// NeedsConfirm reports whether choosing option asks for confirmation first.
func (a *App) NeedsConfirm(option carousel.Option) bool {
	entry, ok := menu.EntryOf(option)
	return ok && a.cfg.ConfirmPowerActions && entry.Kind.IsPower()
}

// IconFor returns the resolved icon of option, or nil.
func IconFor(option carousel.Option) image.Image {
	item, ok := menu.ItemOf(option)
	if !ok || item.Image == nil {
		return nil
	}
	return item.Image
}

// Execute reboots into or powers off for the entry behind option.
func (a *App) Execute(ctx context.Context, option carousel.Option) error {
	entry, ok := menu.EntryOf(option)
	if !ok {
		return fmt.Errorf("option %q: %w", option.Name, hekate.ErrUnsupportedEntry)
	}
	return a.rebooter.Execute(ctx, entry)
}

func (a *App) Reboot(ctx context.Context, args hekate.RebootArgs) error {
	return a.rebooter.Reboot(ctx, args)
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.rebooter.Shutdown(ctx)
}

// Close unmounts the boot disk if Load mounted it.
func (a *App) Close(ctx context.Context) error {
	if a.disk == nil {
		return nil
	}
	return a.disk.Cleanup(ctx)
}
