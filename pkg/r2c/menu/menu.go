// Package menu assembles the carousel pages of the reboot menu from the boot
// disk entries.
package menu

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/carousel"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/hekate"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/i18n"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/icons"
	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

// Page positions in the carousel.
const (
	PageLaunch = iota
	PageConfigs
	PageUMS
	PageSystem
	pageCount
)

// ColumnsMode overrides the nyx five column setting.
type ColumnsMode int

const (
	ColumnsAuto ColumnsMode = iota
	ColumnsOn
	ColumnsOff
)

func (m ColumnsMode) String() string {
	switch m {
	case ColumnsOn:
		return "on"
	case ColumnsOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseColumnsMode accepts auto, on and off. Empty means auto.
func ParseColumnsMode(s string) (ColumnsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColumnsAuto, nil
	case "on", "true", "1":
		return ColumnsOn, nil
	case "off", "false", "0":
		return ColumnsOff, nil
	}
	return ColumnsAuto, fmt.Errorf("invalid five_columns value %q (want auto, on or off)", s)
}

// Resolve applies the override to the nyx setting.
func (m ColumnsMode) Resolve(nyx bool) bool {
	switch m {
	case ColumnsOn:
		return true
	case ColumnsOff:
		return false
	default:
		return nyx
	}
}

// Source provides the entries read from the boot disk. *hekate.Loader
// implements it.
type Source interface {
	LaunchEntries() []hekate.Entry
	ConfigEntries() []hekate.Entry
}

// Item is attached to every carousel option as its icon reference.
type Item struct {
	Entry  hekate.Entry
	Image  image.Image
	Origin icons.Origin
}

// ItemOf returns the item behind a carousel option.
func ItemOf(option carousel.Option) (*Item, bool) {
	item, ok := option.Icon.(*Item)
	return item, ok && item != nil
}

// EntryOf returns the boot entry behind a carousel option.
func EntryOf(option carousel.Option) (hekate.Entry, bool) {
	item, ok := ItemOf(option)
	if !ok {
		return hekate.Entry{}, false
	}
	return item.Entry, true
}

// Builder turns entries into page specs.
type Builder struct {
	Source      Source
	Translator  *i18n.Translator
	Icons       *icons.Resolver // nil leaves options without images
	FiveColumns bool

	// OnSelect runs when an option is activated.
	OnSelect func(hekate.Entry)

	Logger *slog.Logger
}

// Build returns the four pages in display order. Pages without entries are
// kept and show the empty message.
func (b *Builder) Build() []carousel.PageSpec {
	logger := b.Logger
	if logger == nil {
		logger = logging.GetInternalLogger()
	}

	var launch, configs []hekate.Entry
	if b.Source != nil {
		launch = b.Source.LaunchEntries()
		configs = b.Source.ConfigEntries()
	}

	groups := [pageCount]struct {
		title   string
		entries []hekate.Entry
	}{
		PageLaunch:  {i18n.PageLaunch, launch},
		PageConfigs: {i18n.PageConfigs, configs},
		PageUMS:     {i18n.PageUMS, b.localize(hekate.UMSEntries())},
		PageSystem:  {i18n.PageSystem, b.localize(hekate.SystemEntries())},
	}

	empty := b.Translator.T(i18n.EmptyPage)
	specs := make([]carousel.PageSpec, 0, pageCount)
	for _, g := range groups {
		spec := carousel.PageSpec{
			Title:          b.Translator.T(g.title),
			UseFiveColumns: b.FiveColumns,
			EmptyMessage:   empty,
		}
		for _, e := range g.entries {
			spec.Options = append(spec.Options, b.option(e))
		}

		if layout := carousel.ComputeLayout(len(spec.Options), b.FiveColumns); len(spec.Options) > layout.MaxItems {
			logger.Warn("page has more entries than fit, dropping the rest",
				"page", spec.Title, "entries", len(spec.Options), "capacity", layout.MaxItems)
		}

		specs = append(specs, spec)
	}

	logger.Debug("menu built",
		"launch", len(launch),
		"configs", len(configs),
		"five_columns", b.FiveColumns)

	return specs
}

func (b *Builder) option(e hekate.Entry) carousel.Option {
	item := &Item{Entry: e}
	if b.Icons != nil {
		item.Image, item.Origin = b.Icons.Resolve(e.Icon, e.Glyph)
	}

	option := carousel.Option{
		Name:  e.Name,
		Index: e.Index,
		Icon:  item,
	}
	if b.OnSelect != nil {
		onSelect := b.OnSelect
		option.Action = func() { onSelect(e) }
	}
	return option
}

// localize replaces the English names of the fixed entries.
func (b *Builder) localize(entries []hekate.Entry) []hekate.Entry {
	out := make([]hekate.Entry, len(entries))
	for i, e := range entries {
		if id := messageFor(e); id != "" {
			e.Name = b.Translator.T(id)
		}
		out[i] = e
	}
	return out
}

func messageFor(e hekate.Entry) string {
	switch e.Kind {
	case hekate.KindUMS:
		if e.Index >= 0 && e.Index < len(i18n.UMSMessages) {
			return i18n.UMSMessages[e.Index]
		}
	case hekate.KindBootloader:
		return i18n.SystemBootloader
	case hekate.KindReboot:
		return i18n.SystemReboot
	case hekate.KindShutdown:
		return i18n.SystemShutdown
	}
	return ""
}
