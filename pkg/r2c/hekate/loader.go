package hekate

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FallbackIcon is the icon used when an entry has none or it is missing.
const FallbackIcon = "bootloader/res/icon_switch.bmp"

// UMSTargets are the USB mass storage targets in r2p index order.
var UMSTargets = []string{
	"SD Card",
	"eMMC BOOT0",
	"eMMC BOOT1",
	"eMMC GPP",
	"emuMMC BOOT0",
	"emuMMC BOOT1",
	"emuMMC GPP",
}

// Loader reads boot entries from a boot disk.
type Loader struct {
	root   string
	logger *slog.Logger
}

func NewLoader(root string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{root: root, logger: logger}
}

// Root returns the boot disk directory.
func (l *Loader) Root() string {
	return l.root
}

// Nyx reads the nyx theme of the boot disk.
func (l *Loader) Nyx() Nyx {
	return LoadNyx(l.root, l.logger)
}

// LaunchEntries returns the sections of hekate_ipl.ini numbered from 1.
func (l *Loader) LaunchEntries() []Entry {
	path := filepath.Join(l.root, bootloaderSubdir, "hekate_ipl.ini")

	var entries []Entry
	for i, s := range ParseSections(path, l.logger) {
		entries = append(entries, Entry{
			Kind:  KindLaunch,
			Name:  s.Name,
			Index: i + 1,
			Icon:  s.Icon,
			Glyph: GlyphRocket,
		})
	}

	l.logger.Debug("loaded launch entries", "path", path, "count", len(entries))
	return entries
}

// ConfigEntries returns the sections of every bootloader/ini/*.ini file. Files
// are read in case-insensitive name order and entries are numbered from 1
// across all files.
func (l *Loader) ConfigEntries() []Entry {
	dir := filepath.Join(l.root, bootloaderSubdir, "ini")

	files, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Debug("no ini directory", "path", dir, "error", err)
		return nil
	}

	var names []string
	for _, f := range files {
		if f.IsDir() || !strings.EqualFold(filepath.Ext(f.Name()), ".ini") {
			continue
		}
		names = append(names, f.Name())
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	var entries []Entry
	index := 1
	for _, name := range names {
		for _, s := range ParseSections(filepath.Join(dir, name), l.logger) {
			entries = append(entries, Entry{
				Kind:  KindConfig,
				Name:  s.Name,
				Index: index,
				Icon:  s.Icon,
				Glyph: GlyphCog,
			})
			index++
		}
	}

	l.logger.Debug("loaded config entries", "path", dir, "files", len(names), "count", len(entries))
	return entries
}

// UMSEntries returns the fixed USB mass storage targets numbered from 0.
func UMSEntries() []Entry {
	entries := make([]Entry, len(UMSTargets))
	for i, name := range UMSTargets {
		entries[i] = Entry{Kind: KindUMS, Name: name, Index: i, Glyph: GlyphHDD}
	}
	return entries
}

// SystemEntries returns the power actions.
func SystemEntries() []Entry {
	return []Entry{
		{Kind: KindBootloader, Name: "Hekate Bootloader", Glyph: GlyphBootloader},
		{Kind: KindReboot, Name: "Reboot", Glyph: GlyphReboot},
		{Kind: KindShutdown, Name: "Shutdown", Glyph: GlyphPower},
	}
}
