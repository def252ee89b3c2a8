package hekate

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

const configSection = "config"

// Section is one boot entry of a hekate ini file.
type Section struct {
	Name string
	Icon string // path relative to the boot disk, may be empty
}

func loadINI(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:         true,
		AllowNonUniqueSections:  true,
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
	}, path)
}

// ParseSections returns the boot entries of an ini file in file order. The
// config section, caption lines and comments are skipped. A missing or
// unreadable file yields no entries.
func ParseSections(path string, logger *slog.Logger) []Section {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		logger.Debug("ini file not found", "path", path)
		return nil
	}

	f, err := loadINI(path)
	if err != nil {
		logger.Warn("failed to parse hekate ini", "path", path, "error", err)
		return nil
	}

	var sections []Section
	for _, s := range f.Sections() {
		name := s.Name()
		if name == ini.DefaultSection || strings.EqualFold(name, configSection) {
			continue
		}
		sections = append(sections, Section{
			Name: name,
			Icon: strings.TrimSpace(s.Key("icon").String()),
		})
	}

	return sections
}

// ConfigProperty reads a key from the config section. Key names are matched
// case-insensitively.
func ConfigProperty(path, key string, logger *slog.Logger) (string, bool) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		logger.Debug("ini file not found", "path", path)
		return "", false
	}

	f, err := loadINI(path)
	if err != nil {
		logger.Warn("failed to parse hekate ini", "path", path, "error", err)
		return "", false
	}

	for _, s := range f.Sections() {
		if !strings.EqualFold(s.Name(), configSection) {
			continue
		}
		if s.HasKey(key) {
			return strings.TrimSpace(s.Key(key).String()), true
		}
	}

	return "", false
}
