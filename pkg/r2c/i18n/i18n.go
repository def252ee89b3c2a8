// Package i18n localises the user-facing strings of the reboot menu.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Message IDs.
const (
	PageLaunch  = "page_launch"
	PageConfigs = "page_configs"
	PageUMS     = "page_ums"
	PageSystem  = "page_system"
	EmptyPage   = "empty_page"

	UMSSD          = "ums_sd"
	UMSEMMCBoot0   = "ums_emmc_boot0"
	UMSEMMCBoot1   = "ums_emmc_boot1"
	UMSEMMCGPP     = "ums_emmc_gpp"
	UMSEmuMMCBoot0 = "ums_emummc_boot0"
	UMSEmuMMCBoot1 = "ums_emummc_boot1"
	UMSEmuMMCGPP   = "ums_emummc_gpp"

	SystemBootloader = "system_bootloader"
	SystemReboot     = "system_reboot"
	SystemShutdown   = "system_shutdown"

	Loading       = "loading"
	ConfirmPrompt = "confirm_prompt"
	Confirm       = "confirm"
	Cancel        = "cancel"
	Select        = "select"
	Back          = "back"
	Quit          = "quit"
	Move          = "move"
	TurnPage      = "turn_page"
	Executing     = "executing"
	ShuttingDown  = "shutting_down"
	ExecuteFailed = "execute_failed"
	PageCount     = "page_count"
)

// UMSMessages are the UMS target message IDs in r2p index order.
var UMSMessages = []string{
	UMSSD,
	UMSEMMCBoot0,
	UMSEMMCBoot1,
	UMSEMMCGPP,
	UMSEmuMMCBoot0,
	UMSEmuMMCBoot1,
	UMSEmuMMCGPP,
}

// MessageFile is an extra translation file supplied as bytes. Name must carry
// the language and format, for example "fr.toml".
type MessageFile struct {
	Name    string
	Content []byte
}

// Translator resolves message IDs for one language.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	tag       language.Tag
}

func newBundle(extra []MessageFile) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read embedded locales: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join("locales", e.Name())); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", e.Name(), err)
		}
	}

	for _, f := range extra {
		if _, err := bundle.ParseMessageFileBytes(f.Content, f.Name); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", f.Name, err)
		}
	}

	return bundle, nil
}

// New creates a translator for the best supported match of code, an IETF
// language tag such as "es" or "es-MX". An empty or unknown code selects
// English.
func New(code string, extra ...MessageFile) (*Translator, error) {
	bundle, err := newBundle(extra)
	if err != nil {
		return nil, err
	}

	tag := Match(bundle.LanguageTags(), code)

	return &Translator{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		tag:       tag,
	}, nil
}

// MustNew is New for the embedded locales, which always parse.
func MustNew(code string) *Translator {
	t, err := New(code)
	if err != nil {
		panic(err)
	}
	return t
}

// Match returns the supported tag closest to code, or English.
func Match(supported []language.Tag, code string) language.Tag {
	if code == "" || len(supported) == 0 {
		return language.English
	}

	requested, err := language.Parse(code)
	if err != nil {
		return language.English
	}

	matcher := language.NewMatcher(supported)
	_, index, confidence := matcher.Match(requested)
	if confidence == language.No {
		return language.English
	}
	return supported[index]
}

// Language returns the language the translator resolved to.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Languages lists the languages with translations.
func (t *Translator) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// T returns the translation of id, falling back to English and then to id.
func (t *Translator) T(id string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id})
}

// TWithData is T with template data.
func (t *Translator) TWithData(id string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// TPlural selects the plural form of id for count. Count is also available
// to the template as {{.Count}}.
func (t *Translator) TPlural(id string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	if t == nil {
		return cfg.MessageID
	}
	msg, err := t.localizer.Localize(cfg)
	if msg != "" {
		return msg
	}
	if err == nil {
		return msg
	}

	// The default language fills gaps in partial translations.
	fallback := i18n.NewLocalizer(t.bundle, language.English.String())
	if msg, err := fallback.Localize(cfg); err == nil {
		return msg
	}
	return cfg.MessageID
}
