// Package locale loads the embedded message catalog and hands out
// per-language localizers.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when a configured language has no catalog.
const DefaultLanguage = "id"

// Message IDs shared across packages.
const (
	MsgGreetingNight     = "greeting.night"
	MsgGreetingMorning   = "greeting.morning"
	MsgGreetingMidday    = "greeting.midday"
	MsgGreetingAfternoon = "greeting.afternoon"

	MsgCountdownToday  = "countdown.today"
	MsgCountdownFuture = "countdown.future"
	MsgCountdownPast   = "countdown.past"

	MsgLayoutLongDate = "layout.longdate"
	MsgLayoutDate     = "layout.date"
	MsgLayoutTime     = "layout.time"

	MsgChatOpening     = "chat.opening"
	MsgChatApology     = "chat.apology"
	MsgChatOffline     = "chat.offline"
	MsgChatFallback    = "chat.fallback"
	MsgChatPlaceholder = "chat.placeholder"
	MsgChatTyping      = "chat.typing"

	MsgCalendarSummary     = "calendar.summary"
	MsgCalendarDescription = "calendar.description"

	MsgTUIHelp = "tui.help"
	MsgTUIPage = "tui.page"
)

// Catalog wraps a go-i18n bundle loaded from the embedded locale files.
type Catalog struct {
	bundle    *i18n.Bundle
	languages []string
	logger    *slog.Logger
}

// New loads every active.<lang>.json file from the embedded locales directory.
func New(logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if lang == "" {
			logger.Warn("skipping locale file with empty language", "file", name)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("failed to load locale %s: %w", name, err)
		}
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	return &Catalog{bundle: bundle, languages: langs, logger: logger}, nil
}

// MustNew is New for package-level defaults and tests.
func MustNew() *Catalog {
	c, err := New(nil)
	if err != nil {
		panic(err)
	}
	return c
}

// Languages returns the loaded language codes, sorted.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.languages))
	copy(out, c.languages)
	return out
}

// Supports reports whether a catalog exists for lang.
func (c *Catalog) Supports(lang string) bool {
	for _, l := range c.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Localizer returns a localizer for lang, falling back to DefaultLanguage.
func (c *Catalog) Localizer(lang string) *Localizer {
	if !c.Supports(lang) {
		lang = DefaultLanguage
	}
	return &Localizer{
		l:      i18n.NewLocalizer(c.bundle, lang),
		lang:   lang,
		logger: c.logger,
	}
}

// Localizer translates message IDs for a single language.
type Localizer struct {
	l      *i18n.Localizer
	lang   string
	logger *slog.Logger
}

// Lang returns the language this localizer resolves to.
func (l *Localizer) Lang() string {
	return l.lang
}

// T translates id with optional template data. Missing messages return the id.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, err := l.l.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		l.logger.Debug("missing translation", "lang", l.lang, "id", id, "error", err)
		return id
	}
	return msg
}
