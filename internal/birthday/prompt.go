// Package birthday derives the birthday countdown and renders the chatbot's
// system instruction from it.
package birthday

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/jackzampolin/scrapbook/internal/locale"
)

// DateLayout is the configuration format of the target date.
const DateLayout = "2006-01-02"

//go:embed persona/*.tmpl
var personaFS embed.FS

// Config describes whose birthday it is and how the assistant should speak.
type Config struct {
	Name    string
	Creator string
	Age     int
	// Date is the target date as YYYY-MM-DD in Location.
	Date     string
	Location *time.Location
	// ZoneLabel overrides the zone abbreviation shown in the prompt.
	ZoneLabel string
	Locale    string
	// Facts about the creator that the assistant may share.
	Facts []string
	// PersonaTemplate replaces the embedded persona when non-empty.
	PersonaTemplate string
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock injects the time source.
func WithClock(c Clock) Option {
	return func(b *Builder) { b.clock = c }
}

// WithLogger sets the logger used for template failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder renders system instructions. It holds no mutable state, so a
// single instance is safe for concurrent use.
type Builder struct {
	cfg      Config
	loc      *time.Location
	target   time.Time
	clock    Clock
	tr       *locale.Localizer
	persona  *template.Template
	fallback *template.Template
	logger   *slog.Logger
}

// NewBuilder validates cfg and parses the persona templates.
func NewBuilder(cfg Config, catalog *locale.Catalog, opts ...Option) (*Builder, error) {
	if catalog == nil {
		return nil, fmt.Errorf("locale catalog is required")
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("birthday name is required")
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	target, err := time.ParseInLocation(DateLayout, cfg.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday date %q: %w", cfg.Date, err)
	}

	tr := catalog.Localizer(cfg.Locale)

	fallback, err := embeddedPersona(tr.Lang())
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:      cfg,
		loc:      loc,
		target:   target,
		clock:    RealClock{},
		tr:       tr,
		persona:  fallback,
		fallback: fallback,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if strings.TrimSpace(cfg.PersonaTemplate) != "" {
		custom, err := template.New("persona").Parse(cfg.PersonaTemplate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse persona template: %w", err)
		}
		b.persona = custom
	}

	return b, nil
}

// PersonaTemplate returns the built-in persona source for lang, falling back
// to the default language. It is the starting point for a custom persona file.
func PersonaTemplate(lang string) ([]byte, error) {
	data, err := personaFS.ReadFile("persona/" + lang + ".tmpl")
	if err != nil {
		data, err = personaFS.ReadFile("persona/" + locale.DefaultLanguage + ".tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to read persona template: %w", err)
		}
	}
	return data, nil
}

func embeddedPersona(lang string) (*template.Template, error) {
	data, err := PersonaTemplate(lang)
	if err != nil {
		return nil, err
	}
	t, err := template.New("persona").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse persona template: %w", err)
	}
	return t, nil
}

// Localizer returns the localizer the builder renders with.
func (b *Builder) Localizer() *locale.Localizer {
	return b.tr
}

// Location returns the configured time zone.
func (b *Builder) Location() *time.Location {
	return b.loc
}

// Target returns midnight of the birthday in the configured time zone.
func (b *Builder) Target() time.Time {
	return b.target
}

// OpeningGreeting returns the assistant's first message for a new session.
func (b *Builder) OpeningGreeting() string {
	return b.tr.T(locale.MsgChatOpening, map[string]any{
		"Name":    b.cfg.Name,
		"Age":     b.cfg.Age,
		"Creator": b.cfg.Creator,
	})
}

type promptData struct {
	Name      string
	Creator   string
	Age       int
	Date      string
	Time      string
	Zone      string
	Greeting  string
	Countdown string
	Opening   string
	Facts     []string
}

// SystemPrompt renders the system instruction for the current moment.
// It never fails: a custom persona that cannot render falls back to the
// embedded one.
func (b *Builder) SystemPrompt() string {
	c := b.Context()
	data := promptData{
		Name:      b.cfg.Name,
		Creator:   b.cfg.Creator,
		Age:       b.cfg.Age,
		Date:      c.Date,
		Time:      c.Time,
		Zone:      c.Zone,
		Greeting:  c.Greeting,
		Countdown: b.Countdown(c),
		Opening:   b.OpeningGreeting(),
		Facts:     b.cfg.Facts,
	}

	var buf bytes.Buffer
	if err := b.persona.Execute(&buf, data); err == nil && buf.Len() > 0 {
		return buf.String()
	} else if err != nil {
		b.logger.Error("persona template failed, using embedded persona", "error", err)
	}

	buf.Reset()
	if err := b.fallback.Execute(&buf, data); err != nil || buf.Len() == 0 {
		b.logger.Error("embedded persona failed", "error", err)
		return fmt.Sprintf("%s\n\n%s %s %s\n%s", data.Opening, data.Date, data.Time, data.Zone, data.Countdown)
	}
	return buf.String()
}
