package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackzampolin/scrapbook/internal/birthday"
)

// Config holds scrapbook configuration.
// Stored at: ~/.scrapbook/config.yaml
type Config struct {
	Server       ServerCfg                 `mapstructure:"server" yaml:"server"`
	Birthday     BirthdayCfg               `mapstructure:"birthday" yaml:"birthday"`
	Chat         ChatCfg                   `mapstructure:"chat" yaml:"chat"`
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Pages        PagesCfg                  `mapstructure:"pages" yaml:"pages"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// BirthdayCfg describes whose birthday it is.
type BirthdayCfg struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Creator string `mapstructure:"creator" yaml:"creator"`
	Age     int    `mapstructure:"age" yaml:"age"`
	// Date is YYYY-MM-DD in Timezone.
	Date     string `mapstructure:"date" yaml:"date"`
	Timezone string `mapstructure:"timezone" yaml:"timezone"` // IANA name, e.g. Asia/Jakarta
	// ZoneLabel overrides the zone abbreviation shown to the assistant.
	ZoneLabel   string   `mapstructure:"zone_label" yaml:"zone_label"`
	Locale      string   `mapstructure:"locale" yaml:"locale"`             // "id" or "en"
	PersonaFile string   `mapstructure:"persona_file" yaml:"persona_file"` // text/template replacing the built-in persona
	Facts       []string `mapstructure:"facts" yaml:"facts"`
}

// ChatCfg selects the provider used for chat replies.
type ChatCfg struct {
	Provider  string  `mapstructure:"provider" yaml:"provider"`
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per minute across all sessions
	Fallback  string  `mapstructure:"fallback" yaml:"fallback"`     // Reply used when the provider answers with empty text
}

// LLMProviderCfg configures an LLM provider.
type LLMProviderCfg struct {
	Type           string  `mapstructure:"type" yaml:"type"`       // "openrouter", "openai"
	Model          string  `mapstructure:"model" yaml:"model"`     // Model name
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Referer        string  `mapstructure:"referer" yaml:"referer"` // OpenRouter attribution
	Title          string  `mapstructure:"title" yaml:"title"`     // OpenRouter attribution
	Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
}

// Timeout returns the request timeout as a duration.
func (p LLMProviderCfg) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// PagesCfg points at a custom page file.
type PagesCfg struct {
	Path string `mapstructure:"path" yaml:"path"` // Empty uses the built-in pages
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Birthday: BirthdayCfg{
			Name:     "Rynn",
			Creator:  "Randy",
			Age:      17,
			Date:     "2026-01-10",
			Timezone: "Asia/Jakarta",
			Locale:   "id",
			Facts: []string{
				"Nama: Randy",
				"Hubungan: Teman / Sahabat",
				"Hobi: Bermain badminton dan main game",
				"Fun fact: Suka males-malesan, sering makan telat, tidur harus dengerin ASMR, kebanyakan suka rebahan terus ketiduran, jam tidur rusak karena sering begadang",
				"Kenapa bikin website ini: Karena Randy pengen kasih surprise spesial di hari ulang tahun Rynn yang ke-17",
			},
		},
		Chat: ChatCfg{
			Provider:  "openrouter",
			RateLimit: 30,
		},
		LLMProviders: map[string]LLMProviderCfg{
			"openrouter": {
				Type:           "openrouter",
				Model:          "nex-agi/deepseek-v3.1-nex-n1:free",
				APIKey:         "${OPENROUTER_API_KEY}",
				MaxTokens:      800,
				Temperature:    0.8,
				TimeoutSeconds: 60,
				Referer:        "https://birthdayfriend-vert.vercel.app",
				Title:          "Sweet 17 Birthday Scrapbook",
				Enabled:        true,
			},
			"openai": {
				Type:           "openai",
				Model:          "gpt-4o-mini",
				APIKey:         "${OPENAI_API_KEY}",
				MaxTokens:      800,
				Temperature:    0.8,
				TimeoutSeconds: 60,
				Enabled:        true,
			},
		},
	}
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}

// EnabledLLMProviders returns all enabled LLM providers.
func (c *Config) EnabledLLMProviders() map[string]LLMProviderCfg {
	result := make(map[string]LLMProviderCfg)
	for name, cfg := range c.LLMProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}

// Validate checks the settings the server cannot start without. A missing
// API key is not an error here; the chat endpoint reports it per request.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Birthday.Name == "" {
		errs = append(errs, errors.New("birthday.name is required"))
	}
	if _, err := time.Parse(birthday.DateLayout, c.Birthday.Date); err != nil {
		errs = append(errs, fmt.Errorf("birthday.date must be YYYY-MM-DD: %w", err))
	}
	if _, err := time.LoadLocation(c.Birthday.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("birthday.timezone: %w", err))
	}
	if c.Chat.Provider == "" {
		errs = append(errs, errors.New("chat.provider is required"))
	} else if _, ok := c.LLMProviders[c.Chat.Provider]; !ok {
		errs = append(errs, fmt.Errorf("chat.provider %q has no llm_providers entry", c.Chat.Provider))
	}
	for name, p := range c.LLMProviders {
		switch p.Type {
		case "openrouter", "openai":
		default:
			errs = append(errs, fmt.Errorf("llm_providers.%s: unknown type %q", name, p.Type))
		}
	}

	return errors.Join(errs...)
}
