package providers

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LLMProviderConfig describes one configured provider. APIKey may hold a
// ${ENV} reference; it is resolved on every GetLLM call.
type LLMProviderConfig struct {
	Type        string // "openrouter", "openai"
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Referer     string
	Title       string
	Enabled     bool
}

// RegistryConfig defines the providers to instantiate from config.
type RegistryConfig struct {
	LLMProviders map[string]LLMProviderConfig
}

// cachedClient remembers the resolved settings a client was built with so
// a rotated credential produces a fresh client.
type cachedClient struct {
	cfg    LLMProviderConfig
	client LLMClient
}

// Registry holds provider configuration and LLM clients.
// Clients registered directly (tests, mocks) take precedence over configured ones.
type Registry struct {
	mu         sync.RWMutex
	configs    map[string]LLMProviderConfig
	llmClients map[string]LLMClient
	cache      map[string]cachedClient
	resolve    func(string) string
	logger     *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		configs:    make(map[string]LLMProviderConfig),
		llmClients: make(map[string]LLMClient),
		cache:      make(map[string]cachedClient),
		resolve:    os.ExpandEnv,
		logger:     slog.Default(),
	}
}

// NewRegistryFromConfig creates a registry holding the given provider configs.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.applyConfig(cfg)
	return r
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// SetResolver replaces the function used to expand ${ENV} references in
// API keys. Defaults to os.ExpandEnv.
func (r *Registry) SetResolver(fn func(string) string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn != nil {
		r.resolve = fn
	}
}

// RegisterLLM registers an LLM client by name.
func (r *Registry) RegisterLLM(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llmClients[name] = client
	r.logger.Info("registered LLM client", "name", name)
}

// GetLLM returns an LLM client by name. For configured providers the API key
// is resolved now; an empty key yields ErrMissingCredential without building
// a client.
func (r *Registry) GetLLM(name string) (LLMClient, error) {
	r.mu.RLock()
	if client, ok := r.llmClients[name]; ok {
		r.mu.RUnlock()
		return client, nil
	}
	cfg, ok := r.configs[name]
	resolve := r.resolve
	r.mu.RUnlock()

	if !ok || !cfg.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}

	cfg.APIKey = strings.TrimSpace(resolve(cfg.APIKey))
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingCredential, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[name]; ok && !needsLLMUpdate(cached.cfg, cfg) {
		return cached.client, nil
	}
	client := createLLMClient(cfg)
	if client == nil {
		return nil, fmt.Errorf("%w: %s has unknown type %q", ErrProviderNotFound, name, cfg.Type)
	}
	r.cache[name] = cachedClient{cfg: cfg, client: client}
	return client, nil
}

// ProviderConfig returns the configuration for a named provider.
func (r *Registry) ProviderConfig(name string) (LLMProviderConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[name]
	return cfg, ok
}

// HasCredential reports whether a provider is usable right now: registered
// directly, or configured, enabled and with a non-empty resolved key.
func (r *Registry) HasCredential(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.llmClients[name]; ok {
		return true
	}
	cfg, ok := r.configs[name]
	if !ok || !cfg.Enabled {
		return false
	}
	return strings.TrimSpace(r.resolve(cfg.APIKey)) != ""
}

// ListLLM returns all registered and configured provider names, sorted.
func (r *Registry) ListLLM() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.llmClients)+len(r.configs))
	names := make([]string, 0, len(r.llmClients)+len(r.configs))
	for name := range r.llmClients {
		seen[name] = true
		names = append(names, name)
	}
	for name := range r.configs {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasLLM checks if an LLM client is registered or configured.
func (r *Registry) HasLLM(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.llmClients[name]; ok {
		return true
	}
	_, ok := r.configs[name]
	return ok
}

// Reload replaces the provider configuration. Cached clients for providers
// that were removed or changed are dropped.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, provCfg := range cfg.LLMProviders {
		existing, hasExisting := r.configs[name]
		switch {
		case !hasExisting:
			r.logger.Info("registered LLM provider", "name", name, "type", provCfg.Type)
		case existing != provCfg:
			delete(r.cache, name)
			r.logger.Info("updated LLM provider", "name", name, "type", provCfg.Type)
		}
	}
	for name := range r.configs {
		if _, ok := cfg.LLMProviders[name]; !ok {
			delete(r.cache, name)
			r.logger.Info("unregistered LLM provider", "name", name)
		}
	}

	r.configs = make(map[string]LLMProviderConfig, len(cfg.LLMProviders))
	r.applyConfig(cfg)
}

// applyConfig applies configuration without locking (used during init).
func (r *Registry) applyConfig(cfg RegistryConfig) {
	for name, provCfg := range cfg.LLMProviders {
		r.configs[name] = provCfg
	}
}

// createLLMClient creates an LLM client based on provider type.
func createLLMClient(cfg LLMProviderConfig) LLMClient {
	switch cfg.Type {
	case OpenRouterName:
		return NewOpenRouterClient(OpenRouterConfig{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.Model,
			Timeout:      cfg.Timeout,
			Referer:      cfg.Referer,
			Title:        cfg.Title,
		})
	case OpenAIName:
		return NewOpenAIClient(OpenAIConfig{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			DefaultModel: cfg.Model,
			Timeout:      cfg.Timeout,
		})
	default:
		return nil
	}
}

// needsLLMUpdate checks if a cached client was built from different settings.
func needsLLMUpdate(built, want LLMProviderConfig) bool {
	return built != want
}
