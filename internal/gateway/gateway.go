// Package gateway turns a chat transcript into one completion request with
// the birthday persona prepended. It holds no conversation state and makes a
// single provider attempt per call.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jackzampolin/scrapbook/internal/providers"
)

// Transcript roles accepted from callers. The system role is reserved for
// the persona the gateway prepends.
const (
	RoleUser      = providers.RoleUser
	RoleAssistant = providers.RoleAssistant
)

// DefaultFallback is used when the provider returns no text and no
// fallback is configured.
const DefaultFallback = "Maaf, saya tidak bisa merespons saat ini."

// maxLoggedBody bounds how much of a provider error body reaches the log.
const maxLoggedBody = 512

// Message is one transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config selects the provider and generation limits.
type Config struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	// Fallback replaces an empty completion.
	Fallback string
}

// ProviderSource resolves a provider name to a client.
type ProviderSource interface {
	GetLLM(name string) (providers.LLMClient, error)
}

// PromptSource renders the current system instruction.
type PromptSource interface {
	SystemPrompt() string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the gateway logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// Gateway forwards transcripts to the configured provider.
type Gateway struct {
	mu        sync.RWMutex
	cfg       Config
	providers ProviderSource
	prompt    PromptSource
	logger    *slog.Logger
}

// New creates a Gateway.
func New(cfg Config, src ProviderSource, prompt PromptSource, opts ...Option) *Gateway {
	g := &Gateway{
		cfg:       cfg,
		providers: src,
		prompt:    prompt,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetConfig swaps the provider selection and limits. Used on config reload.
func (g *Gateway) SetConfig(cfg Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = cfg
}

// Config returns the current configuration.
func (g *Gateway) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg
}

// Reply sends the system instruction plus history to the provider and
// returns the first choice's text, or the fallback when that text is empty.
// Failures are returned as *Error.
func (g *Gateway) Reply(ctx context.Context, history []Message) (string, error) {
	g.mu.RLock()
	cfg := g.cfg
	prompt := g.prompt
	g.mu.RUnlock()

	if err := ValidateHistory(history); err != nil {
		return "", err
	}

	client, err := g.providers.GetLLM(cfg.Provider)
	if err != nil {
		g.logger.Error("chat provider unavailable", "provider", cfg.Provider, "error", err)
		return "", NewConfiguration(err)
	}

	messages := make([]providers.Message, 0, len(history)+1)
	messages = append(messages, providers.Message{
		Role:    providers.RoleSystem,
		Content: prompt.SystemPrompt(),
	})
	for _, m := range history {
		messages = append(messages, providers.Message{Role: m.Role, Content: m.Content})
	}

	requestID := uuid.New().String()
	result, err := client.Chat(ctx, &providers.ChatRequest{
		Messages:    messages,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		RequestID:   requestID,
	})
	if err != nil {
		var statusErr *providers.StatusError
		if errors.As(err, &statusErr) {
			g.logger.Error("chat provider returned error",
				"provider", cfg.Provider,
				"request_id", requestID,
				"status", statusErr.StatusCode,
				"body", truncate(statusErr.Body, maxLoggedBody))
			return "", NewUpstream(statusErr.StatusCode, err)
		}
		g.logger.Error("chat request failed", "provider", cfg.Provider, "request_id", requestID, "error", err)
		return "", NewTransport(err)
	}

	g.logger.Debug("chat reply",
		"provider", cfg.Provider,
		"request_id", requestID,
		"model", result.ModelUsed,
		"total_tokens", result.TotalTokens,
		"duration", result.ExecutionTime)

	if result.Content == "" {
		if cfg.Fallback != "" {
			return cfg.Fallback, nil
		}
		return DefaultFallback, nil
	}
	return result.Content, nil
}

// ValidateHistory checks that every entry has a caller role.
func ValidateHistory(history []Message) error {
	for _, m := range history {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return NewInvalidRequest(MessageBadRoles)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
