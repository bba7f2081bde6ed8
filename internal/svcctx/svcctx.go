// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/scrapbook/internal/birthday"
	"github.com/jackzampolin/scrapbook/internal/config"
	"github.com/jackzampolin/scrapbook/internal/gateway"
	"github.com/jackzampolin/scrapbook/internal/home"
	"github.com/jackzampolin/scrapbook/internal/pages"
	"github.com/jackzampolin/scrapbook/internal/providers"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Registry      *providers.Registry
	Gateway       *gateway.Gateway
	Birthday      *birthday.Current
	Pages         []pages.Descriptor
	RateLimiter   *providers.RateLimiter
	ConfigManager *config.Manager
	Logger        *slog.Logger
	Home          *home.Dir
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// RegistryFrom extracts the provider registry from context.
func RegistryFrom(ctx context.Context) *providers.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Registry
	}
	return nil
}

// GatewayFrom extracts the chat gateway from context.
func GatewayFrom(ctx context.Context) *gateway.Gateway {
	if s := ServicesFrom(ctx); s != nil {
		return s.Gateway
	}
	return nil
}

// BuilderFrom extracts the active prompt builder from context.
func BuilderFrom(ctx context.Context) *birthday.Builder {
	if s := ServicesFrom(ctx); s != nil && s.Birthday != nil {
		return s.Birthday.Get()
	}
	return nil
}

// PagesFrom extracts the page descriptors from context.
func PagesFrom(ctx context.Context) []pages.Descriptor {
	if s := ServicesFrom(ctx); s != nil {
		return s.Pages
	}
	return nil
}

// RateLimiterFrom extracts the chat rate limiter from context.
func RateLimiterFrom(ctx context.Context) *providers.RateLimiter {
	if s := ServicesFrom(ctx); s != nil {
		return s.RateLimiter
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigManager
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
