package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jackzampolin/scrapbook/internal/birthday"
	"github.com/jackzampolin/scrapbook/internal/config"
	"github.com/jackzampolin/scrapbook/internal/gateway"
	"github.com/jackzampolin/scrapbook/internal/home"
	"github.com/jackzampolin/scrapbook/internal/locale"
	"github.com/jackzampolin/scrapbook/internal/pages"
	"github.com/jackzampolin/scrapbook/internal/providers"
	"github.com/jackzampolin/scrapbook/internal/svcctx"
)

// ServicesConfig holds what NewServices needs besides the config itself.
type ServicesConfig struct {
	Home    *home.Dir
	Logger  *slog.Logger
	Catalog *locale.Catalog
	// Clock overrides the wall clock for the prompt builder. Nil uses
	// birthday.RealClock.
	Clock birthday.Clock
}

// NewServices builds the provider registry, prompt builder, chat gateway,
// rate limiter and page list described by cfg. The serve command hands the
// result to the HTTP server; the terminal client uses it directly in local
// mode.
func NewServices(cfg *config.Config, sc ServicesConfig) (*svcctx.Services, error) {
	if sc.Logger == nil {
		sc.Logger = slog.Default()
	}
	if sc.Catalog == nil {
		catalog, err := locale.New(sc.Logger)
		if err != nil {
			return nil, err
		}
		sc.Catalog = catalog
	}

	pageList, err := loadPages(cfg, sc.Home)
	if err != nil {
		return nil, err
	}

	builder, err := newBuilder(cfg, sc)
	if err != nil {
		return nil, err
	}
	current := birthday.NewCurrent(builder)

	registry := providers.NewRegistry()
	registry.SetLogger(sc.Logger)
	registry.SetResolver(config.ResolveEnvVars)
	registry.Reload(cfg.ToProviderRegistryConfig())

	gw := gateway.New(gatewayConfig(cfg, builder), registry, current, gateway.WithLogger(sc.Logger))

	return &svcctx.Services{
		Registry:    registry,
		Gateway:     gw,
		Birthday:    current,
		Pages:       pageList,
		RateLimiter: providers.NewRateLimiter(int(cfg.Chat.RateLimit)),
		Logger:      sc.Logger,
		Home:        sc.Home,
	}, nil
}

// Reload applies a changed config to running services. Pages are fixed for
// the life of the process.
func Reload(s *svcctx.Services, cfg *config.Config, sc ServicesConfig) error {
	if sc.Logger == nil {
		sc.Logger = s.Logger
	}
	if sc.Home == nil {
		sc.Home = s.Home
	}
	if sc.Catalog == nil {
		catalog, err := locale.New(sc.Logger)
		if err != nil {
			return err
		}
		sc.Catalog = catalog
	}

	builder, err := newBuilder(cfg, sc)
	if err != nil {
		return err
	}

	s.Registry.Reload(cfg.ToProviderRegistryConfig())
	s.Birthday.Set(builder)
	s.Gateway.SetConfig(gatewayConfig(cfg, builder))
	s.RateLimiter.SetLimit(int(cfg.Chat.RateLimit))
	return nil
}

// loadPages picks the page file: pages.path from config, then pages.yaml in
// the home directory, then the built-in pages.
func loadPages(cfg *config.Config, h *home.Dir) ([]pages.Descriptor, error) {
	path := cfg.Pages.Path
	if path == "" && h != nil && h.PagesExists() {
		path = h.PagesPath()
	}
	list, err := pages.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}
	return list, nil
}

func newBuilder(cfg *config.Config, sc ServicesConfig) (*birthday.Builder, error) {
	c := *cfg
	if c.Birthday.PersonaFile == "" && sc.Home != nil {
		if _, err := os.Stat(sc.Home.PersonaPath()); err == nil {
			c.Birthday.PersonaFile = sc.Home.PersonaPath()
		}
	}

	bc, err := c.BirthdayConfig()
	if err != nil {
		return nil, err
	}

	opts := []birthday.Option{birthday.WithLogger(sc.Logger)}
	if sc.Clock != nil {
		opts = append(opts, birthday.WithClock(sc.Clock))
	}
	builder, err := birthday.NewBuilder(bc, sc.Catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt builder: %w", err)
	}
	return builder, nil
}

// gatewayConfig fills in the localized fallback reply when none is configured.
func gatewayConfig(cfg *config.Config, b *birthday.Builder) gateway.Config {
	gc := cfg.GatewayConfig()
	if gc.Fallback == "" {
		gc.Fallback = b.Localizer().T(locale.MsgChatFallback, nil)
	}
	return gc
}
