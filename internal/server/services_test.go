package server

import (
	"os"
	"testing"

	"github.com/jackzampolin/scrapbook/internal/config"
	"github.com/jackzampolin/scrapbook/internal/home"
	"github.com/jackzampolin/scrapbook/internal/pages"
)

const onePage = `pages:
  - variant: cover
    title: Just One
`

func TestNewServices_Defaults(t *testing.T) {
	svc, _ := newTestServices(t)

	if len(svc.Pages) != 8 {
		t.Errorf("len(Pages) = %d, want 8", len(svc.Pages))
	}
	if got := svc.Gateway.Config().Fallback; got != "Maaf, saya tidak bisa merespons saat ini." {
		t.Errorf("Fallback = %q, want localized default", got)
	}
	if svc.RateLimiter.Status().TokensLimit != 30 {
		t.Errorf("TokensLimit = %d", svc.RateLimiter.Status().TokensLimit)
	}
	if svc.Birthday.Get() == nil {
		t.Fatal("expected a prompt builder")
	}
}

func TestNewServices_HomeOverrides(t *testing.T) {
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := h.EnsureExists(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(h.PagesPath(), []byte(onePage), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(h.PersonaPath(), []byte("You are {{.Name}}'s friend."), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := NewServices(config.DefaultConfig(), ServicesConfig{Home: h, Logger: quietLogger(), Clock: testClock})
	if err != nil {
		t.Fatalf("NewServices() error = %v", err)
	}

	if len(svc.Pages) != 1 || svc.Pages[0].Title != "Just One" {
		t.Errorf("Pages = %+v", svc.Pages)
	}
	if got := svc.Birthday.SystemPrompt(); got != "You are Rynn's friend." {
		t.Errorf("SystemPrompt() = %q", got)
	}

	t.Run("config path wins over home", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Pages.Path = writeTemp(t, pages.DefaultYAML())
		svc, err := NewServices(cfg, ServicesConfig{Home: h, Logger: quietLogger()})
		if err != nil {
			t.Fatalf("NewServices() error = %v", err)
		}
		if len(svc.Pages) != 8 {
			t.Errorf("len(Pages) = %d, want 8", len(svc.Pages))
		}
	})

	t.Run("invalid page file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Pages.Path = writeTemp(t, []byte("pages: []\n"))
		if _, err := NewServices(cfg, ServicesConfig{Logger: quietLogger()}); err == nil {
			t.Error("expected error for empty page list")
		}
	})
}

func TestReload(t *testing.T) {
	svc, _ := newTestServices(t)

	cfg := config.DefaultConfig()
	cfg.Birthday.Name = "Sekar"
	cfg.Chat.Provider = "openai"
	cfg.Chat.RateLimit = 5
	cfg.Chat.Fallback = "..."

	if err := Reload(svc, cfg, ServicesConfig{Clock: testClock}); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	gc := svc.Gateway.Config()
	if gc.Provider != "openai" || gc.Model != "gpt-4o-mini" || gc.Fallback != "..." {
		t.Errorf("gateway config = %+v", gc)
	}
	if svc.Birthday.Get().Context().Name != "Sekar" {
		t.Errorf("builder not swapped")
	}
	if svc.RateLimiter.Status().TokensLimit != 5 {
		t.Errorf("TokensLimit = %d, want 5", svc.RateLimiter.Status().TokensLimit)
	}

	t.Run("bad timezone keeps previous services", func(t *testing.T) {
		bad := config.DefaultConfig()
		bad.Birthday.Timezone = "Mars/Olympus"
		if err := Reload(svc, bad, ServicesConfig{}); err == nil {
			t.Fatal("expected error")
		}
		if svc.Gateway.Config().Provider != "openai" {
			t.Error("gateway config changed on failed reload")
		}
		if svc.Birthday.Get().Context().Name != "Sekar" {
			t.Error("builder changed on failed reload")
		}
	})
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "pages-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}
