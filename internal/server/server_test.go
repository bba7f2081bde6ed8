package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	_ "time/tzdata"

	"github.com/jackzampolin/scrapbook/internal/birthday"
	"github.com/jackzampolin/scrapbook/internal/config"
	"github.com/jackzampolin/scrapbook/internal/providers"
	"github.com/jackzampolin/scrapbook/internal/server/endpoints"
	"github.com/jackzampolin/scrapbook/internal/svcctx"
)

// testClock is the evening of 2026-01-05 in Jakarta, five days before the
// default birthday.
var testClock = birthday.FixedClock(time.Date(2026, 1, 5, 19, 30, 0, 0, time.FixedZone("WIB", 7*3600)))

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServices builds services from the default config with a mock
// client standing in for the chat provider.
func newTestServices(t *testing.T) (*svcctx.Services, *providers.MockClient) {
	t.Helper()

	svc, err := NewServices(config.DefaultConfig(), ServicesConfig{
		Logger: quietLogger(),
		Clock:  testClock,
	})
	if err != nil {
		t.Fatalf("NewServices() error = %v", err)
	}

	mock := providers.NewMockClient()
	mock.Latency = 0
	mock.ResponseText = "Halo **Rynn**!\nSelamat ulang tahun"
	svc.Registry.RegisterLLM("openrouter", mock)
	return svc, mock
}

func waitForServer(ctx context.Context, baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

func TestServer_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, _ := newTestServices(t)
	srv, err := New(Config{
		Host:     "127.0.0.1",
		Port:     "0",
		Services: svc,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.IsRunning() {
		t.Error("server should not be running before Start")
	}

	serverErr := make(chan error, 1)
	serverCtx, serverCancel := context.WithCancel(ctx)
	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	// Addr switches to the bound port once listening
	deadline := time.Now().Add(5 * time.Second)
	for !srv.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	baseURL := "http://" + srv.Addr()
	if err := waitForServer(ctx, baseURL, 5*time.Second); err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	t.Run("health_endpoint", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		defer resp.Body.Close()

		var health endpoints.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("health.Status = %q, want ok", health.Status)
		}
	})

	t.Run("ready_endpoint", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/ready")
		if err != nil {
			t.Fatalf("ready check failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("ready status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("double_start", func(t *testing.T) {
		if err := srv.Start(ctx); err == nil {
			t.Error("expected error starting a running server")
		}
	})

	serverCancel()
	select {
	case err := <-serverErr:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
	if srv.IsRunning() {
		t.Error("server should not be running after shutdown")
	}
}

func TestServer_PortInUse(t *testing.T) {
	first, err := New(Config{Port: "0", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go first.Start(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for !first.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	_, port, err := net.SplitHostPort(first.Addr())
	if err != nil {
		t.Fatalf("SplitHostPort(%q) error = %v", first.Addr(), err)
	}
	second, err := New(Config{Port: port, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := second.Start(ctx); err == nil {
		t.Error("expected listen error on a busy port")
	}
	if second.IsRunning() {
		t.Error("failed server should not report running")
	}
}

func TestServer_Defaults(t *testing.T) {
	srv, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if srv.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", srv.Addr())
	}
	if srv.Services() != nil {
		t.Error("expected nil services")
	}
}
