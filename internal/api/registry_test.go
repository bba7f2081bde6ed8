package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
)

type fakeEndpoint struct {
	method, path string
	needsInit    bool
}

func (e fakeEndpoint) Route() (string, string, http.HandlerFunc) {
	return e.method, e.path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func (e fakeEndpoint) RequiresInit() bool { return e.needsInit }

func (e fakeEndpoint) Command(func() string) *cobra.Command { return &cobra.Command{Use: "fake"} }

func TestRegistry_RegisterRoutes(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeEndpoint{method: "GET", path: "/open"})
	reg.Register(fakeEndpoint{method: "GET", path: "/guarded", needsInit: true})

	if got := reg.Routes(); len(got) != 2 || got[0] != "GET /open" || got[1] != "GET /guarded" {
		t.Fatalf("Routes() = %v", got)
	}

	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}
	mux := http.NewServeMux()
	reg.RegisterRoutes(mux, guard)

	tests := []struct {
		path string
		want int
	}{
		{"/open", http.StatusNoContent},
		{"/guarded", http.StatusServiceUnavailable},
		{"/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestRegistry_DuplicateRoutePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeEndpoint{method: "GET", path: "/a"})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate route")
		}
	}()
	reg.Register(fakeEndpoint{method: "GET", path: "/a"})
}
