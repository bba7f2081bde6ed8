package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/providers"
	"github.com/jackzampolin/scrapbook/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

var _ api.Endpoint = (*HealthEndpoint)(nil)

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Liveness check
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

var _ api.Endpoint = (*ReadyEndpoint)(nil)

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Readiness check
//	@Description	Ready once the chat provider has a credential configured
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	gw := svcctx.GatewayFrom(r.Context())
	registry := svcctx.RegistryFrom(r.Context())
	if gw == nil || registry == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Reason: "not_initialized"})
		return
	}

	provider := gw.Config().Provider
	resp := HealthResponse{Status: "ok", Provider: provider}
	if !registry.HasLLM(provider) {
		resp.Status = "degraded"
		resp.Reason = "provider_not_configured"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	if !registry.HasCredential(provider) {
		resp.Status = "degraded"
		resp.Reason = "missing_credential"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes chat credential)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:   %s\n", resp.Status)
			fmt.Printf("Provider: %s\n", resp.Provider)
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server    string                       `json:"server"`
	Config    string                       `json:"config,omitempty"`
	Home      string                       `json:"home,omitempty"`
	Providers ProvidersStatus              `json:"providers"`
	Birthday  *BirthdayStatus              `json:"birthday,omitempty"`
	Pages     int                          `json:"pages"`
	RateLimit *providers.RateLimiterStatus `json:"rate_limit,omitempty"`
}

// ProvidersStatus shows registered LLM providers and the one used for chat.
type ProvidersStatus struct {
	LLM        []string `json:"llm"`
	Chat       string   `json:"chat"`
	Credential bool     `json:"credential"`
}

// BirthdayStatus is a short countdown summary.
type BirthdayStatus struct {
	Name      string `json:"name"`
	Target    string `json:"target"`
	DaysUntil int    `json:"days_until"`
	IsToday   bool   `json:"is_today"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

var _ api.Endpoint = (*StatusEndpoint)(nil)

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Providers, countdown, page count and chat rate limit
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := StatusResponse{
		Server: "running",
		Pages:  len(svcctx.PagesFrom(ctx)),
	}
	if cm := svcctx.ConfigManagerFrom(ctx); cm != nil {
		resp.Config = cm.ConfigFile()
	}
	if h := svcctx.HomeFrom(ctx); h != nil {
		resp.Home = h.Path()
	}

	if registry := svcctx.RegistryFrom(ctx); registry != nil {
		resp.Providers.LLM = registry.ListLLM()
		if gw := svcctx.GatewayFrom(ctx); gw != nil {
			resp.Providers.Chat = gw.Config().Provider
			resp.Providers.Credential = registry.HasCredential(resp.Providers.Chat)
		}
	}

	if b := svcctx.BuilderFrom(ctx); b != nil {
		c := b.Context()
		resp.Birthday = &BirthdayStatus{
			Name:      c.Name,
			Target:    c.Target,
			DaysUntil: c.DaysUntil,
			IsToday:   c.IsToday,
		}
	}

	if limiter := svcctx.RateLimiterFrom(ctx); limiter != nil {
		status := limiter.Status()
		resp.RateLimit = &status
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			fmt.Printf("Server: %s\n", resp.Server)
			fmt.Printf("Pages:  %d\n", resp.Pages)
			if resp.Config != "" {
				fmt.Printf("Config: %s\n", resp.Config)
			}
			if resp.Home != "" {
				fmt.Printf("Home:   %s\n", resp.Home)
			}
			fmt.Printf("Providers:\n")
			fmt.Printf("  LLM:        %v\n", resp.Providers.LLM)
			fmt.Printf("  Chat:       %s\n", resp.Providers.Chat)
			fmt.Printf("  Credential: %t\n", resp.Providers.Credential)
			if resp.Birthday != nil {
				fmt.Printf("Birthday:\n")
				fmt.Printf("  %s on %s (%d days)\n", resp.Birthday.Name, resp.Birthday.Target, resp.Birthday.DaysUntil)
			}
			if resp.RateLimit != nil {
				fmt.Printf("Rate limit: %d/%d tokens\n", resp.RateLimit.TokensAvailable, resp.RateLimit.TokensLimit)
			}
			return nil
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
