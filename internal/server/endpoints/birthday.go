package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/birthday"
	"github.com/jackzampolin/scrapbook/internal/svcctx"
)

// BirthdayEndpoint handles GET /api/birthday.
type BirthdayEndpoint struct{}

var _ api.Endpoint = (*BirthdayEndpoint)(nil)

func (e *BirthdayEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/birthday", e.handler
}

func (e *BirthdayEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Birthday context
//	@Description	Current date, time band and countdown in the configured time zone
//	@Tags			birthday
//	@Produce		json
//	@Success		200	{object}	birthday.Context
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/birthday [get]
func (e *BirthdayEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	b := svcctx.BuilderFrom(r.Context())
	if b == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt builder not initialized")
		return
	}
	writeJSON(w, http.StatusOK, b.Context())
}

func (e *BirthdayEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Show the countdown and time of day",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp birthday.Context
			if err := client.Get(cmd.Context(), "/api/birthday", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			fmt.Printf("%s, %s %s %s\n", resp.Greeting, resp.Date, resp.Time, resp.Zone)
			switch {
			case resp.IsToday:
				fmt.Printf("Today is %s's birthday (%d)\n", resp.Name, resp.Age)
			case resp.DaysUntil > 0:
				fmt.Printf("%d days until %s (%s)\n", resp.DaysUntil, resp.Name, resp.Target)
			default:
				fmt.Printf("%s's birthday was %d days ago (%s)\n", resp.Name, -resp.DaysUntil, resp.Target)
			}
			return nil
		},
	}
}

// CalendarEndpoint handles GET /api/birthday/calendar.ics.
type CalendarEndpoint struct{}

var _ api.Endpoint = (*CalendarEndpoint)(nil)

func (e *CalendarEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/birthday/calendar.ics", e.handler
}

func (e *CalendarEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Birthday calendar event
//	@Description	An all-day iCalendar event on the birthday
//	@Tags			birthday
//	@Produce		text/calendar
//	@Success		200	{string}	string
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/birthday/calendar.ics [get]
func (e *CalendarEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	b := svcctx.BuilderFrom(r.Context())
	if b == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt builder not initialized")
		return
	}

	data, err := b.Calendar()
	if err != nil {
		if logger := svcctx.LoggerFrom(r.Context()); logger != nil {
			logger.Error("calendar export failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="birthday.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (e *CalendarEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Download the birthday as an .ics file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, err := client.GetRaw(cmd.Context(), "/api/birthday/calendar.ics")
			if err != nil {
				return err
			}
			if outputFile == "" {
				os.Stdout.Write(data)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write calendar: %w", err)
			}
			fmt.Printf("Wrote %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "Write to this file instead of stdout")
	return cmd
}

// PromptResponse carries the system instruction the next chat turn would use.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// PromptEndpoint handles GET /api/prompt.
type PromptEndpoint struct{}

var _ api.Endpoint = (*PromptEndpoint)(nil)

func (e *PromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompt", e.handler
}

func (e *PromptEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Current system prompt
//	@Description	The system instruction built for this moment, as it would be sent with the next chat turn
//	@Tags			birthday
//	@Produce		json
//	@Success		200	{object}	PromptResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/prompt [get]
func (e *PromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	b := svcctx.BuilderFrom(r.Context())
	if b == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt builder not initialized")
		return
	}
	writeJSON(w, http.StatusOK, PromptResponse{Prompt: b.SystemPrompt()})
}

func (e *PromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the current system prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PromptResponse
			if err := client.Get(cmd.Context(), "/api/prompt", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			fmt.Println(resp.Prompt)
			return nil
		},
	}
}
