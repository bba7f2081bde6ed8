package endpoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/chatsession"
	"github.com/jackzampolin/scrapbook/internal/gateway"
	"github.com/jackzampolin/scrapbook/internal/locale"
	"github.com/jackzampolin/scrapbook/internal/svcctx"
)

// maxChatBody caps the request body of POST /api/chat.
const maxChatBody = 1 << 20

// Raw HTML in replies is omitted from the output; newlines become <br>.
var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

// renderMarkdown converts an assistant reply to HTML. Rendering failures
// return "" so the caller can fall back to the plain text.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// ChatEndpoint handles POST /api/chat.
type ChatEndpoint struct{}

var _ api.Endpoint = (*ChatEndpoint)(nil)

func (e *ChatEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/chat", e.handler
}

func (e *ChatEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get the assistant's reply
//	@Description	Forwards the transcript, with the birthday system instruction prepended, to the chat provider
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chatsession.ChatRequest	true	"Transcript so far"
//	@Success		200		{object}	chatsession.ChatResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/api/chat [post]
func (e *ChatEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := svcctx.LoggerFrom(ctx)

	var req chatsession.ChatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := gateway.ValidateHistory(req.Messages); err != nil {
		writeError(w, http.StatusBadRequest, gateway.MessageBadRoles)
		return
	}

	gw := svcctx.GatewayFrom(ctx)
	if gw == nil {
		writeError(w, http.StatusServiceUnavailable, "chat gateway not initialized")
		return
	}

	limiter := svcctx.RateLimiterFrom(ctx)
	if limiter != nil && !limiter.TryConsume() {
		wait := limiter.RetryAfter()
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		writeError(w, http.StatusTooManyRequests, gateway.MessageUpstream)
		return
	}

	reply, err := gw.Reply(ctx, req.Messages)
	if err != nil {
		var gErr *gateway.Error
		if errors.As(err, &gErr) {
			if gErr.Kind == gateway.KindUpstream && gErr.Status == http.StatusTooManyRequests && limiter != nil {
				limiter.Record429(0)
			}
			writeError(w, gErr.Status, gErr.Message)
			return
		}
		if logger != nil {
			logger.Error("chat reply failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, gateway.MessageInternal)
		return
	}

	writeJSON(w, http.StatusOK, chatsession.ChatResponse{
		Message: reply,
		HTML:    renderMarkdown(reply),
	})
}

func (e *ChatEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send a single message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			req := chatsession.ChatRequest{Messages: []gateway.Message{
				{Role: gateway.RoleUser, Content: strings.Join(args, " ")},
			}}
			var resp chatsession.ChatResponse
			if err := client.Post(cmd.Context(), "/api/chat", req, &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			fmt.Println(resp.Message)
			return nil
		},
	}
}

// GreetingResponse carries the opening message and the fixed chat strings
// for the configured language.
type GreetingResponse struct {
	Message     string `json:"message"`
	Apology     string `json:"apology"`
	Offline     string `json:"offline"`
	Placeholder string `json:"placeholder"`
	Typing      string `json:"typing"`
	Locale      string `json:"locale"`
}

// GreetingEndpoint handles GET /api/chat/greeting.
type GreetingEndpoint struct{}

var _ api.Endpoint = (*GreetingEndpoint)(nil)

func (e *GreetingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/chat/greeting", e.handler
}

func (e *GreetingEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Opening message
//	@Description	The assistant message a new chat session starts with, plus the localized apology strings
//	@Tags			chat
//	@Produce		json
//	@Success		200	{object}	GreetingResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/chat/greeting [get]
func (e *GreetingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	b := svcctx.BuilderFrom(r.Context())
	if b == nil {
		writeError(w, http.StatusServiceUnavailable, "prompt builder not initialized")
		return
	}

	tr := b.Localizer()
	writeJSON(w, http.StatusOK, GreetingResponse{
		Message:     b.OpeningGreeting(),
		Apology:     tr.T(locale.MsgChatApology, nil),
		Offline:     tr.T(locale.MsgChatOffline, nil),
		Placeholder: tr.T(locale.MsgChatPlaceholder, nil),
		Typing:      tr.T(locale.MsgChatTyping, nil),
		Locale:      tr.Lang(),
	})
}

func (e *GreetingEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "greeting",
		Short: "Show the opening message",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp GreetingResponse
			if err := client.Get(cmd.Context(), "/api/chat/greeting", &resp); err != nil {
				return err
			}
			if api.IsStructuredOutput() {
				return api.Output(resp)
			}
			fmt.Println(resp.Message)
			return nil
		},
	}
}
