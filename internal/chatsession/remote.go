package chatsession

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/gateway"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []gateway.Message `json:"messages"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Message string `json:"message"`
	HTML    string `json:"html,omitempty"`
}

// Remote is a Gateway that calls a running server over HTTP.
type Remote struct {
	client *api.Client
}

// NewRemote creates a Gateway backed by the server at client's base URL.
func NewRemote(client *api.Client) *Remote {
	return &Remote{client: client}
}

// Reply posts the history to /api/chat. A server error response is returned
// as *api.StatusError; anything else (connection refused, bad body) is
// wrapped with ErrUnreachable.
func (r *Remote) Reply(ctx context.Context, history []gateway.Message) (string, error) {
	var resp ChatResponse
	err := r.client.Post(ctx, "/api/chat", ChatRequest{Messages: history}, &resp)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			return "", statusErr
		}
		return "", fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return resp.Message, nil
}

var _ Gateway = (*Remote)(nil)
var _ Gateway = (*gateway.Gateway)(nil)
