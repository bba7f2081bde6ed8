package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func writeCompletion(w http.ResponseWriter, content any) {
	resp := map[string]any{
		"id":    "test-id",
		"model": "nex-agi/deepseek-v3.1-nex-n1:free",
		"choices": []map[string]any{
			{
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{
			"prompt_tokens":     10,
			"completion_tokens": 8,
			"total_tokens":      18,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func TestOpenRouterClient_Chat(t *testing.T) {
	t.Run("successful chat", func(t *testing.T) {
		var received openRouterRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if r.Method != http.MethodPost {
				t.Errorf("unexpected method: %s", r.Method)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected authorization: %s", auth)
			}
			if ref := r.Header.Get("HTTP-Referer"); ref != "https://example.test" {
				t.Errorf("unexpected referer: %s", ref)
			}
			if title := r.Header.Get("X-Title"); title != "Sweet 17" {
				t.Errorf("unexpected title: %s", title)
			}
			json.NewDecoder(r.Body).Decode(&received)
			writeCompletion(w, "Haii! Selamat ulang tahun!")
		}))
		defer server.Close()

		client := NewOpenRouterClient(OpenRouterConfig{
			APIKey:  "test-key",
			BaseURL: server.URL,
			Referer: "https://example.test",
			Title:   "Sweet 17",
		})

		result, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{
				{Role: RoleSystem, Content: "persona"},
				{Role: RoleUser, Content: "hai"},
			},
			MaxTokens:   800,
			Temperature: 0.8,
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != "Haii! Selamat ulang tahun!" {
			t.Errorf("Content = %q", result.Content)
		}
		if result.TotalTokens != 18 {
			t.Errorf("TotalTokens = %d, want 18", result.TotalTokens)
		}
		if received.Model != openRouterDefaultModel {
			t.Errorf("model = %q, want default", received.Model)
		}
		if received.MaxTokens != 800 || received.Temperature != 0.8 {
			t.Errorf("max_tokens/temperature = %d/%v", received.MaxTokens, received.Temperature)
		}
		if len(received.Messages) != 2 || received.Messages[0].Role != RoleSystem {
			t.Errorf("messages = %+v", received.Messages)
		}
	})

	t.Run("null content yields empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCompletion(w, nil)
		}))
		defer server.Close()

		client := NewOpenRouterClient(OpenRouterConfig{APIKey: "k", BaseURL: server.URL})
		result, err := client.Chat(context.Background(), &ChatRequest{})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != "" {
			t.Errorf("Content = %q, want empty", result.Content)
		}
	})

	t.Run("non-2xx is a single attempt with status error", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited"}}`))
		}))
		defer server.Close()

		client := NewOpenRouterClient(OpenRouterConfig{APIKey: "k", BaseURL: server.URL})
		_, err := client.Chat(context.Background(), &ChatRequest{})

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("StatusCode = %d", statusErr.StatusCode)
		}
		if statusErr.Body == "" {
			t.Error("expected raw body to be kept for logging")
		}
		if calls.Load() != 1 {
			t.Errorf("calls = %d, want 1", calls.Load())
		}
	})

	t.Run("malformed body is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewOpenRouterClient(OpenRouterConfig{APIKey: "k", BaseURL: server.URL})
		_, err := client.Chat(context.Background(), &ChatRequest{})
		if err == nil {
			t.Fatal("expected error")
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			t.Error("malformed body should not be a StatusError")
		}
	})

	t.Run("respects cancellation", func(t *testing.T) {
		client := NewOpenRouterClient(OpenRouterConfig{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := client.Chat(ctx, &ChatRequest{}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestOpenAIClient_Chat(t *testing.T) {
	t.Run("successful chat", func(t *testing.T) {
		var payload map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&payload)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"created": 1,
				"model": "gpt-4o-mini",
				"choices": [{"index": 0, "finish_reason": "stop",
					"message": {"role": "assistant", "content": "Happy birthday!"}}],
				"usage": {"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8}
			}`))
		}))
		defer server.Close()

		client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
		result, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{
				{Role: RoleSystem, Content: "persona"},
				{Role: RoleUser, Content: "hi"},
				{Role: RoleAssistant, Content: "hello"},
				{Role: RoleUser, Content: "how old?"},
			},
			MaxTokens:   800,
			Temperature: 0.8,
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != "Happy birthday!" {
			t.Errorf("Content = %q", result.Content)
		}
		if result.TotalTokens != 8 {
			t.Errorf("TotalTokens = %d, want 8", result.TotalTokens)
		}
		if got, _ := payload["model"].(string); got != "gpt-4o-mini" {
			t.Errorf("model = %q", got)
		}
		msgs, _ := payload["messages"].([]any)
		if len(msgs) != 4 {
			t.Fatalf("messages = %d, want 4", len(msgs))
		}
		first, _ := msgs[0].(map[string]any)
		if first["role"] != "system" {
			t.Errorf("first role = %v", first["role"])
		}
	})

	t.Run("non-2xx maps to status error", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
		}))
		defer server.Close()

		client := NewOpenAIClient(OpenAIConfig{APIKey: "k", BaseURL: server.URL})
		_, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: RoleUser, Content: "hi"}},
		})

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if statusErr.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("StatusCode = %d", statusErr.StatusCode)
		}
		if calls.Load() != 1 {
			t.Errorf("calls = %d, want 1 (no retries)", calls.Load())
		}
	})
}
