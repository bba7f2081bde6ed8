package chatsession

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/gateway"
)

// blockingGateway holds every reply until release is closed.
type blockingGateway struct {
	mu      sync.Mutex
	calls   [][]gateway.Message
	started chan struct{}
	release chan struct{}
	reply   string
	err     error
}

func newBlockingGateway(reply string, err error) *blockingGateway {
	return &blockingGateway{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
		reply:   reply,
		err:     err,
	}
}

func (g *blockingGateway) Reply(ctx context.Context, history []gateway.Message) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, history)
	g.mu.Unlock()
	g.started <- struct{}{}
	<-g.release
	return g.reply, g.err
}

type funcGateway func(ctx context.Context, history []gateway.Message) (string, error)

func (f funcGateway) Reply(ctx context.Context, history []gateway.Message) (string, error) {
	return f(ctx, history)
}

func TestSendMessage_AppendsUserThenAssistant(t *testing.T) {
	gw := newBlockingGateway("hello back", nil)
	s := New(gw)

	done := make(chan error, 1)
	go func() { done <- s.SendMessage(context.Background(), "hi") }()

	<-gw.started
	assert.Equal(t, []gateway.Message{{Role: gateway.RoleUser, Content: "hi"}}, s.Transcript())
	assert.True(t, s.Busy())

	close(gw.release)
	require.NoError(t, <-done)

	assert.Equal(t, []gateway.Message{
		{Role: gateway.RoleUser, Content: "hi"},
		{Role: gateway.RoleAssistant, Content: "hello back"},
	}, s.Transcript())
	assert.False(t, s.Busy())
}

func TestSendMessage_WhileBusyIsDropped(t *testing.T) {
	gw := newBlockingGateway("ok", nil)
	s := New(gw)

	done := make(chan error, 1)
	go func() { done <- s.SendMessage(context.Background(), "first") }()
	<-gw.started

	before := len(s.Transcript())
	err := s.SendMessage(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, s.Transcript(), before)

	close(gw.release)
	require.NoError(t, <-done)
	assert.Len(t, gw.calls, 1)
}

func TestSendMessage_BlankInput(t *testing.T) {
	called := false
	s := New(funcGateway(func(context.Context, []gateway.Message) (string, error) {
		called = true
		return "", nil
	}))

	for _, in := range []string{"", "   ", "\n\t"} {
		assert.ErrorIs(t, s.SendMessage(context.Background(), in), ErrEmptyInput)
	}
	assert.Empty(t, s.Transcript())
	assert.False(t, called)
}

func TestSendMessage_KeepsTextAsTyped(t *testing.T) {
	s := New(funcGateway(func(context.Context, []gateway.Message) (string, error) {
		return "ok", nil
	}))
	require.NoError(t, s.SendMessage(context.Background(), "  hai  "))
	assert.Equal(t, "  hai  ", s.Transcript()[0].Content)
}

func TestSendMessage_GatewayFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "upstream 429",
			err:  gateway.NewUpstream(http.StatusTooManyRequests, errors.New("rate limited")),
			want: DefaultApology,
		},
		{
			name: "server error response",
			err:  &api.StatusError{StatusCode: 500, Message: "Internal server error"},
			want: DefaultApology,
		},
		{
			name: "unreachable",
			err:  ErrUnreachable,
			want: DefaultOffline,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(funcGateway(func(context.Context, []gateway.Message) (string, error) {
				return "", tt.err
			}))

			require.NoError(t, s.SendMessage(context.Background(), "hi"))

			transcript := s.Transcript()
			require.Len(t, transcript, 2)
			assert.Equal(t, gateway.Message{Role: gateway.RoleAssistant, Content: tt.want}, transcript[1])
			assert.False(t, s.Busy())
		})
	}
}

func TestSession_GreetingAndHistory(t *testing.T) {
	var seen []gateway.Message
	s := New(funcGateway(func(_ context.Context, history []gateway.Message) (string, error) {
		seen = history
		return "17!", nil
	}), WithGreeting("Haii Rynn!"), WithApologies("sorry", "offline"))

	require.NoError(t, s.SendMessage(context.Background(), "umur berapa?"))

	require.Len(t, seen, 2)
	assert.Equal(t, gateway.RoleAssistant, seen[0].Role)
	assert.Equal(t, "Haii Rynn!", seen[0].Content)
	assert.Equal(t, "umur berapa?", seen[1].Content)
	assert.Len(t, s.Transcript(), 3)
}

func TestSession_BeginComplete(t *testing.T) {
	s := New(funcGateway(func(context.Context, []gateway.Message) (string, error) {
		return "reply", nil
	}))

	var snaps []Snapshot
	s.OnChange(func(snap Snapshot) { snaps = append(snaps, snap) })

	turn, err := s.Begin("hi")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.True(t, snaps[0].Busy)
	assert.Len(t, snaps[0].Transcript, 1)

	_, err = s.Begin("again")
	assert.ErrorIs(t, err, ErrBusy)

	msg := turn.Complete(context.Background())
	assert.Equal(t, "reply", msg.Content)
	require.Len(t, snaps, 2)
	assert.False(t, snaps[1].Busy)

	turn.Complete(context.Background())
	assert.Len(t, s.Transcript(), 2, "second Complete must not append")
}

func TestSession_ConcurrentSendsLeaveValidTranscript(t *testing.T) {
	s := New(funcGateway(func(context.Context, []gateway.Message) (string, error) {
		time.Sleep(time.Millisecond)
		return "ok", nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SendMessage(context.Background(), "hi")
		}()
	}
	wg.Wait()

	transcript := s.Transcript()
	require.Equal(t, 0, len(transcript)%2)
	for i, m := range transcript {
		if i%2 == 0 {
			assert.Equal(t, gateway.RoleUser, m.Role)
		} else {
			assert.Equal(t, gateway.RoleAssistant, m.Role)
		}
	}
	assert.False(t, s.Busy())
}

func TestRemote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req ChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.Messages, 1)
			json.NewEncoder(w).Encode(ChatResponse{Message: "halo"})
		}))
		defer server.Close()

		reply, err := NewRemote(api.NewClient(server.URL)).Reply(context.Background(),
			[]gateway.Message{{Role: gateway.RoleUser, Content: "hi"}})
		require.NoError(t, err)
		assert.Equal(t, "halo", reply)
	})

	t.Run("error response is not unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Failed to get response from AI"}`))
		}))
		defer server.Close()

		s := New(NewRemote(api.NewClient(server.URL)))
		require.NoError(t, s.SendMessage(context.Background(), "hi"))
		assert.Equal(t, DefaultApology, s.Transcript()[1].Content)
	})

	t.Run("connection failure is unreachable", func(t *testing.T) {
		s := New(NewRemote(api.NewClient("http://127.0.0.1:1")))
		require.NoError(t, s.SendMessage(context.Background(), "hi"))
		assert.Equal(t, DefaultOffline, s.Transcript()[1].Content)
	})
}
