// Package chatsession keeps one conversation's transcript and enforces the
// turn-taking protocol: at most one request in flight, the user message is
// appended before the call, and exactly one assistant message after it.
package chatsession

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jackzampolin/scrapbook/internal/gateway"
)

var (
	// ErrEmptyInput is returned when the message is blank. Nothing changes.
	ErrEmptyInput = errors.New("message is empty")

	// ErrBusy is returned when a reply is still pending. Nothing changes.
	ErrBusy = errors.New("a reply is already pending")

	// ErrUnreachable marks failures where the gateway could not be reached
	// at all, as opposed to the gateway answering with an error.
	ErrUnreachable = errors.New("chat gateway unreachable")
)

// Default apologies, used when none are configured.
const (
	DefaultApology = "😅 Maaf, ada sedikit masalah. Coba lagi ya!"
	DefaultOffline = "😅 Oops! Koneksi terputus. Coba lagi ya!"
)

// Gateway produces the assistant reply for a transcript.
type Gateway interface {
	Reply(ctx context.Context, history []gateway.Message) (string, error)
}

// Snapshot is an immutable view of the session.
type Snapshot struct {
	ID         string            `json:"id"`
	Transcript []gateway.Message `json:"transcript"`
	Busy       bool              `json:"busy"`
}

// Option configures a Session.
type Option func(*Session)

// WithGreeting seeds the transcript with an opening assistant message.
func WithGreeting(text string) Option {
	return func(s *Session) {
		if strings.TrimSpace(text) != "" {
			s.transcript = append(s.transcript, gateway.Message{Role: gateway.RoleAssistant, Content: text})
		}
	}
}

// WithApologies overrides the two fixed failure replies.
func WithApologies(rejected, offline string) Option {
	return func(s *Session) {
		if rejected != "" {
			s.apology = rejected
		}
		if offline != "" {
			s.offline = offline
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithID sets the session id. A random uuid is used otherwise.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session owns one append-only transcript.
type Session struct {
	mu         sync.Mutex
	id         string
	gw         Gateway
	transcript []gateway.Message
	busy       bool
	apology    string
	offline    string
	listeners  []func(Snapshot)
	logger     *slog.Logger
}

// New creates a session that talks to gw.
func New(gw Gateway, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New().String(),
		gw:      gw,
		apology: DefaultApology,
		offline: DefaultOffline,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// OnChange registers fn to be called after every transcript or busy change.
// Listeners run on the goroutine that made the change, outside the lock.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Transcript returns a copy of the transcript.
func (s *Session) Transcript() []gateway.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gateway.Message(nil), s.transcript...)
}

// Busy reports whether a reply is pending.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:         s.id,
		Transcript: append([]gateway.Message(nil), s.transcript...),
		Busy:       s.busy,
	}
}

// Turn is a user message that has been appended and is awaiting its reply.
type Turn struct {
	s       *Session
	history []gateway.Message
	done    bool
}

// Begin appends text, as typed, as a user message and marks the session
// busy. Blank input returns ErrEmptyInput and a pending reply returns ErrBusy;
// in both cases the transcript is unchanged.
func (s *Session) Begin(text string) (*Turn, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.transcript = append(s.transcript, gateway.Message{Role: gateway.RoleUser, Content: text})
	s.busy = true
	turn := &Turn{s: s, history: append([]gateway.Message(nil), s.transcript...)}
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, snap)
	return turn, nil
}

// Complete calls the gateway with the transcript captured by Begin and
// appends exactly one assistant message: the reply, or an apology when the
// gateway fails. Busy is cleared in every case. Calling Complete twice is a
// no-op.
func (t *Turn) Complete(ctx context.Context) gateway.Message {
	s := t.s

	s.mu.Lock()
	if t.done {
		s.mu.Unlock()
		return gateway.Message{}
	}
	t.done = true
	s.mu.Unlock()

	reply, err := s.gw.Reply(ctx, t.history)

	s.mu.Lock()
	if err != nil {
		s.logger.Warn("chat reply failed", "error", err)
		reply = s.apology
		if errors.Is(err, ErrUnreachable) {
			reply = s.offline
		}
	}
	msg := gateway.Message{Role: gateway.RoleAssistant, Content: reply}
	s.transcript = append(s.transcript, msg)
	s.busy = false
	snap := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	notify(listeners, snap)
	return msg
}

// SendMessage runs a whole turn: Begin then Complete. ErrEmptyInput and
// ErrBusy are returned without touching the transcript; gateway failures
// never surface here, they become an apology in the transcript.
func (s *Session) SendMessage(ctx context.Context, text string) error {
	turn, err := s.Begin(text)
	if err != nil {
		return err
	}
	turn.Complete(ctx)
	return nil
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
