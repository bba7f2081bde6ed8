// Package tui is the terminal presentation of the scrapbook: an open book
// driven by the flipbook controller and a chat pane driven by a chat session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jackzampolin/scrapbook/internal/chatsession"
	"github.com/jackzampolin/scrapbook/internal/flipbook"
	"github.com/jackzampolin/scrapbook/internal/gateway"
	"github.com/jackzampolin/scrapbook/internal/home"
	"github.com/jackzampolin/scrapbook/internal/locale"
	"github.com/jackzampolin/scrapbook/internal/pages"
)

type focus int

const (
	focusBook focus = iota
	focusChat
)

// Config holds what the terminal client needs.
type Config struct {
	Pages     []pages.Descriptor
	Session   *chatsession.Session
	Localizer *locale.Localizer
	// Home receives the transcript on exit. Nil skips saving.
	Home *home.Dir
	// MarkdownStyle is a glamour standard style name. Empty detects the
	// terminal background.
	MarkdownStyle string
	Logger        *slog.Logger
}

// replyMsg is delivered when a pending chat turn completes.
type replyMsg struct {
	msg gateway.Message
}

// Model is the bubbletea model for the scrapbook.
type Model struct {
	ctx     context.Context
	book    *flipbook.Book
	session *chatsession.Session
	tr      *locale.Localizer
	home    *home.Dir
	logger  *slog.Logger

	input    textinput.Model
	viewport viewport.Model
	md       *glamour.TermRenderer
	mdStyle  string

	focus   focus
	width   int
	height  int
	started time.Time
	status  string
}

// New creates the model. The book starts closed on the cover.
func New(ctx context.Context, cfg Config) (*Model, error) {
	book, err := flipbook.New(cfg.Pages)
	if err != nil {
		return nil, err
	}
	if cfg.Session == nil {
		return nil, errors.New("chat session is required")
	}
	if cfg.Localizer == nil {
		cfg.Localizer = locale.MustNew().Localizer(locale.DefaultLanguage)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = cfg.Localizer.T(locale.MsgChatPlaceholder, nil)
	ti.CharLimit = 2000
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)

	m := &Model{
		ctx:      ctx,
		book:     book,
		session:  cfg.Session,
		tr:       cfg.Localizer,
		home:     cfg.Home,
		logger:   cfg.Logger,
		input:    ti,
		viewport: viewport.New(80, 8),
		mdStyle:  cfg.MarkdownStyle,
		started:  time.Now(),
	}
	m.resize(80, 24)
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case replyMsg:
		m.refreshChat()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.focus == focusChat {
			return m.updateChat(msg)
		}
		return m.updateBook(msg)
	}

	if m.focus == focusChat {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateBook(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key := msg.String(); key {
	case "q", "esc":
		return m, tea.Quit
	case "right", "l", "n", " ", "enter":
		m.book.Next()
	case "left", "h", "p":
		m.book.Previous()
	case "tab", "c":
		m.focus = focusChat
		m.refreshChat()
		return m, m.input.Focus()
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= 9 {
			m.jump(n - 1)
		}
	}
	return m, nil
}

// jump walks the book to target, one flip at a time.
func (m *Model) jump(target int) {
	if target >= m.book.Len() {
		return
	}
	if _, err := m.book.JumpTo(target); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.focus = focusBook
		m.input.Blur()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter":
		return m, m.send()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send appends the typed text and returns the command that fetches the
// reply. Blank input and a pending reply are ignored.
func (m *Model) send() tea.Cmd {
	turn, err := m.session.Begin(m.input.Value())
	if err != nil {
		return nil
	}
	m.input.Reset()
	m.refreshChat()

	ctx := m.ctx
	return func() tea.Msg {
		return replyMsg{msg: turn.Complete(ctx)}
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-m.pageHeight()-8, 3)
	m.input.Width = max(width-8, 10)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-6, 20))}
	if m.mdStyle != "" {
		opts = append(opts, glamour.WithStandardStyle(m.mdStyle))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.logger.Debug("markdown renderer unavailable", "error", err)
		md = nil
	}
	m.md = md
	m.refreshChat()
}

func (m *Model) pageHeight() int {
	return min(max(m.height/2, 8), 18)
}

// refreshChat re-renders the transcript into the viewport.
func (m *Model) refreshChat() {
	snap := m.session.Snapshot()

	var b strings.Builder
	for _, msg := range snap.Transcript {
		if msg.Role == gateway.RoleUser {
			b.WriteString(userStyle.Render(msg.Content))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(m.renderMarkdown(msg.Content))
		b.WriteString("\n")
	}
	if snap.Busy {
		b.WriteString(typingStyle.Render(m.tr.T(locale.MsgChatTyping, nil)))
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderMarkdown(s string) string {
	if m.md == nil {
		return s
	}
	out, err := m.md.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.book.Snapshot()

	header := titleStyle.Render(m.tr.T(locale.MsgTUIPage, map[string]any{
		"Current": snap.Current + 1,
		"Total":   len(snap.Pages),
	}))

	spread := renderSpread(snap, m.width, m.pageHeight())

	box := chatBoxStyle
	if m.focus == focusChat {
		box = chatBoxFocused
	}
	chat := box.Width(max(m.width-2, 10)).Render(m.viewport.View() + "\n" + m.input.View())

	footer := statusStyle.Render(m.tr.T(locale.MsgTUIHelp, nil))
	if m.status != "" {
		footer = errorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, spread, chat, footer)
}

// Transcript returns the session so far in its saved form.
func (m *Model) Transcript() Transcript {
	snap := m.session.Snapshot()
	return Transcript{
		SessionID: snap.ID,
		Started:   m.started,
		Ended:     time.Now(),
		Messages:  snap.Transcript,
	}
}

// SaveTranscript writes the transcript into the home directory when anything
// was typed. It returns the path written, or "" when nothing was saved.
func (m *Model) SaveTranscript() (string, error) {
	t := m.Transcript()
	if m.home == nil || !t.HasUserMessages() {
		return "", nil
	}
	path := m.home.TranscriptPath(t.SessionID, m.started)
	if err := SaveTranscript(path, t); err != nil {
		return "", err
	}
	return path, nil
}

// Run starts the terminal client and blocks until the user quits or ctx is
// cancelled. The transcript is saved on the way out.
func Run(ctx context.Context, cfg Config) error {
	m, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	path, err := m.SaveTranscript()
	if err != nil {
		m.logger.Error("failed to save transcript", "error", err)
	} else if path != "" {
		fmt.Printf("Transcript saved to %s\n", path)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}
