package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackzampolin/scrapbook/internal/gateway"
)

// Transcript is the saved record of one chat session.
type Transcript struct {
	SessionID string            `json:"session_id"`
	Started   time.Time         `json:"started"`
	Ended     time.Time         `json:"ended"`
	Messages  []gateway.Message `json:"messages"`
}

// HasUserMessages reports whether anyone typed anything.
func (t Transcript) HasUserMessages() bool {
	for _, m := range t.Messages {
		if m.Role == gateway.RoleUser {
			return true
		}
	}
	return false
}

// SaveTranscript writes t as indented JSON, creating parent directories.
func SaveTranscript(path string, t Transcript) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}
