package home

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-scrapbook")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-scrapbook" {
			t.Errorf("expected path /tmp/test-scrapbook, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-scrapbook")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigPath", dir.ConfigPath(), "/tmp/test-scrapbook/config.yaml"},
		{"PagesPath", dir.PagesPath(), "/tmp/test-scrapbook/pages.yaml"},
		{"PersonaPath", dir.PersonaPath(), "/tmp/test-scrapbook/persona.tmpl"},
		{"ExportsDir", dir.ExportsDir(), "/tmp/test-scrapbook/exports"},
		{
			"TranscriptPath",
			dir.TranscriptPath("abc", time.Date(2026, 1, 10, 2, 3, 4, 0, time.FixedZone("WIB", 7*3600))),
			"/tmp/test-scrapbook/transcripts/20260109T190304Z_abc.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tt.got)
			}
		})
	}
}

func TestDir_EnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	scrapbookDir := filepath.Join(tmpDir, "scrapbook-test")

	dir, err := New(scrapbookDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dir.Exists() {
		t.Error("directory should not exist yet")
	}

	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	if !dir.Exists() {
		t.Error("directory should exist after EnsureExists")
	}
	for _, sub := range []string{dir.TranscriptsDir(), dir.ExportsDir()} {
		if _, err := os.Stat(sub); os.IsNotExist(err) {
			t.Errorf("%s should exist", sub)
		}
	}

	// Idempotent
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("second EnsureExists failed: %v", err)
	}
}

func TestDir_FileExists(t *testing.T) {
	dir, _ := New(t.TempDir())

	if dir.ConfigExists() || dir.PagesExists() {
		t.Error("files should not exist yet")
	}

	if err := os.WriteFile(dir.ConfigPath(), []byte("chat: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir.PagesPath(), []byte("pages: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !dir.ConfigExists() {
		t.Error("config should exist")
	}
	if !dir.PagesExists() {
		t.Error("pages file should exist")
	}
}
