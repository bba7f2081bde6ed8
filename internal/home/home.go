package home

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDirName is the default name for the scrapbook home directory.
	DefaultDirName = ".scrapbook"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// PagesFileName is picked up as the page file when the config names none.
	PagesFileName = "pages.yaml"

	// PersonaFileName is where `config init --persona` writes the editable persona.
	PersonaFileName = "persona.tmpl"

	transcriptsDirName = "transcripts"
	exportsDirName     = "exports"
)

// Dir represents the scrapbook home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.scrapbook).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// PagesPath returns the path to the optional page file.
func (d *Dir) PagesPath() string {
	return filepath.Join(d.path, PagesFileName)
}

// PersonaPath returns the path to the optional persona template.
func (d *Dir) PersonaPath() string {
	return filepath.Join(d.path, PersonaFileName)
}

// TranscriptsDir returns the directory chat transcripts are saved to.
func (d *Dir) TranscriptsDir() string {
	return filepath.Join(d.path, transcriptsDirName)
}

// TranscriptPath returns the file for a session's transcript. The timestamp
// prefix keeps a listing in chronological order.
func (d *Dir) TranscriptPath(sessionID string, started time.Time) string {
	name := fmt.Sprintf("%s_%s.json", started.UTC().Format("20060102T150405Z"), sessionID)
	return filepath.Join(d.TranscriptsDir(), name)
}

// ExportsDir returns the directory for exported files (calendar, etc.).
func (d *Dir) ExportsDir() string {
	return filepath.Join(d.path, exportsDirName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.TranscriptsDir(), d.ExportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// PagesExists returns true if a page file exists in the home directory.
func (d *Dir) PagesExists() bool {
	_, err := os.Stat(d.PagesPath())
	return err == nil
}
