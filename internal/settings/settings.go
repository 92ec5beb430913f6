// Package settings persists the user-editable dashboard settings: where to
// scan, what to skip, which apps open projects and what to hide by default.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/storage"
)

// File is the settings document name inside the data directory.
const File = "settings.json"

var (
	// ErrScanPathRequired is returned when saving settings without a scan path.
	ErrScanPathRequired = errors.New("scanPath is required")
	// ErrEditorCommandRequired is returned when saving settings without an editor command.
	ErrEditorCommandRequired = errors.New("editorCommand is required")
)

// Settings configure the scanner, the query defaults and the launcher.
type Settings struct {
	ScanPath           string   `json:"scanPath"`
	TerminalApp        string   `json:"terminalApp"`
	EditorCommand      string   `json:"editorCommand"`
	ExcludedFolders    []string `json:"excludedFolders"`
	HideArchived       bool     `json:"hideArchived"`
	HideHiddenProjects bool     `json:"hideHiddenProjects"`
}

// DefaultExcludedFolders are skipped in addition to the scanner's fixed set.
var DefaultExcludedFolders = []string{
	"node_modules", ".git", ".cache", "target", "dist", "build",
	".next", ".nuxt", "venv", "__pycache__", ".venv",
}

// Default returns the settings used before the user changes anything.
func Default(scanPath string) Settings {
	return Settings{
		ScanPath:        scanPath,
		TerminalApp:     "Warp",
		EditorCommand:   "code",
		ExcludedFolders: append([]string(nil), DefaultExcludedFolders...),
		HideArchived:    true,
	}
}

// ResolvedScanPath returns the scan path with a leading ~ expanded.
func (s Settings) ResolvedScanPath() (string, error) {
	return ExpandHome(s.ScanPath)
}

// Validate checks the settings before they are saved.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.ScanPath) == "" {
		return ErrScanPathRequired
	}
	if strings.TrimSpace(s.EditorCommand) == "" {
		return ErrEditorCommandRequired
	}
	return nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Store reads and writes settings.json.
type Store struct {
	path     string
	defaults Settings
}

// NewStore creates a Store for the settings document in dir. defaults are
// used when the document is missing or unreadable.
func NewStore(dir string, defaults Settings) *Store {
	return &Store{path: filepath.Join(dir, File), defaults: defaults}
}

// Load returns the stored settings. Missing fields are filled from the
// defaults.
func (s *Store) Load(ctx context.Context) Settings {
	st := storage.LoadOrDefault(s.path, s.defaultSettings, log.FromContext(ctx).Printf)
	if strings.TrimSpace(st.ScanPath) == "" {
		st.ScanPath = s.defaults.ScanPath
	}
	if st.TerminalApp == "" {
		st.TerminalApp = s.defaults.TerminalApp
	}
	if st.EditorCommand == "" {
		st.EditorCommand = s.defaults.EditorCommand
	}
	if st.ExcludedFolders == nil {
		st.ExcludedFolders = []string{}
	}
	return st
}

// Save validates and replaces the stored settings.
func (s *Store) Save(st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	if st.ExcludedFolders == nil {
		st.ExcludedFolders = []string{}
	}
	if err := storage.SaveJSON(s.path, st); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *Store) defaultSettings() Settings {
	d := s.defaults
	d.ExcludedFolders = append([]string(nil), s.defaults.ExcludedFolders...)
	return d
}
