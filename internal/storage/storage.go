// Package storage provides atomic file operations for the JSON documents
// pdash keeps in its data directory (~/.pdash by default).
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnreadable marks a document that exists but cannot be read or parsed.
var ErrUnreadable = errors.New("document unreadable")

// DirName is the default data directory name under the user's home.
const DirName = ".pdash"

// DataDir returns the data directory, creating it if needed.
// An empty override resolves to ~/.pdash.
func DataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, DirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return dir, nil
}

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path for atomic operation.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tempPath, jsonData, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// LockPath returns the advisory lock file used to serialize writers of dir.
func LockPath(dir string) string {
	return filepath.Join(dir, ".lock")
}

// LoadOrDefault reads the JSON document at path.
//
// A missing document is seeded: defaults() is written to path and returned.
// An unreadable or malformed document yields defaults() WITHOUT writing, so
// a recoverable file is never overwritten. Non-fatal problems are reported
// through warn.
func LoadOrDefault[T any](path string, defaults func() T, warn func(format string, args ...any)) T {
	var doc T
	err := LoadJSON(path, &doc)
	switch {
	case err == nil:
		return doc
	case errors.Is(err, os.ErrNotExist):
		doc = defaults()
		if err := SaveJSON(path, doc); err != nil {
			warn("Warning: failed to seed %s: %v\n", filepath.Base(path), err)
		}
		return doc
	default:
		warn("Warning: %s is unreadable, using defaults: %v\n", filepath.Base(path), err)
		return defaults()
	}
}

// LoadStrict reads the JSON document at path for a read-modify-write.
//
// A missing document yields defaults(). An unreadable or malformed one is
// an error wrapping ErrUnreadable: a write based on defaults would replace
// a file that may still be repaired by hand.
func LoadStrict[T any](path string, defaults func() T) (T, error) {
	var doc T
	err := LoadJSON(path, &doc)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, os.ErrNotExist):
		return defaults(), nil
	default:
		return doc, fmt.Errorf("%w: %s: %v", ErrUnreadable, filepath.Base(path), err)
	}
}
