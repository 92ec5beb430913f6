// Package history records which projects were opened and with which
// application. "pdash open --last" reopens the most recent one and the
// project picker lists recently opened projects first.
package history

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/raphi011/pdash/internal/storage"
)

// FileName is the history document in the data directory.
const FileName = "history.json"

// maxEntries bounds the document; the least recently opened entries go first.
const maxEntries = 50

// Entry is one opened project.
type Entry struct {
	Name        string    `json:"name"`
	App         string    `json:"app"`
	LastAccess  time.Time `json:"lastAccess"`
	AccessCount int       `json:"accessCount"`
}

// History holds entries ordered by LastAccess, most recent first.
type History struct {
	Entries []Entry `json:"entries"`
}

// Path returns the history file in dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the history at path. A missing or corrupted file yields an
// empty history.
func Load(path string) (*History, error) {
	var h History
	err := storage.LoadJSON(path, &h)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return &History{}, nil
	default:
		var perr *os.PathError
		if errors.As(err, &perr) {
			return nil, err
		}
		// Corrupted - start fresh
		return &History{}, nil
	}

	h.sort()
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// RecordAccess marks name as opened with app now.
func RecordAccess(path, name, app string) error {
	return storage.WithLock(storage.LockPath(filepath.Dir(path)), func() error {
		h, err := Load(path)
		if err != nil {
			return err
		}
		h.record(name, app, time.Now())
		return h.Save(path)
	})
}

func (h *History) record(name, app string, now time.Time) {
	i := slices.IndexFunc(h.Entries, func(e Entry) bool { return e.Name == name })
	if i < 0 {
		h.Entries = append(h.Entries, Entry{Name: name})
		i = len(h.Entries) - 1
	}

	e := &h.Entries[i]
	e.App = app
	e.LastAccess = now
	e.AccessCount++

	h.sort()
	if len(h.Entries) > maxEntries {
		h.Entries = h.Entries[:maxEntries]
	}
}

func (h *History) sort() {
	slices.SortStableFunc(h.Entries, func(a, b Entry) int {
		return b.LastAccess.Compare(a.LastAccess)
	})
}

// MostRecent returns the last opened entry.
func (h *History) MostRecent() (Entry, bool) {
	if len(h.Entries) == 0 {
		return Entry{}, false
	}
	return h.Entries[0], true
}

// LastAccess returns when name was last opened, or the zero time.
func (h *History) LastAccess(name string) time.Time {
	for _, e := range h.Entries {
		if e.Name == name {
			return e.LastAccess
		}
	}
	return time.Time{}
}
