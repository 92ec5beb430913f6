package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/raphi011/pdash/internal/scanner"
)

// Snapshot is the result of one full scan.
type Snapshot struct {
	Projects  []scanner.Project
	ScannedAt time.Time
}

// Age returns how long ago the snapshot was taken.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.ScannedAt)
}

// Projects caches the latest Snapshot.
type Projects struct {
	mu       sync.Mutex
	snapshot *Snapshot
	now      func() time.Time
}

// Get returns the cached snapshot, if any.
func (c *Projects) Get() (*Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.snapshot != nil
}

// Set replaces the cached snapshot with projects.
func (c *Projects) Set(projects []scanner.Project) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = c.newSnapshot(projects)
	return c.snapshot
}

// Invalidate drops the cached snapshot.
func (c *Projects) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}

// GetOrLoad returns the cached snapshot, calling load to populate the cache
// when it is empty. Concurrent callers share a single load. A failed load
// leaves the cache empty.
func (c *Projects) GetOrLoad(load func() ([]scanner.Project, error)) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		return c.snapshot, nil
	}

	projects, err := load()
	if err != nil {
		return nil, err
	}
	c.snapshot = c.newSnapshot(projects)
	return c.snapshot, nil
}

func (c *Projects) newSnapshot(projects []scanner.Project) *Snapshot {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return &Snapshot{Projects: slices.Clone(projects), ScannedAt: now()}
}
