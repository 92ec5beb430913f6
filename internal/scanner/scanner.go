// Package scanner enumerates the projects below a workspace root and
// builds one Project record per immediate subdirectory.
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	gitignore "github.com/denormal/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/pdash/internal/git"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/manifest"
)

// IgnoreFile is a gitignore-style file in the scan root whose patterns
// exclude additional entries.
const IgnoreFile = ".pdashignore"

// DefaultConcurrency bounds the number of entries inspected in parallel.
const DefaultConcurrency = 8

// Excluded names are never treated as projects.
var Excluded = []string{
	".", "..", ".DS_Store", "__pycache__", "node_modules",
	".git", ".venv", "venv", ".claude", ".pdash", "_project-dashboard",
}

// Project is the derived, non-persisted description of one project directory.
type Project struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Type         []string  `json:"type"`
	Description  string    `json:"description"`
	TechStack    []string  `json:"techStack"`
	LastModified time.Time `json:"lastModified"`
	GitRemote    *string   `json:"gitRemote"`
	HasTests     bool      `json:"hasTests"`
	HasCI        bool      `json:"hasCI"`
}

// Scanner builds project records.
type Scanner struct {
	concurrency int
}

// New creates a Scanner inspecting at most concurrency entries at once.
func New(concurrency int) *Scanner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Scanner{concurrency: concurrency}
}

// ScanAll returns one Project per directory directly below root, skipping
// the fixed exclusion set, the names in excluded and entries matched by
// root's ignore file. Entries that fail are logged and skipped; only an
// unreadable root is an error. Results keep directory-listing order.
func (s *Scanner) ScanAll(ctx context.Context, root string, excluded []string) ([]Project, error) {
	l := log.FromContext(ctx)

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read scan root: %w", err)
	}

	skip := make(map[string]bool, len(Excluded)+len(excluded))
	for _, name := range Excluded {
		skip[name] = true
	}
	for _, name := range excluded {
		skip[name] = true
	}
	ignore := loadIgnore(ctx, root)

	type candidate struct {
		index int
		name  string
	}
	var candidates []candidate
	for i, entry := range entries {
		name := entry.Name()
		if skip[name] {
			continue
		}
		if ignore != nil {
			if m := ignore.Relative(name, true); m != nil && m.Ignore() {
				l.Debug("ignored by "+IgnoreFile, "name", name)
				continue
			}
		}
		candidates = append(candidates, candidate{i, name})
	}

	results := make([]*Project, len(entries))
	report := progressFromContext(ctx)
	total := len(candidates)
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, c := range candidates {
		g.Go(func() error {
			defer func() { report(int(done.Add(1)), total) }()
			if gctx.Err() != nil {
				return gctx.Err()
			}

			path := filepath.Join(root, c.name)
			info, err := os.Stat(path)
			if err != nil {
				l.Printf("Warning: skipping %s: %v\n", c.name, err)
				return nil
			}
			if !info.IsDir() {
				return nil
			}

			p := ScanProject(gctx, path)
			results[c.index] = &p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(results))
	for _, p := range results {
		if p != nil {
			projects = append(projects, *p)
		}
	}

	l.Debug("scan complete", "root", root, "projects", len(projects))
	return projects, nil
}

// ScanProject builds the record for a single project directory.
func ScanProject(ctx context.Context, dir string) Project {
	m := manifest.Extract(ctx, dir)
	g := git.Introspect(ctx, dir)

	return Project{
		Name:         filepath.Base(dir),
		Path:         dir,
		Type:         m.Types,
		Description:  m.Description,
		TechStack:    m.TechStack,
		LastModified: g.LastModified,
		GitRemote:    g.Remote,
		HasTests:     m.HasTests,
		HasCI:        m.HasCI,
	}
}

func loadIgnore(ctx context.Context, root string) gitignore.GitIgnore {
	data, err := os.ReadFile(filepath.Join(root, IgnoreFile))
	if err != nil {
		if !os.IsNotExist(err) {
			log.FromContext(ctx).Printf("Warning: cannot read %s: %v\n", IgnoreFile, err)
		}
		return nil
	}
	return gitignore.New(bytes.NewReader(data), root, nil)
}
