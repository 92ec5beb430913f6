// Package query merges scanned projects with their tag assignments and
// answers filtered, sorted listings.
//
// The Service owns the project cache. Tag assignments are loaded from the
// tag store on every call, so tag edits are visible without a rescan.
package query

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"

	"github.com/raphi011/pdash/internal/cache"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/manifest"
	"github.com/raphi011/pdash/internal/scanner"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

var (
	// ErrProjectNotFound is returned for names not present in the scan.
	ErrProjectNotFound = errors.New("project not found")
	// ErrReadmeNotFound is returned when a project has no README.
	ErrReadmeNotFound = errors.New("README not found")
)

// Scanner produces project records for a root directory.
type Scanner interface {
	ScanAll(ctx context.Context, root string, excluded []string) ([]scanner.Project, error)
}

// TagSource provides the current tag assignments.
type TagSource interface {
	LoadAssignments(ctx context.Context) tags.Assignments
}

// SettingsSource provides the current scan settings.
type SettingsSource interface {
	Load(ctx context.Context) settings.Settings
}

// Entry is a project annotated with its resolved tag assignment.
type Entry struct {
	scanner.Project
	Tags tags.Assignment `json:"tags"`
}

// Title returns the custom title or the project name.
func (e Entry) Title() string {
	return e.Tags.Title(e.Name)
}

// Filter selects entries. All set criteria must match.
type Filter struct {
	// Search is a case-insensitive substring of name, description or custom title.
	Search string
	// Progress must equal the entry's progress value.
	Progress string
	// Categories match when the entry carries any of them.
	Categories []string
	// Favorite restricts the result to favorites.
	Favorite bool
	// IncludeArchived shows archived projects, which are hidden otherwise.
	IncludeArchived bool
	// HideHidden drops projects whose name starts with '_' or '.'.
	HideHidden bool
}

// DefaultFilter returns the visibility filter configured in st.
func DefaultFilter(st settings.Settings) Filter {
	return Filter{
		IncludeArchived: !st.HideArchived,
		HideHidden:      st.HideHiddenProjects,
	}
}

// Service answers project queries.
type Service struct {
	scanner  Scanner
	tags     TagSource
	settings SettingsSource
	cache    *cache.Projects
}

// New creates a Service. c holds the scan result between calls.
func New(sc Scanner, ts TagSource, ss SettingsSource, c *cache.Projects) *Service {
	return &Service{scanner: sc, tags: ts, settings: ss, cache: c}
}

// Snapshot returns the cached scan, scanning first when the cache is empty.
func (s *Service) Snapshot(ctx context.Context) (*cache.Snapshot, error) {
	return s.cache.GetOrLoad(func() ([]scanner.Project, error) {
		return s.scan(ctx)
	})
}

// List returns the entries matching f, favorites first, then non-archived,
// then most recently modified.
func (s *Service) List(ctx context.Context, f Filter) ([]Entry, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	assignments := s.tags.LoadAssignments(ctx)
	m := newMatcher(f)

	entries := make([]Entry, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		e := Entry{Project: p, Tags: assignments.Get(p.Name)}
		if m.match(e) {
			entries = append(entries, e)
		}
	}

	Sort(entries)
	return entries, nil
}

// Refresh discards the cached scan and scans again. It returns the number
// of projects found.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	s.cache.Invalidate()
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	log.FromContext(ctx).Debug("rescanned", "projects", len(snap.Projects))
	return len(snap.Projects), nil
}

// Invalidate discards the cached scan.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

// Find returns the entry for the project called name.
func (s *Service) Find(ctx context.Context, name string) (Entry, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Entry{}, err
	}

	for _, p := range snap.Projects {
		if p.Name == name {
			return Entry{Project: p, Tags: s.tags.LoadAssignments(ctx).Get(p.Name)}, nil
		}
	}

	err = fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	if similar := s.Suggest(ctx, name); len(similar) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(similar, ", "))
	}
	return Entry{}, err
}

// Names returns the names of all scanned projects.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		names = append(names, p.Name)
	}
	return names, nil
}

// Suggest returns up to three project names fuzzily matching name.
func (s *Service) Suggest(ctx context.Context, name string) []string {
	names, err := s.Names(ctx)
	if err != nil || name == "" {
		return nil
	}

	matches := fuzzy.Find(name, names)
	out := make([]string, 0, 3)
	for _, m := range matches {
		if len(out) == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Readme returns the raw README of the project called name.
func (s *Service) Readme(ctx context.Context, name string) (string, error) {
	e, err := s.Find(ctx, name)
	if err != nil {
		return "", err
	}

	content, ok, err := manifest.ReadReadme(e.Path)
	if err != nil {
		return "", fmt.Errorf("read README of %s: %w", name, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrReadmeNotFound, name)
	}
	return content, nil
}

func (s *Service) scan(ctx context.Context) ([]scanner.Project, error) {
	st := s.settings.Load(ctx)
	root, err := st.ResolvedScanPath()
	if err != nil {
		return nil, err
	}
	return s.scanner.ScanAll(ctx, root, st.ExcludedFolders)
}

// Sort orders entries favorites first, then non-archived before archived,
// then by descending last modification.
func Sort(entries []Entry) {
	slices.SortStableFunc(entries, compare)
}

func compare(a, b Entry) int {
	if a.Tags.Favorite != b.Tags.Favorite {
		if a.Tags.Favorite {
			return -1
		}
		return 1
	}
	if a.Tags.Archived != b.Tags.Archived {
		if !a.Tags.Archived {
			return -1
		}
		return 1
	}
	return b.LastModified.Compare(a.LastModified)
}

type matcher struct {
	f      Filter
	fold   cases.Caser
	needle string
}

func newMatcher(f Filter) *matcher {
	m := &matcher{f: f, fold: cases.Fold()}
	m.needle = m.fold.String(strings.TrimSpace(f.Search))
	return m
}

func (m *matcher) match(e Entry) bool {
	if m.f.HideHidden && (strings.HasPrefix(e.Name, "_") || strings.HasPrefix(e.Name, ".")) {
		return false
	}
	if !m.f.IncludeArchived && e.Tags.Archived {
		return false
	}
	if m.f.Favorite && !e.Tags.Favorite {
		return false
	}
	if m.f.Progress != "" && e.Tags.Progress != m.f.Progress {
		return false
	}
	if len(m.f.Categories) > 0 && !slices.ContainsFunc(m.f.Categories, e.Tags.HasCategory) {
		return false
	}
	if m.needle != "" && !m.contains(e) {
		return false
	}
	return true
}

func (m *matcher) contains(e Entry) bool {
	fields := []string{e.Name, e.Description}
	if e.Tags.CustomTitle != nil {
		fields = append(fields, *e.Tags.CustomTitle)
	}
	for _, field := range fields {
		if strings.Contains(m.fold.String(field), m.needle) {
			return true
		}
	}
	return false
}
