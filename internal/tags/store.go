package tags

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/storage"
)

// Document file names inside the data directory.
const (
	AssignmentsFile = "project-tags.json"
	DefinitionsFile = "tag-definitions.json"
	ColorsFile      = "tag-colors.json"
)

// Store reads and writes the tag documents in a data directory.
type Store struct {
	dir string
}

// NewStore creates a Store for dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// LoadAssignments returns the assignment document.
func (s *Store) LoadAssignments(ctx context.Context) Assignments {
	return fillAssignments(load(ctx, s.path(AssignmentsFile), DefaultAssignments))
}

// SaveAssignments replaces the assignment document.
func (s *Store) SaveAssignments(as Assignments) error {
	return s.save(AssignmentsFile, as)
}

// LoadDefinitions returns the definitions document.
func (s *Store) LoadDefinitions(ctx context.Context) Definitions {
	return fillDefinitions(load(ctx, s.path(DefinitionsFile), DefaultDefinitions))
}

// SaveDefinitions replaces the definitions document.
func (s *Store) SaveDefinitions(d Definitions) error {
	return s.save(DefinitionsFile, d)
}

// LoadColors returns the colors document.
func (s *Store) LoadColors(ctx context.Context) Colors {
	return fillColors(load(ctx, s.path(ColorsFile), DefaultColors))
}

// SaveColors replaces the colors document.
func (s *Store) SaveColors(c Colors) error {
	return s.save(ColorsFile, c)
}

// The strict loaders back mutations. A malformed document fails with
// ErrDocumentUnreadable instead of yielding defaults, so neither a check
// nor a write is ever based on a document that was not read.

func (s *Store) loadAssignmentsStrict() (Assignments, error) {
	as, err := storage.LoadStrict(s.path(AssignmentsFile), DefaultAssignments)
	return fillAssignments(as), err
}

func (s *Store) loadDefinitionsStrict() (Definitions, error) {
	d, err := storage.LoadStrict(s.path(DefinitionsFile), DefaultDefinitions)
	return fillDefinitions(d), err
}

func (s *Store) loadColorsStrict() (Colors, error) {
	c, err := storage.LoadStrict(s.path(ColorsFile), DefaultColors)
	return fillColors(c), err
}

func fillAssignments(as Assignments) Assignments {
	if as == nil {
		return DefaultAssignments()
	}
	return as
}

func fillDefinitions(d Definitions) Definitions {
	if d.Progress == nil {
		d.Progress = ProgressValues()
	}
	if d.Categories == nil {
		d.Categories = []string{}
	}
	return d
}

func fillColors(c Colors) Colors {
	if c.Progress == nil {
		c.Progress = map[string]string{}
	}
	if c.Categories == nil {
		c.Categories = map[string]string{}
	}
	if c.Categories[DefaultColorKey] == "" {
		c.Categories[DefaultColorKey] = DefaultColor
	}
	return c
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) save(name string, doc any) error {
	if err := storage.SaveJSON(s.path(name), doc); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func load[T any](ctx context.Context, path string, defaults func() T) T {
	return storage.LoadOrDefault(path, defaults, log.FromContext(ctx).Printf)
}
