package tags

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/storage"
)

var (
	// ErrTagRequired is returned for blank tag names.
	ErrTagRequired = errors.New("tag name required")
	// ErrColorRequired is returned for blank color tokens.
	ErrColorRequired = errors.New("color required")
	// ErrProjectRequired is returned for blank project names.
	ErrProjectRequired = errors.New("project name required")
)

// Manager applies lifecycle rules on top of a Store.
type Manager struct {
	store *Store
	mu    sync.Mutex
	// intn picks a palette index; replaced in tests.
	intn func(n int) int
}

// NewManager creates a Manager over store.
func NewManager(store *Store) *Manager {
	return &Manager{store: store, intn: rand.IntN}
}

// Store returns the underlying store.
func (m *Manager) Store() *Store {
	return m.store
}

// Available returns the current definitions and colors.
func (m *Manager) Available(ctx context.Context) Available {
	return Available{
		Definitions: m.store.LoadDefinitions(ctx),
		Colors:      m.store.LoadColors(ctx),
	}
}

// AddCategory registers a new category tag and gives it a palette color
// unless it already has one.
func (m *Manager) AddCategory(ctx context.Context, tag string) (Available, error) {
	if strings.TrimSpace(tag) == "" {
		return Available{}, ErrTagRequired
	}

	var out Available
	err := m.mutate(func() error {
		defs, err := m.store.loadDefinitionsStrict()
		if err != nil {
			return err
		}
		if defs.HasCategory(tag) {
			return &DuplicateTagError{Tag: tag}
		}
		colors, err := m.store.loadColorsStrict()
		if err != nil {
			return err
		}

		defs.Categories = append(defs.Categories, tag)
		if err := m.store.SaveDefinitions(defs); err != nil {
			return err
		}

		if _, ok := colors.Categories[tag]; !ok {
			colors.Categories[tag] = m.randomColor()
			if err := m.store.SaveColors(colors); err != nil {
				return err
			}
		}

		log.FromContext(ctx).Debug("category added", "tag", tag, "color", colors.Categories[tag])
		out = Available{Definitions: defs, Colors: colors}
		return nil
	})
	return out, err
}

// DeleteCategory unregisters a category tag and drops its color. It is
// refused while any project still carries the tag.
func (m *Manager) DeleteCategory(ctx context.Context, tag string) (Available, error) {
	if strings.TrimSpace(tag) == "" {
		return Available{}, ErrTagRequired
	}

	var out Available
	err := m.mutate(func() error {
		defs, err := m.store.loadDefinitionsStrict()
		if err != nil {
			return err
		}
		if !defs.HasCategory(tag) {
			return &TagNotFoundError{Tag: tag}
		}

		as, err := m.store.loadAssignmentsStrict()
		if err != nil {
			return err
		}
		if using := as.Using(tag); len(using) > 0 {
			return &TagInUseError{Tag: tag, Projects: using}
		}
		colors, err := m.store.loadColorsStrict()
		if err != nil {
			return err
		}

		defs.Categories = slices.DeleteFunc(defs.Categories, func(c string) bool { return c == tag })
		if err := m.store.SaveDefinitions(defs); err != nil {
			return err
		}

		// a category named like the fallback entry keeps the fallback
		if tag != DefaultColorKey {
			delete(colors.Categories, tag)
			if err := m.store.SaveColors(colors); err != nil {
				return err
			}
		}

		log.FromContext(ctx).Debug("category deleted", "tag", tag)
		out = Available{Definitions: defs, Colors: colors}
		return nil
	})
	return out, err
}

// UpdateColor sets the color of a category tag. The tag does not have to
// be registered.
func (m *Manager) UpdateColor(ctx context.Context, tag, color string) (Colors, error) {
	if strings.TrimSpace(tag) == "" {
		return Colors{}, ErrTagRequired
	}
	if strings.TrimSpace(color) == "" {
		return Colors{}, ErrColorRequired
	}

	var out Colors
	err := m.mutate(func() error {
		colors, err := m.store.loadColorsStrict()
		if err != nil {
			return err
		}
		colors.Categories[tag] = color
		if err := m.store.SaveColors(colors); err != nil {
			return err
		}
		out = colors
		return nil
	})
	return out, err
}

// AssignMissingColors gives every registered category without a color a
// palette color. It returns the tags that were colored.
func (m *Manager) AssignMissingColors(ctx context.Context) ([]string, error) {
	var colored []string
	err := m.mutate(func() error {
		defs, err := m.store.loadDefinitionsStrict()
		if err != nil {
			return err
		}
		colors, err := m.store.loadColorsStrict()
		if err != nil {
			return err
		}
		for _, tag := range defs.Categories {
			if _, ok := colors.Categories[tag]; !ok {
				colors.Categories[tag] = m.randomColor()
				colored = append(colored, tag)
			}
		}
		if len(colored) == 0 {
			return nil
		}
		return m.store.SaveColors(colors)
	})
	return colored, err
}

// SetProjectTags replaces the assignment of project name. The custom title
// is normalized; every other field is stored as given.
func (m *Manager) SetProjectTags(ctx context.Context, name string, a Assignment) (Assignment, error) {
	if strings.TrimSpace(name) == "" {
		return Assignment{}, ErrProjectRequired
	}

	a = a.normalize()
	err := m.mutate(func() error {
		as, err := m.store.loadAssignmentsStrict()
		if err != nil {
			return err
		}
		as[name] = a
		return m.store.SaveAssignments(as)
	})
	if err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// GetProjectTags returns the assignment of project name, or the default
// assignment when none is stored.
func (m *Manager) GetProjectTags(ctx context.Context, name string) Assignment {
	return m.store.LoadAssignments(ctx).Get(name)
}

func (m *Manager) randomColor() string {
	return Palette[m.intn(len(Palette))]
}

func (m *Manager) mutate(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.store.dir, 0o755); err != nil {
		return err
	}
	return storage.WithLock(storage.LockPath(m.store.dir), fn)
}
