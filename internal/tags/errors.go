package tags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/pdash/internal/storage"
)

var (
	// ErrNotFound is matched by errors about tags that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is matched by errors about duplicate or in-use tags.
	ErrConflict = errors.New("conflict")
	// ErrDocumentUnreadable is returned by mutations when a stored document
	// exists but cannot be parsed. Reads fall back to defaults instead.
	ErrDocumentUnreadable = storage.ErrUnreadable
)

// DuplicateTagError is returned when adding a category that already exists.
type DuplicateTagError struct {
	Tag string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("tag %q already exists", e.Tag)
}

func (e *DuplicateTagError) Unwrap() error { return ErrConflict }

// TagNotFoundError is returned when deleting a category that is not registered.
type TagNotFoundError struct {
	Tag string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag %q not found", e.Tag)
}

func (e *TagNotFoundError) Unwrap() error { return ErrNotFound }

// TagInUseError is returned when deleting a category that projects still use.
type TagInUseError struct {
	Tag      string
	Projects []string
}

func (e *TagInUseError) Error() string {
	return fmt.Sprintf("tag %q is in use by %d project(s): %s", e.Tag, len(e.Projects), strings.Join(e.Projects, ", "))
}

func (e *TagInUseError) Unwrap() error { return ErrConflict }
