package tags

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Progress values. The set is fixed; only categories can be added or removed.
const (
	ProgressActive     = "진행중"
	ProgressPaused     = "중지"
	ProgressDone       = "완료"
	ProgressPlanned    = "계획중"
	ProgressDeprecated = "deprecated"
)

// MaxTitleLength is the longest custom title, in characters, that is kept.
const MaxTitleLength = 50

// Assignment is the user-authored metadata of one project.
type Assignment struct {
	CustomTitle *string  `json:"customTitle"`
	Progress    string   `json:"progress"`
	Categories  []string `json:"categories"`
	Favorite    bool     `json:"favorite"`
	Archived    bool     `json:"archived"`
	Notes       string   `json:"notes"`
}

// DefaultAssignment is the assignment of a project that has none stored.
func DefaultAssignment() Assignment {
	return Assignment{
		Progress:   ProgressPlanned,
		Categories: []string{},
	}
}

// HasCategory reports whether the assignment carries tag.
func (a Assignment) HasCategory(tag string) bool {
	return slices.Contains(a.Categories, tag)
}

// Title returns the custom title, or name when there is none.
func (a Assignment) Title(name string) string {
	if a.CustomTitle != nil {
		return *a.CustomTitle
	}
	return name
}

// normalize fills nil collections and normalizes the custom title.
func (a Assignment) normalize() Assignment {
	a.CustomTitle = NormalizeTitle(a.CustomTitle)
	if a.Categories == nil {
		a.Categories = []string{}
	}
	return a
}

// NormalizeTitle trims title. Empty titles and titles longer than
// MaxTitleLength characters become nil.
func NormalizeTitle(title *string) *string {
	if title == nil {
		return nil
	}
	t := strings.TrimSpace(*title)
	if t == "" || utf8.RuneCountInString(t) > MaxTitleLength {
		return nil
	}
	return &t
}

// Assignments maps project names to their assignment.
type Assignments map[string]Assignment

// Get returns the stored assignment for name or the default.
func (as Assignments) Get(name string) Assignment {
	if a, ok := as[name]; ok {
		return a.normalize()
	}
	return DefaultAssignment()
}

// Using returns the sorted names of projects carrying category tag.
func (as Assignments) Using(tag string) []string {
	var names []string
	for name, a := range as {
		if a.HasCategory(tag) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Definitions is the registry of progress values and category tags.
type Definitions struct {
	Progress   []string `json:"progress"`
	Categories []string `json:"categories"`
}

// HasCategory reports whether tag is registered.
func (d Definitions) HasCategory(tag string) bool {
	return slices.Contains(d.Categories, tag)
}

// HasProgress reports whether value is a known progress value.
func (d Definitions) HasProgress(value string) bool {
	return slices.Contains(d.Progress, value)
}

// DefaultColorKey is the entry in Colors.Categories holding the fallback
// token. It is not a category.
const DefaultColorKey = "default"

// Colors maps tag values to display tokens.
type Colors struct {
	Progress   map[string]string `json:"progress"`
	Categories map[string]string `json:"categories"`
}

// Category returns the token for a category tag, or the fallback token.
func (c Colors) Category(tag string) string {
	if token, ok := c.Categories[tag]; ok {
		return token
	}
	return c.Fallback()
}

// ProgressColor returns the token for a progress value, or the fallback token.
func (c Colors) ProgressColor(value string) string {
	if token, ok := c.Progress[value]; ok {
		return token
	}
	return c.Fallback()
}

// Fallback returns the "default" category entry, or DefaultColor when the
// document has none.
func (c Colors) Fallback() string {
	if token := c.Categories[DefaultColorKey]; token != "" {
		return token
	}
	return DefaultColor
}

// Available bundles definitions and colors, as served to the UI.
type Available struct {
	Definitions Definitions `json:"definitions"`
	Colors      Colors      `json:"colors"`
}
