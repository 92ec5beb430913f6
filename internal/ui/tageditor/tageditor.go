// Package tageditor provides the interactive form behind "pdash tags edit".
package tageditor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/raphi011/pdash/internal/tags"
)

// Values holds the form state for one assignment.
type Values struct {
	Title      string
	Progress   string
	Categories []string
	Favorite   bool
	Archived   bool
	Notes      string
}

// FromAssignment seeds the form from a stored assignment.
func FromAssignment(a tags.Assignment) Values {
	v := Values{
		Progress:   a.Progress,
		Categories: slices.Clone(a.Categories),
		Favorite:   a.Favorite,
		Archived:   a.Archived,
		Notes:      a.Notes,
	}
	if a.CustomTitle != nil {
		v.Title = *a.CustomTitle
	}
	return v
}

// Assignment converts the form state back. A blank title clears the custom
// title.
func (v Values) Assignment() tags.Assignment {
	title := v.Title
	cats := v.Categories
	if cats == nil {
		cats = []string{}
	}
	return tags.Assignment{
		CustomTitle: tags.NormalizeTitle(&title),
		Progress:    v.Progress,
		Categories:  cats,
		Favorite:    v.Favorite,
		Archived:    v.Archived,
		Notes:       v.Notes,
	}
}

// Edit runs the form for project name. It returns huh.ErrUserAborted when
// the user cancels.
func Edit(ctx context.Context, name string, a tags.Assignment, defs tags.Definitions, themeName string) (tags.Assignment, error) {
	v := FromAssignment(a)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Leave empty to show the folder name").
				Placeholder(name).
				CharLimit(tags.MaxTitleLength).
				Validate(validateTitle).
				Value(&v.Title),
			huh.NewSelect[string]().
				Title("Progress").
				Options(progressOptions(defs, v.Progress)...).
				Value(&v.Progress),
			huh.NewMultiSelect[string]().
				Title("Categories").
				Options(categoryOptions(defs, v.Categories)...).
				Filterable(true).
				Value(&v.Categories),
		).Title(name),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Favorite").
				Value(&v.Favorite),
			huh.NewConfirm().
				Title("Archived").
				Value(&v.Archived),
			huh.NewText().
				Title("Notes").
				Lines(5).
				Value(&v.Notes),
		),
	).WithTheme(Theme(themeName))

	if err := form.RunWithContext(ctx); err != nil {
		return a, err
	}
	return v.Assignment(), nil
}

func validateTitle(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > tags.MaxTitleLength {
		return fmt.Errorf("title is longer than %d characters", tags.MaxTitleLength)
	}
	return nil
}

// progressOptions lists the registered progress values. A current value that
// is not registered is kept as the first option so editing never drops it.
func progressOptions(defs tags.Definitions, current string) []huh.Option[string] {
	values := defs.Progress
	if current != "" && !defs.HasProgress(current) {
		values = append([]string{current}, values...)
	}
	return huh.NewOptions(values...)
}

// categoryOptions lists the registered categories plus any assigned ones that
// are unregistered, with the assigned ones preselected.
func categoryOptions(defs tags.Definitions, assigned []string) []huh.Option[string] {
	values := slices.Clone(defs.Categories)
	for _, c := range assigned {
		if !slices.Contains(values, c) {
			values = append(values, c)
		}
	}

	opts := make([]huh.Option[string], 0, len(values))
	for _, c := range values {
		opts = append(opts, huh.NewOption(c, c).Selected(slices.Contains(assigned, c)))
	}
	return opts
}

// Theme maps a theme family name to the closest form theme.
func Theme(name string) *huh.Theme {
	switch name {
	case "none":
		return huh.ThemeBase()
	case "dracula":
		return huh.ThemeDracula()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "nord", "gruvbox":
		return huh.ThemeBase16()
	default:
		return huh.ThemeCharm()
	}
}
