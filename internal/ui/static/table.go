// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as the project table.
package static

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/mattn/go-runewidth"

	"github.com/raphi011/pdash/internal/forge"
	"github.com/raphi011/pdash/internal/format"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/tags"
	"github.com/raphi011/pdash/internal/ui/styles"
)

// Column limits, in terminal cells.
const (
	maxTitleWidth       = 32
	maxDescriptionWidth = 48
)

// ProjectHeaders are the column headers of the project table.
var ProjectHeaders = []string{"TITLE", "TYPE", "PROGRESS", "CATEGORIES", "", "MODIFIED", "DESCRIPTION"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// RenderProjects renders entries as the project table.
func RenderProjects(entries []query.Entry, colors tags.Colors, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ProjectRow(e, colors, now))
	}
	return RenderTable(ProjectHeaders, rows)
}

// ProjectRow builds one table row. The title links to the project's forge
// page when its remote is a known forge.
func ProjectRow(e query.Entry, colors tags.Colors, now time.Time) []string {
	title := Truncate(e.Title(), maxTitleWidth)
	if e.GitRemote != nil {
		if url, ok := forge.BrowseURL(*e.GitRemote); ok {
			title = styles.Hyperlink(title, url)
		}
	}
	if e.Tags.CustomTitle != nil && *e.Tags.CustomTitle != e.Name {
		title += " " + styles.MutedStyle.Render("("+e.Name+")")
	}

	cats := make([]string, 0, len(e.Tags.Categories))
	for _, c := range e.Tags.Categories {
		cats = append(cats, styles.Chip(colors.Category(c), c))
	}

	modified := format.RelativeTimeFrom(e.LastModified, now)
	if e.LastModified.IsZero() {
		modified = "-"
	}

	return []string{
		title,
		strings.Join(e.Type, ", "),
		styles.Chip(colors.ProgressColor(e.Tags.Progress), e.Tags.Progress),
		strings.Join(cats, " "),
		styles.Markers(e.Tags.Favorite, e.Tags.Archived, e.HasTests, e.HasCI),
		modified,
		Truncate(e.Description, maxDescriptionWidth),
	}
}

// Truncate shortens s to at most width terminal cells, ending with "…"
// when cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
