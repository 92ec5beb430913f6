package static

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/scanner"
	"github.com/raphi011/pdash/internal/tags"
)

func ptr(s string) *string { return &s }

func TestProjectRow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	e := query.Entry{
		Project: scanner.Project{
			Name:         "notes-bot",
			Type:         []string{"Python", "Docker"},
			Description:  "Summarises meeting notes",
			LastModified: now.Add(-2 * time.Hour),
			GitRemote:    ptr("git@github.com:me/notes-bot.git"),
			HasTests:     true,
		},
		Tags: tags.Assignment{
			CustomTitle: ptr("Notes Bot"),
			Progress:    tags.ProgressActive,
			Categories:  []string{"ai"},
			Favorite:    true,
		},
	}

	row := ProjectRow(e, tags.DefaultColors(), now)

	// Must have one column per header
	if len(row) != len(ProjectHeaders) {
		t.Fatalf("expected %d columns, got %d", len(ProjectHeaders), len(row))
	}

	if !strings.Contains(row[0], "https://github.com/me/notes-bot") {
		t.Errorf("title should link to the forge page, got %q", row[0])
	}

	want := []string{
		"Notes Bot (notes-bot)",
		"Python, Docker",
		tags.ProgressActive,
		"ai",
		"",
		"2h ago",
		"Summarises meeting notes",
	}
	for i, w := range want {
		got := ansi.Strip(row[i])
		if i == 4 {
			if got == "" {
				t.Errorf("column 4 (markers) should not be empty")
			}
			continue
		}
		if !strings.Contains(got, w) {
			t.Errorf("column %d (%s) = %q, want it to contain %q", i, ProjectHeaders[i], got, w)
		}
	}
}

func TestProjectRow_NoRemoteNoDate(t *testing.T) {
	t.Parallel()

	e := query.Entry{
		Project: scanner.Project{Name: "scratch"},
		Tags:    tags.DefaultAssignment(),
	}

	row := ProjectRow(e, tags.DefaultColors(), time.Now())

	if ansi.Strip(row[0]) != "scratch" {
		t.Errorf("title = %q, want %q", row[0], "scratch")
	}
	if row[5] != "-" {
		t.Errorf("modified = %q, want %q", row[5], "-")
	}
	if row[3] != "" {
		t.Errorf("categories = %q, want empty", row[3])
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a long description", 8, "a long …"},
		{"日本語テキスト", 7, "日本語…"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	if got := RenderTable(ProjectHeaders, nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderProjects(t *testing.T) {
	t.Parallel()

	entries := []query.Entry{
		{Project: scanner.Project{Name: "alpha"}, Tags: tags.DefaultAssignment()},
		{Project: scanner.Project{Name: "beta"}, Tags: tags.DefaultAssignment()},
	}

	out := ansi.Strip(RenderProjects(entries, tags.DefaultColors(), time.Now()))
	for _, want := range []string{"TITLE", "PROGRESS", "alpha", "beta"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
