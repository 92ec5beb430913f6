package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/pdash/internal/output"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

func healthyInput(t *testing.T) Input {
	t.Helper()
	return Input{
		Available: tags.Available{
			Definitions: tags.Definitions{
				Progress:   tags.ProgressValues(),
				Categories: []string{"work"},
			},
			Colors: tags.Colors{
				Progress:   map[string]string{},
				Categories: map[string]string{
					"work":               "bg-blue-100 text-blue-700",
					tags.DefaultColorKey: tags.DefaultColor,
				},
			},
		},
		Assignments: tags.Assignments{
			"alpha": {Progress: tags.ProgressActive, Categories: []string{"work"}},
		},
		Settings: settings.Default(t.TempDir()),
		Projects: []string{"alpha", "beta"},
	}
}

func keysOf(issues []Issue, cat IssueCategory) []string {
	var keys []string
	for _, i := range issues {
		if i.Category == cat {
			keys = append(keys, i.Key)
		}
	}
	return keys
}

func TestCheck_Healthy(t *testing.T) {
	t.Parallel()

	r := Check(healthyInput(t))

	assert.Empty(t, r.Issues)
	assert.Equal(t, 2, r.Projects)
	assert.Equal(t, 1, r.Categories)
	assert.Equal(t, 1, r.Assignments)
}

func TestCheck_Colors(t *testing.T) {
	t.Parallel()

	in := healthyInput(t)
	in.Available.Definitions.Categories = []string{"work", "side"}
	in.Available.Colors.Categories["gone"] = "bg-red-100 text-red-700"

	r := Check(in)

	require.Len(t, r.Issues, 2)
	assert.Equal(t, Issue{
		Key:         "side",
		Description: "category has no color, the default style is used",
		FixAction:   FixAssignColor,
		Category:    CategoryColors,
	}, r.Issues[0])
	assert.Equal(t, "gone", r.Issues[1].Key)
	assert.False(t, r.Issues[1].Fixable())
	assert.Len(t, r.Fixable(), 1)
}

func TestCheck_Assignments(t *testing.T) {
	t.Parallel()

	in := healthyInput(t)
	in.Assignments["beta"] = tags.Assignment{Progress: "someday", Categories: []string{"nope"}}
	in.Assignments["ghost"] = tags.Assignment{Progress: tags.ProgressDone}

	r := Check(in)

	assert.Equal(t, []string{"beta", "beta", "ghost"}, keysOf(r.Issues, CategoryAssignments))
	assert.Empty(t, r.Fixable())
}

func TestCheck_NilProjectsSkipsOrphans(t *testing.T) {
	t.Parallel()

	in := healthyInput(t)
	in.Assignments["ghost"] = tags.Assignment{Progress: tags.ProgressDone}
	in.Projects = nil

	assert.Empty(t, Check(in).Issues)
}

func TestCheck_Settings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name     string
		scanPath string
		want     string
	}{
		{"missing", filepath.Join(dir, "nope"), "scan path is not accessible"},
		{"not a dir", file, "scan path is not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := healthyInput(t)
			in.Settings.ScanPath = tt.scanPath

			issues := Check(in).Issues
			require.Len(t, issues, 1)
			assert.Equal(t, CategorySettings, issues[0].Category)
			assert.Contains(t, issues[0].Description, tt.want)
		})
	}
}

func TestCheck_Documents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tags.ColorsFile), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, tags.DefinitionsFile), []byte(`{"progress":[],"categories":[]}`), 0o644))

	in := healthyInput(t)
	in.DataDir = dir

	assert.Equal(t, []string{tags.ColorsFile}, keysOf(Check(in).Issues, CategoryDocuments))
}

type fakeLister struct {
	names []string
	err   error
}

func (f fakeLister) Names(context.Context) ([]string, error) { return f.names, f.err }

func TestGather(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr := tags.NewManager(tags.NewStore(t.TempDir()))
	_, err := mgr.SetProjectTags(ctx, "alpha", tags.DefaultAssignment())
	require.NoError(t, err)

	st := settings.Default(t.TempDir())

	in := Gather(ctx, mgr, fakeLister{names: []string{"alpha"}}, st)
	assert.Equal(t, mgr.Store().Dir(), in.DataDir)
	assert.Contains(t, in.Assignments, "alpha")
	assert.Equal(t, []string{"alpha"}, in.Projects)
	assert.Equal(t, st, in.Settings)

	in = Gather(ctx, mgr, fakeLister{err: errors.New("boom")}, st)
	assert.Nil(t, in.Projects)

	in = Gather(ctx, mgr, fakeLister{}, st)
	assert.NotNil(t, in.Projects)
}

func TestRun_FixAssignsMissingColors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &buf)
	mgr := tags.NewManager(tags.NewStore(t.TempDir()))

	defs := mgr.Store().LoadDefinitions(ctx)
	defs.Categories = append(defs.Categories, "uncolored")
	require.NoError(t, mgr.Store().SaveDefinitions(defs))

	in := Gather(ctx, mgr, fakeLister{names: []string{}}, settings.Default(t.TempDir()))

	report, err := Run(ctx, mgr, in, false)
	require.NoError(t, err)
	require.Len(t, report.Fixable(), 1)
	assert.Contains(t, buf.String(), "Run 'pdash doctor --fix'")
	_, colored := mgr.Store().LoadColors(ctx).Categories["uncolored"]
	assert.False(t, colored, "check-only run must not write")

	_, err = Run(ctx, mgr, in, true)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Assigned a color to "uncolored"`)

	after := Check(Gather(ctx, mgr, fakeLister{names: []string{}}, settings.Default(t.TempDir())))
	assert.Empty(t, after.Fixable())
}

func TestRun_NoIssues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &buf)

	report, err := Run(ctx, nil, healthyInput(t), true)
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
	assert.Contains(t, buf.String(), "No issues found")
}
