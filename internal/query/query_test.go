package query

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/pdash/internal/cache"
	"github.com/raphi011/pdash/internal/scanner"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

type fakeScanner struct {
	projects []scanner.Project
	err      error
	calls    int
	gotRoot  string
	gotExcl  []string
}

func (f *fakeScanner) ScanAll(_ context.Context, root string, excluded []string) ([]scanner.Project, error) {
	f.calls++
	f.gotRoot = root
	f.gotExcl = excluded
	return f.projects, f.err
}

type fakeTags tags.Assignments

func (f fakeTags) LoadAssignments(context.Context) tags.Assignments {
	return tags.Assignments(f)
}

type fakeSettings settings.Settings

func (f fakeSettings) Load(context.Context) settings.Settings {
	return settings.Settings(f)
}

func day(n int) time.Time {
	return time.Date(2025, 1, n, 0, 0, 0, 0, time.UTC)
}

func project(name string, modified time.Time) scanner.Project {
	return scanner.Project{Name: name, Path: "/ws/" + name, Description: "desc of " + name, LastModified: modified}
}

func newService(sc *fakeScanner, as tags.Assignments) *Service {
	return New(sc, fakeTags(as), fakeSettings(settings.Default("/ws")), &cache.Projects{})
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestList_FavoriteFilter(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{
		project("A", day(1)), project("B", day(2)), project("C", day(3)),
	}}
	svc := newService(sc, tags.Assignments{
		"B": {Progress: tags.ProgressActive, Favorite: true},
	})

	got, err := svc.List(context.Background(), Filter{Favorite: true, IncludeArchived: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(got))
}

func TestList_FavoriteBeatsRecency(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{
		project("B", day(5)), project("A", day(1)),
	}}
	svc := newService(sc, tags.Assignments{"A": {Favorite: true}})

	got, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(got))
}

func TestList_SortOrder(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{
		project("old", day(1)),
		project("new", day(9)),
		project("archived-fav", day(2)),
		project("archived", day(8)),
		project("fav", day(3)),
	}}
	svc := newService(sc, tags.Assignments{
		"archived-fav": {Favorite: true, Archived: true},
		"archived":     {Archived: true},
		"fav":          {Favorite: true},
	})

	got, err := svc.List(context.Background(), Filter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"fav", "archived-fav", "new", "old", "archived"}, names(got))
}

func TestList_ArchivedHiddenByDefault(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{project("live", day(1)), project("gone", day(2))}}
	svc := newService(sc, tags.Assignments{"gone": {Archived: true}})

	got, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, names(got))

	got, err = svc.List(context.Background(), Filter{IncludeArchived: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"live", "gone"}, names(got))
}

func TestList_Filters(t *testing.T) {
	t.Parallel()

	projects := []scanner.Project{
		project("Dashboard", day(1)),
		project("crawler", day(2)),
		project("_scratch", day(3)),
		project("notes-bot", day(4)),
	}
	projects[1].Description = "Scrapes Straße listings"
	title := "Knowledge Vault"
	as := tags.Assignments{
		"Dashboard": {Progress: tags.ProgressActive, Categories: []string{"웹앱"}},
		"crawler":   {Progress: tags.ProgressPaused, Categories: []string{"스크래퍼", "자동화"}},
		"notes-bot": {Progress: tags.ProgressActive, Categories: []string{"봇"}, CustomTitle: &title},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"notes-bot", "_scratch", "crawler", "Dashboard"}},
		{"search name case-insensitive", Filter{Search: "dash"}, []string{"Dashboard"}},
		{"search description with folding", Filter{Search: "STRASSE"}, []string{"crawler"}},
		{"search custom title", Filter{Search: "vault"}, []string{"notes-bot"}},
		{"progress exact", Filter{Progress: tags.ProgressActive}, []string{"notes-bot", "Dashboard"}},
		{"default progress", Filter{Progress: tags.ProgressPlanned}, []string{"_scratch"}},
		{"any category", Filter{Categories: []string{"봇", "자동화"}}, []string{"notes-bot", "crawler"}},
		{"conjunctive", Filter{Categories: []string{"봇", "자동화"}, Progress: tags.ProgressPaused}, []string{"crawler"}},
		{"hide hidden", Filter{HideHidden: true}, []string{"notes-bot", "crawler", "Dashboard"}},
		{"no match", Filter{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newService(&fakeScanner{projects: projects}, as)
			got, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestList_DefaultAssignmentAttached(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeScanner{projects: []scanner.Project{project("p", day(1))}}, nil)

	got, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tags.DefaultAssignment(), got[0].Tags)
}

func TestList_UsesCacheAndSettings(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{project("p", day(1))}}
	svc := newService(sc, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	_, err = svc.List(ctx, Filter{Search: "p"})
	require.NoError(t, err)

	assert.Equal(t, 1, sc.calls, "second list must be served from cache")
	assert.Equal(t, "/ws", sc.gotRoot)
	assert.Equal(t, settings.DefaultExcludedFolders, sc.gotExcl)
}

func TestList_TagEditsVisibleWithoutRescan(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{project("p", day(1))}}
	as := tags.Assignments{}
	svc := newService(sc, as)
	ctx := context.Background()

	got, err := svc.List(ctx, Filter{Favorite: true})
	require.NoError(t, err)
	assert.Empty(t, got)

	as["p"] = tags.Assignment{Favorite: true}

	got, err = svc.List(ctx, Filter{Favorite: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, names(got))
	assert.Equal(t, 1, sc.calls)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{project("a", day(1))}}
	svc := newService(sc, nil)
	ctx := context.Background()

	n, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sc.projects = append(sc.projects, project("b", day(2)))
	n, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, sc.calls)
}

func TestRefresh_ScanError(t *testing.T) {
	t.Parallel()

	want := errors.New("read scan root: permission denied")
	svc := newService(&fakeScanner{err: want}, nil)

	_, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, want)
}

func TestFind(t *testing.T) {
	t.Parallel()

	sc := &fakeScanner{projects: []scanner.Project{project("dashboard", day(1)), project("crawler", day(2))}}
	svc := newService(sc, tags.Assignments{"crawler": {Notes: "n"}})
	ctx := context.Background()

	e, err := svc.Find(ctx, "crawler")
	require.NoError(t, err)
	assert.Equal(t, "n", e.Tags.Notes)

	_, err = svc.Find(ctx, "dashbord")
	require.ErrorIs(t, err, ErrProjectNotFound)
	assert.Contains(t, err.Error(), "did you mean dashboard")
}

func TestReadme(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	withReadme := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(withReadme, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(withReadme, "README.md"), []byte("# Docs\n"), 0o644))

	sc := &fakeScanner{projects: []scanner.Project{
		{Name: "docs", Path: withReadme},
		{Name: "bare", Path: filepath.Join(root, "bare")},
	}}
	svc := newService(sc, nil)
	ctx := context.Background()

	content, err := svc.Readme(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, "# Docs\n", content)

	_, err = svc.Readme(ctx, "bare")
	require.ErrorIs(t, err, ErrReadmeNotFound)

	_, err = svc.Readme(ctx, "missing")
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDefaultFilter(t *testing.T) {
	t.Parallel()

	st := settings.Default("/ws")
	assert.Equal(t, Filter{IncludeArchived: false, HideHidden: false}, DefaultFilter(st))

	st.HideArchived = false
	st.HideHiddenProjects = true
	assert.Equal(t, Filter{IncludeArchived: true, HideHidden: true}, DefaultFilter(st))
}
