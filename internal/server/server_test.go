package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/pdash/internal/cache"
	"github.com/raphi011/pdash/internal/launcher"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/scanner"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

type fakeOpener struct {
	got launcher.Request
	st  settings.Settings
}

func (f *fakeOpener) Open(_ context.Context, req launcher.Request) launcher.Result {
	f.got = req
	return launcher.Result{Success: true, Message: "opened " + req.App}
}

type fixture struct {
	srv     *Server
	handler http.Handler
	opener  *fakeOpener
	mgr     *tags.Manager
	root    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	for _, name := range []string{"alpha", "beta", "_hidden"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha", "README.md"), []byte("# Alpha\n\nFirst project."), 0o644))

	dataDir := t.TempDir()
	st := settings.NewStore(dataDir, settings.Default(root))
	mgr := tags.NewManager(tags.NewStore(dataDir))
	svc := query.New(scanner.New(2), mgr.Store(), st, &cache.Projects{})

	opener := &fakeOpener{}
	srv := New(svc, mgr, st)
	srv.opener = func(s settings.Settings) Opener {
		opener.st = s
		return opener
	}

	return &fixture{srv: srv, handler: srv.Handler(), opener: opener, mgr: mgr, root: root}
}

func (f *fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func projectNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw, ok := body["projects"].([]any)
	require.True(t, ok, "projects should be a list")
	names := make([]string, 0, len(raw))
	for _, p := range raw {
		names = append(names, p.(map[string]any)["name"].(string))
	}
	return names
}

func TestListProjects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.mgr.SetProjectTags(context.Background(), "beta", tags.Assignment{Progress: tags.ProgressActive, Favorite: true})
	require.NoError(t, err)

	rec, body := f.do(t, http.MethodGet, "/api/projects", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 3, body["count"])
	assert.Equal(t, "beta", projectNames(t, body)[0], "favorites sort first")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	scannedAt, err := time.Parse(time.RFC3339Nano, body["scannedAt"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), scannedAt, time.Minute)

	// the cached scan is served again until a rescan
	_, again := f.do(t, http.MethodGet, "/api/projects", "")
	assert.Equal(t, body["scannedAt"], again["scannedAt"])

	_, body = f.do(t, http.MethodGet, "/api/projects?favorite=true", "")
	assert.Equal(t, []string{"beta"}, projectNames(t, body))

	_, body = f.do(t, http.MethodGet, "/api/projects?search=ALP", "")
	assert.Equal(t, []string{"alpha"}, projectNames(t, body))
}

func TestListProjects_ArchivedHiddenByDefault(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.mgr.SetProjectTags(context.Background(), "alpha", tags.Assignment{Progress: tags.ProgressPlanned, Archived: true})
	require.NoError(t, err)

	_, body := f.do(t, http.MethodGet, "/api/projects", "")
	assert.NotContains(t, projectNames(t, body), "alpha")

	_, body = f.do(t, http.MethodGet, "/api/projects?archived=true", "")
	assert.Contains(t, projectNames(t, body), "alpha")
}

func TestListProjects_BadBool(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec, body := f.do(t, http.MethodGet, "/api/projects?favorite=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "favorite")
}

func TestScanProjects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, body := f.do(t, http.MethodGet, "/api/projects", "")
	assert.EqualValues(t, 3, body["count"])

	require.NoError(t, os.MkdirAll(filepath.Join(f.root, "gamma"), 0o755))

	rec, body := f.do(t, http.MethodPost, "/api/projects/scan", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 4, body["scanned"])
}

func TestReadme(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec, body := f.do(t, http.MethodGet, "/api/projects/alpha/readme", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body["content"], "First project.")

	rec, _ = f.do(t, http.MethodGet, "/api/projects/beta/readme", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/projects/nope/readme", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpenProject(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/api/projects/open", `{"path":"/ws/alpha","app":"vscode"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "vscode", f.opener.got.App)
	assert.Equal(t, "code", f.opener.st.EditorCommand)

	rec, _ = f.do(t, http.MethodPost, "/api/projects/open", `{"path":"/ws/alpha"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/projects/open", `{"app":"finder"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/projects/open", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectTags(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, body := f.do(t, http.MethodGet, "/api/tags/alpha", "")
	got := body["tags"].(map[string]any)
	assert.Equal(t, tags.ProgressPlanned, got["progress"])
	assert.Equal(t, []any{}, got["categories"])
	assert.Equal(t, false, got["favorite"])

	rec, body := f.do(t, http.MethodPost, "/api/tags/alpha", `{"customTitle":"  Alpha  ","progress":"`+tags.ProgressActive+`","categories":["web"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alpha", body["tags"].(map[string]any)["customTitle"])

	stored := f.mgr.GetProjectTags(context.Background(), "alpha")
	assert.Equal(t, tags.ProgressActive, stored.Progress)
	assert.Equal(t, []string{"web"}, stored.Categories)
}

func TestManageTag(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/api/tags/manage", `{"action":"add","tag":"games"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	cats := body["definitions"].(map[string]any)["categories"].([]any)
	assert.Contains(t, cats, "games")

	rec, body = f.do(t, http.MethodPost, "/api/tags/manage", `{"action":"add","tag":"games"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, body["success"])

	_, err := f.mgr.SetProjectTags(context.Background(), "beta", tags.Assignment{Progress: tags.ProgressPlanned, Categories: []string{"games"}})
	require.NoError(t, err)

	rec, body = f.do(t, http.MethodPost, "/api/tags/manage", `{"action":"delete","tag":"games"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []any{"beta"}, body["projectsUsingTag"])
	assert.NotContains(t, body, "projects")

	rec, _ = f.do(t, http.MethodPost, "/api/tags/manage", `{"action":"delete","tag":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/tags/manage", `{"action":"rename","tag":"games"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/tags/manage", `{"action":"add","tag":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestManageTag_UnreadableAssignments(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.mgr.AddCategory(ctx, "games")
	require.NoError(t, err)

	path := filepath.Join(f.mgr.Store().Dir(), tags.AssignmentsFile)
	broken := []byte(`{"beta": {"categories": ["games"]},}`)
	require.NoError(t, os.WriteFile(path, broken, 0o600))

	rec, body := f.do(t, http.MethodPost, "/api/tags/manage", `{"action":"delete","tag":"games"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], tags.AssignmentsFile)
	assert.Contains(t, body["message"], "not saved")

	rec, _ = f.do(t, http.MethodPost, "/api/tags/alpha", `{"progress":"진행중"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, broken, data)
	assert.True(t, f.mgr.Available(ctx).Definitions.HasCategory("games"))
}

func TestAvailableTags_DefaultColorEntry(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec, body := f.do(t, http.MethodGet, "/api/tags/available", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	colors := body["colors"].(map[string]any)
	assert.NotContains(t, colors, "default")
	assert.Equal(t, tags.DefaultColor, colors["categories"].(map[string]any)["default"])
}

func TestUpdateColor(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/api/tags/colors", `{"tag":"web","color":"bg-red-100 text-red-800"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	cats := body["colors"].(map[string]any)["categories"].(map[string]any)
	assert.Equal(t, "bg-red-100 text-red-800", cats["web"])

	rec, _ = f.do(t, http.MethodPost, "/api/tags/colors", `{"tag":"web"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, body := f.do(t, http.MethodGet, "/api/settings", "")
	got := body["settings"].(map[string]any)
	assert.Equal(t, "Warp", got["terminalApp"])
	assert.Equal(t, true, got["hideArchived"])

	_, body = f.do(t, http.MethodGet, "/api/projects", "")
	assert.EqualValues(t, 3, body["count"])

	rec, body := f.do(t, http.MethodPost, "/api/settings", `{"hideHiddenProjects":true,"excludedFolders":["beta"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	got = body["settings"].(map[string]any)
	assert.Equal(t, true, got["hideHiddenProjects"])
	assert.Equal(t, "Warp", got["terminalApp"], "fields not posted keep their value")

	_, body = f.do(t, http.MethodGet, "/api/projects", "")
	assert.Equal(t, []string{"alpha"}, projectNames(t, body), "changed exclusions trigger a rescan")

	rec, _ = f.do(t, http.MethodPost, "/api/settings", `{"scanPath":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreflight(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tags/manage", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestListenAndServe(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- f.srv.ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a.String() })
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr + "/api/tags/available")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	require.NoError(t, <-errCh)
}
